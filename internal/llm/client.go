package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrNotConfigured is returned when no API key is set.
	ErrNotConfigured = errors.New("AI service not configured")
	// ErrRateLimited is returned when the provider rejects the request for
	// quota or rate limit reasons.
	ErrRateLimited = errors.New("AI quota exceeded")
	// ErrUnavailable wraps every other provider failure.
	ErrUnavailable = errors.New("AI service temporarily unavailable")
)

const analyzeSystemPrompt = `You are a photography portfolio search assistant. Analyze natural language queries and extract relevant search keywords for a photography portfolio.

Available photo categories and themes:
- Wedding Photography: wedding, bridal, elegance, romance, love, cake, bouquet, flower-girls, children, ceremony, celebration
- Events Photography: festival, vintage, fashion, style, formal, elegant, parasol, group
- Street Photography: street, candid, urban, summer, walking, documentary, life, childhood
- Long Exposure Photography: seascape, waves, rocks, water, motion, nature, coastal, ethereal, dynamic, light-trails, cascading, flow, energy

Return a JSON object with:
{
  "keywords": ["keyword1", "keyword2", ...],
  "intent": "brief description of what user is looking for",
  "categories": ["relevant", "categories"]
}

Focus on extracting emotional descriptors, technical terms, subject matter, and visual elements from the query.`

const analyzeMaxTokens = 300

// Client is a client for an OpenAI compatible chat completions API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new LLM client.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool {
	return c != nil && c.APIKey != ""
}

type responseFormat struct {
	Type string `json:"type"`
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// Complete sends a chat completion request and returns the content of the
// first choice.
func (c *Client) Complete(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	model := params.Model
	if model == "" {
		model = c.Model
	}
	payload := ChatRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: params.MaxTokens,
	}
	if params.JSON {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to send request: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", classifyStatus(resp.StatusCode, string(raw))
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUnavailable)
	}

	return chatResp.Choices[0].Message.Content, nil
}

func classifyStatus(status int, body string) error {
	lower := strings.ToLower(body)
	if status == http.StatusTooManyRequests || strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit") {
		return fmt.Errorf("%w: bad status %d: %s", ErrRateLimited, status, body)
	}
	return fmt.Errorf("%w: bad status %d: %s", ErrUnavailable, status, body)
}

// Analyze extracts search keywords, intent and categories from a natural
// language query.
func (c *Client) Analyze(ctx context.Context, query string) (Analysis, error) {
	content, err := c.Complete(ctx, []Message{
		{Role: "system", Content: analyzeSystemPrompt},
		{Role: "user", Content: query},
	}, ChatParams{MaxTokens: analyzeMaxTokens, JSON: true})
	if err != nil {
		return Analysis{}, err
	}

	var analysis Analysis
	if strings.TrimSpace(content) == "" {
		content = "{}"
	}
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return Analysis{}, fmt.Errorf("%w: invalid analysis JSON: %v", ErrUnavailable, err)
	}
	if analysis.Keywords == nil {
		analysis.Keywords = []string{}
	}
	if analysis.Categories == nil {
		analysis.Categories = []string{}
	}
	return analysis, nil
}
