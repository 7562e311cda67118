package llm

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatParams holds parameters for chat completion requests.
type ChatParams struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens specifies the maximum number of tokens to generate.
	// If 0, no limit is applied.
	MaxTokens int

	// JSON asks the server to return a single JSON object.
	JSON bool
}

// Analysis is the structured result of a search query analysis.
type Analysis struct {
	Keywords   []string `json:"keywords"`
	Intent     string   `json:"intent"`
	Categories []string `json:"categories"`
}
