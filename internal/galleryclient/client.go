// Package galleryclient talks to the portfolio API from Go: it keeps the
// session cookie, mirrors the merged catalog and runs the debounced keyword
// search the web gallery uses.
package galleryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"portfolio/internal/gallery"
	"portfolio/internal/llm"
)

// ErrFallback is returned by Analyze when the server asks the caller to use
// local keyword expansion instead.
var ErrFallback = errors.New("analysis unavailable, use local keywords")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// AuthStatus is the session state reported by the server.
type AuthStatus struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	UserID          string `json:"userId,omitempty"`
}

// UploadInput describes a photo to upload.
type UploadInput struct {
	Title       string
	Category    string
	Event       string
	Description string
	Tags        string
	Filename    string
	ContentType string
	File        io.Reader
}

// Client is an API client. It keeps cookies for its whole lifetime, so a
// successful Login authorizes later admin calls.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its cookie jar is
// replaced by the Client's own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		clone := *hc
		c.http = &clone
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{baseURL: u, http: &http.Client{}, jar: jar}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Jar = jar
	return c, nil
}

// Photos returns the uploaded photos.
func (c *Client) Photos(ctx context.Context) ([]gallery.Photo, error) {
	var photos []gallery.Photo
	if err := c.do(ctx, http.MethodGet, "/api/photos", nil, "", &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Gallery returns the server's merged catalog.
func (c *Client) Gallery(ctx context.Context) ([]gallery.Photo, error) {
	var photos []gallery.Photo
	if err := c.do(ctx, http.MethodGet, "/api/gallery", nil, "", &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Upload sends a photo as multipart form data. It needs an admin session.
func (c *Client) Upload(ctx context.Context, in UploadInput) (*gallery.Photo, error) {
	if in.File == nil {
		return nil, errors.New("no file to upload")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range []struct{ name, value string }{
		{"title", in.Title},
		{"category", in.Category},
		{"event", in.Event},
		{"description", in.Description},
		{"tags", in.Tags},
	} {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	filename := in.Filename
	if filename == "" {
		filename = "photo"
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, in.File); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var photo gallery.Photo
	if err := c.do(ctx, http.MethodPost, "/api/photos", &body, mw.FormDataContentType(), &photo); err != nil {
		return nil, err
	}
	return &photo, nil
}

// Delete removes an uploaded photo. It needs an admin session.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/photos/"+strconv.FormatInt(id, 10), nil, "", nil)
}

// Login starts an admin session.
func (c *Client) Login(ctx context.Context, password string) error {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/login", bytes.NewReader(body), "application/json", nil)
}

// Logout ends the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, "", nil)
}

// AuthStatus reports whether the client holds an admin session.
func (c *Client) AuthStatus(ctx context.Context) (AuthStatus, error) {
	var st AuthStatus
	err := c.do(ctx, http.MethodGet, "/api/auth/status", nil, "", &st)
	return st, err
}

// Analyze asks the server to expand query. A 429 or 503 answer is returned
// as ErrFallback.
func (c *Client) Analyze(ctx context.Context, query string) (llm.Analysis, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return llm.Analysis{}, err
	}

	var a llm.Analysis
	err = c.do(ctx, http.MethodPost, "/api/search-analyze", bytes.NewReader(body), "application/json", &a)
	var apiErr *APIError
	if errors.As(err, &apiErr) &&
		(apiErr.Status == http.StatusTooManyRequests || apiErr.Status == http.StatusServiceUnavailable) {
		return llm.Analysis{}, fmt.Errorf("%w: %s", ErrFallback, apiErr.Message)
	}
	if err != nil {
		return llm.Analysis{}, err
	}
	return a, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// do sends a request and decodes a JSON answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	switch {
	case json.Unmarshal(data, &body) == nil && (body.Message != "" || body.Error != ""):
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	case len(bytes.TrimSpace(data)) > 0:
		apiErr.Message = strings.TrimSpace(string(data))
	default:
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// RemoteExpander expands queries through the server's analyzer.
type RemoteExpander struct {
	Client *Client
}

// Expand implements gallery.Expander.
func (e RemoteExpander) Expand(ctx context.Context, query string) (gallery.Expansion, error) {
	a, err := e.Client.Analyze(ctx, query)
	if err != nil {
		return gallery.Expansion{}, err
	}
	return gallery.Expansion{Keywords: a.Keywords, Intent: a.Intent}, nil
}
