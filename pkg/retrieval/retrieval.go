package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTopK          = 3
	maxResponseSizeBytes = 2 << 20
)

// Config points the client at a managed retrieval corpus.
type Config struct {
	URL               string        `envconfig:"URL" split_words:"true" required:"true"`
	Token             string        `envconfig:"TOKEN" split_words:"true"`
	Corpus            string        `envconfig:"CORPUS" split_words:"true" required:"true"`
	TopK              int           `envconfig:"TOP_K" split_words:"true" default:"3"`
	DistanceThreshold float64       `envconfig:"DISTANCE_THRESHOLD" split_words:"true"`
	Timeout           time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"10s"`
}

// Snippet is one retrieved corpus entry.
type Snippet struct {
	Text string `json:"text"`
}

type queryRequest struct {
	Corpus            string  `json:"corpus"`
	Query             string  `json:"query"`
	TopK              int     `json:"top_k"`
	DistanceThreshold float64 `json:"distance_threshold,omitempty"`
}

type queryResponse struct {
	Contexts []Snippet `json:"contexts"`
	Error    string    `json:"error"`
}

// Client queries a managed retrieval index over REST.
type Client struct {
	baseURL           string
	token             string
	corpus            string
	topK              int
	distanceThreshold float64
	httpClient        *http.Client
}

type ClientOption func(*Client)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("retrieval url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid retrieval url: %w", err)
	}

	corpus := strings.TrimSpace(cfg.Corpus)
	if corpus == "" {
		return nil, errors.New("retrieval corpus is required")
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:           baseURL,
		token:             strings.TrimSpace(cfg.Token),
		corpus:            corpus,
		topK:              topK,
		distanceThreshold: cfg.DistanceThreshold,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

func MustNew(cfg Config, opts ...ClientOption) *Client {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Query sends the text to the corpus and returns the nearest snippets. A
// response with no contexts is an empty slice, not an error.
func (c *Client) Query(ctx context.Context, text string) ([]Snippet, error) {
	body, err := json.Marshal(queryRequest{
		Corpus:            c.corpus,
		Query:             text,
		TopK:              c.topK,
		DistanceThreshold: c.distanceThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal retrieval query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/retrieve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build retrieval request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute retrieval request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return nil, fmt.Errorf("read retrieval response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("retrieval http status=%d body=%s", resp.StatusCode, string(raw))
	}

	var parsed queryResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode retrieval response: %w", err)
	}
	if parsed.Error != "" {
		return nil, errors.New(parsed.Error)
	}

	return parsed.Contexts, nil
}

// Retrieve queries the corpus and flattens the snippets into one
// instruction-context string.
func (c *Client) Retrieve(ctx context.Context, text string) (string, error) {
	snippets, err := c.Query(ctx, text)
	if err != nil {
		return "", err
	}
	return Flatten(snippets), nil
}

// Flatten labels each snippet "Example N" and joins them with blank lines.
// No snippets yields an empty string.
func Flatten(snippets []Snippet) string {
	if len(snippets) == 0 {
		return ""
	}

	parts := make([]string, 0, len(snippets))
	for i, s := range snippets {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("Example %d:\n%s", i+1, text))
	}
	return strings.Join(parts, "\n\n")
}
