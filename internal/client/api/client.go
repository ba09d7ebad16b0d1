// Package api is the HTTP client for the watchlist movie API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Movie is a movie as returned by the list endpoint
type Movie struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Year      Year      `json:"year"`
	Poster    string    `json:"poster"`
	Watched   bool      `json:"watched"`
	CreatedAt time.Time `json:"createdAt"`
}

// Year is a year as text. It decodes from either a JSON string or number,
// since older servers store the year as a number.
type Year string

// UnmarshalJSON implements json.Unmarshaler
func (y *Year) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a string or number: %w", err)
	}
	*y = Year(n.String())
	return nil
}

// String returns the year text
func (y Year) String() string { return string(y) }

// AddMovieRequest is the body of POST /add
type AddMovieRequest struct {
	Title   string `json:"title"`
	Year    string `json:"year"`
	Poster  string `json:"poster"`
	Watched bool   `json:"watched"`
}

// Error is returned for any non-2xx response
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// IsConflict reports whether the server rejected the request as a duplicate
func (e *Error) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// Client talks to one watchlist API base URL. It sets no request timeout:
// a call runs until the server answers, the transport fails or ctx ends.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a Client for the API rooted at baseURL, e.g.
// http://localhost:8080/api/movie
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

type listResponse struct {
	Result []Movie `json:"result"`
	Movies []Movie `json:"movies"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// List fetches every movie
func (c *Client) List(ctx context.Context) ([]Movie, error) {
	var body listResponse
	if err := c.do(ctx, http.MethodGet, "/", nil, &body); err != nil {
		return nil, err
	}
	switch {
	case body.Result != nil:
		return body.Result, nil
	case body.Movies != nil:
		return body.Movies, nil
	default:
		return []Movie{}, nil
	}
}

// Add creates a movie and returns the server's message
func (c *Client) Add(ctx context.Context, req AddMovieRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	var body messageResponse
	if err := c.do(ctx, http.MethodPost, "/add", payload, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// Toggle flips the watched flag of the movie with the given id
func (c *Client) Toggle(ctx context.Context, id string) (string, error) {
	var body messageResponse
	if err := c.do(ctx, http.MethodPost, "/toggle/"+url.PathEscape(id), nil, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// Delete removes the movie with the given id
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	var body messageResponse
	if err := c.do(ctx, http.MethodPost, "/delete/"+url.PathEscape(id), nil, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach watchlist api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var msg messageResponse
		if json.Unmarshal(raw, &msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
