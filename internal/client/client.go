// Package client is the consumer side of the backend HTTP API: it fetches
// a simulator's question bank and submits final results. Failures are
// categorized by HTTP status for the UI and never retried automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/academix/examsim/internal/errcode"
	"github.com/academix/examsim/internal/model"
)

// ErrTokenRequired means no session token was available before a request
// was attempted. Caller-side precondition, not a server error.
var ErrTokenRequired = errors.New("client: session token required")

// TokenSource supplies the bearer token for each request. Satisfied by
// *store.SessionStore.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// APIError is a categorized backend failure, surfaced to the user via its
// code's message.
type APIError struct {
	Status  int
	Code    errcode.Code
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Client talks to the backend API.
type Client struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

// New creates a backend API client.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With().Str("component", "api_client").Logger(),
	}
}

// FetchQuestions retrieves the ordered question set for a simulator.
func (c *Client) FetchQuestions(ctx context.Context, simulatorID string) ([]model.Question, error) {
	var questions []model.Question
	path := fmt.Sprintf("/api/v1/simulators/%s/questions", simulatorID)
	if err := c.do(ctx, http.MethodGet, path, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// SubmitResult posts a finished session's answers and computed summary.
func (c *Client) SubmitResult(ctx context.Context, simulatorID string, sub model.ResultSubmission) error {
	path := fmt.Sprintf("/api/v1/simulators/%s/results", simulatorID)
	return c.do(ctx, http.MethodPost, path, sub, nil)
}

// errorBody is the backend's error envelope. Decoding is best-effort; a
// missing or unreadable body falls back to the code's canned message.
type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	tok, ok := c.tokens.Token(ctx)
	if !ok {
		return ErrTokenRequired
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("request failed")
		return &APIError{Code: errcode.ErrNetwork, Message: errcode.GetMessage(errcode.ErrNetwork)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code := errcode.FromStatus(resp.StatusCode)
		msg := errcode.GetMessage(code)

		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Message != "" {
			msg = eb.Message
		}

		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("backend error")
		return &APIError{Status: resp.StatusCode, Code: code, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}
	return nil
}
