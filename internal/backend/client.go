package backend

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

	"codeforge/internal/egress"
	"codeforge/internal/envutil"
	"codeforge/internal/logging"
)

const DefaultBaseURL = "https://api.codeforge.dev"

const requestTimeout = 60 * time.Second

// Client speaks the codeforge backend API. One fixed base URL, a fixed
// timeout, no retries; non-2xx responses surface as *StatusError for the
// caller to switch on.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	var transport http.RoundTripper = http.DefaultTransport
	if parsed, err := url.Parse(baseURL); err == nil && parsed.Scheme == "https" && parsed.Hostname() != "" {
		if !envutil.Bool("CODEFORGE_EGRESS_DISABLED") {
			transport = egress.NewAllowlistRoundTripper(http.DefaultTransport, []string{parsed.Hostname()})
		}
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}
}

// StatusError carries the HTTP status code explicitly so callers classify
// failures by value instead of searching message text.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if e.Detail == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Detail)
}

type GenerateRequest struct {
	Prompt      string  `json:"prompt"`
	Workspace   string  `json:"workspace"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type GenerateResponse struct {
	Content          string `json:"content"`
	CreditsUsed      int    `json:"credits_used"`
	RemainingCredits int    `json:"remaining_credits"`
}

type UserStatus struct {
	Email      string `json:"email"`
	Tier       string `json:"tier"`
	Credits    int    `json:"credits"`
	TodayUsage int    `json:"today_usage"`
}

type CreateUserResponse struct {
	Message  string `json:"message,omitempty"`
	APIToken string `json:"api_token"`
	Tier     string `json:"tier"`
	Credits  int    `json:"credits"`
	// Error is set (with a 200 status) when the account already exists.
	Error string `json:"error,omitempty"`
}

func (c *Client) Generate(ctx context.Context, token string, request GenerateRequest) (*GenerateResponse, error) {
	var response GenerateResponse
	if err := c.do(ctx, http.MethodPost, "/generate", token, request, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) UserStatus(ctx context.Context, token string) (*UserStatus, error) {
	var status UserStatus
	if err := c.do(ctx, http.MethodGet, "/user/status", token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) CreateUser(ctx context.Context, email string) (*CreateUserResponse, error) {
	path := "/user/create?email=" + url.QueryEscape(email)
	var response CreateUserResponse
	if err := c.do(ctx, http.MethodPost, path, "", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", logging.NewRequestID())
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Detail: decodeDetail(resp.Body, resp.Status)}
	}
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// decodeDetail pulls the backend's {"detail": ...} message, falling back to
// the HTTP status line.
func decodeDetail(body io.Reader, status string) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return strings.TrimSpace(status)
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		return strings.TrimSpace(payload.Detail)
	}
	return strings.TrimSpace(status)
}
