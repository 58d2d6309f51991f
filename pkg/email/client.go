package email

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RedaKaafarani1/ecomwebsite/pkg/config"
	pkgerrors "github.com/RedaKaafarani1/ecomwebsite/pkg/errors"
)

const errorBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("email service base url is required")

// Sender dispatches a templated transactional email. Implemented by Client and
// stubbed in tests.
type Sender interface {
	Send(ctx context.Context, req SendRequest) error
}

// SendRequest describes one templated send.
type SendRequest struct {
	TemplateID string            `json:"template_id"`
	To         string            `json:"to"`
	CC         []string          `json:"cc,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
}

// Client talks to the transactional email service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the email client from configuration.
func NewClient(cfg config.EmailConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Send posts the templated message to the email service. Non-2xx responses
// surface as dependency errors so callers can keep local state untouched.
func (c *Client) Send(ctx context.Context, req SendRequest) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "email client not configured")
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email template id is required")
	}
	if strings.TrimSpace(req.To) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email recipient is required")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal email request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/send", bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build email request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute email request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return pkgerrors.New(
			pkgerrors.CodeDependency,
			fmt.Sprintf("email service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		)
	}

	return nil
}
