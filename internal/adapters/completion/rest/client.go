package rest

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

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-pro"

	maxResponseBytes = 1 << 20
	errorBodyLimit   = 512
)

type Config struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	policy     domain.GenerationPolicy
	logger     *zap.Logger
}

var _ ports.CompletionClient = (*Client)(nil)

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:   strings.TrimRight(baseURL, "/") + "/models/" + model + ":generateContent",
		httpClient: httpClient,
		policy:     domain.DefaultGenerationPolicy,
		logger:     logger,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string, credential domain.Credential) (string, error) {
	payload, err := json.Marshal(newGenerateRequest(prompt, c.policy))
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"?key="+url.QueryEscape(string(credential)), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", &domain.TransportError{Err: redactKey(err)}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return "", &domain.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		c.logger.Debug("completion endpoint rejected request",
			zap.Int("status", response.StatusCode),
			zap.Int("body_bytes", len(body)))
		return "", &domain.ProtocolError{StatusCode: response.StatusCode, Body: truncate(strings.TrimSpace(string(body)), errorBodyLimit)}
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", &domain.EmptyResponseError{Reason: fmt.Sprintf("decode payload: %v", err)}
	}

	return decoded.firstText()
}

// redactKey strips the query string from *url.Error so the credential never ends up in logs.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if parsed, parseErr := url.Parse(urlErr.URL); parseErr == nil {
			parsed.RawQuery = ""
			return &url.Error{Op: urlErr.Op, URL: parsed.String(), Err: urlErr.Err}
		}
	}
	return err
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
