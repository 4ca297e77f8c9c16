package genaisdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	DefaultModel      = "gemini-pro"
	defaultAPIVersion = "v1beta"
)

type Config struct {
	// BaseURL overrides the SDK endpoint root, e.g. "https://generativelanguage.googleapis.com/".
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client issues completions through the official Gemini SDK. A fresh SDK client is
// built per call because the credential is captured at issue time.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	config     *genai.GenerateContentConfig
	logger     *zap.Logger
}

var _ ports.CompletionClient = (*Client)(nil)

func NewClient(cfg Config) *Client {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimSpace(cfg.BaseURL),
		model:      model,
		httpClient: cfg.HTTPClient,
		config:     generateConfig(domain.DefaultGenerationPolicy),
		logger:     logger,
	}
}

func (c *Client) Complete(ctx context.Context, prompt string, credential domain.Credential) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     string(credential),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.baseURL,
			APIVersion: defaultAPIVersion,
		},
	})
	if err != nil {
		return "", &domain.TransportError{Err: fmt.Errorf("create genai client: %w", err)}
	}

	response, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			c.logger.Debug("genai rejected request", zap.Int("status", apiErr.Code), zap.String("reason", apiErr.Status))
			return "", &domain.ProtocolError{StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return "", &domain.TransportError{Err: err}
	}

	return firstText(response)
}

func generateConfig(policy domain.GenerationPolicy) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(policy.Temperature),
		TopK:            genai.Ptr(float32(policy.TopK)),
		TopP:            genai.Ptr(policy.TopP),
		MaxOutputTokens: int32(policy.MaxOutputTokens),
	}
}

func firstText(response *genai.GenerateContentResponse) (string, error) {
	if response == nil || len(response.Candidates) == 0 {
		return "", &domain.EmptyResponseError{Reason: "candidates missing"}
	}
	first := response.Candidates[0]
	if first == nil || first.Content == nil || len(first.Content.Parts) == 0 || first.Content.Parts[0] == nil {
		return "", &domain.EmptyResponseError{Reason: "first candidate has no parts"}
	}
	return first.Content.Parts[0].Text, nil
}
