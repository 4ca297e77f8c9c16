package genaisdk

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestCompleteReturnsFirstCandidateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-pro:generateContent"), r.URL.Path)
		assert.Equal(t, "VALIDKEY", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"괜찮아질 거예요."}]}}]}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})

	text, err := client.Complete(context.Background(), "prompt", "VALIDKEY")
	require.NoError(t, err)
	assert.Equal(t, "괜찮아질 거예요.", text)
}

func TestCompleteMapsAPIErrorToProtocolError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})

	_, err := client.Complete(context.Background(), "prompt", "BADKEY")
	require.Error(t, err)

	kind, code := domain.ClassifyError(err)
	assert.Equal(t, domain.ErrorKindProtocol, kind)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCompleteMapsMissingCandidatesToEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})

	_, err := client.Complete(context.Background(), "prompt", "VALIDKEY")
	var emptyErr *domain.EmptyResponseError
	require.ErrorAs(t, err, &emptyErr)
}

func TestFirstTextGuardsNilParts(t *testing.T) {
	_, err := firstText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}})
	assert.ErrorContains(t, err, "no parts")

	_, err = firstText(nil)
	assert.ErrorContains(t, err, "candidates missing")
}

func TestGenerateConfigUsesFixedPolicy(t *testing.T) {
	cfg := generateConfig(domain.DefaultGenerationPolicy)

	require.NotNil(t, cfg.Temperature)
	assert.InDelta(t, 0.7, *cfg.Temperature, 0.0001)
	require.NotNil(t, cfg.TopK)
	assert.InDelta(t, 40, *cfg.TopK, 0.0001)
	require.NotNil(t, cfg.TopP)
	assert.InDelta(t, 0.95, *cfg.TopP, 0.0001)
	assert.Equal(t, int32(500), cfg.MaxOutputTokens)
}
