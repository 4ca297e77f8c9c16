package ports

import (
	"context"

	"github.com/roeshane/life-coach-reflections/internal/domain"
)

// CompletionClient performs exactly one request against the completion endpoint.
// Implementations never retry.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string, credential domain.Credential) (string, error)
}
