package ports

import (
	"context"

	"github.com/roeshane/life-coach-reflections/internal/domain"
)

type Notifier interface {
	NotifyFailure(ctx context.Context, notice domain.FailureNotice) error
}
