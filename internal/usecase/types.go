package usecase

import (
	"context"

	"github.com/google/uuid"

	"job-copilot/internal/domain"
	"job-copilot/pkg/ai"
)

// JobsRepo loads job posts scoped to their owner.
type JobsRepo interface {
	GetForOwner(ctx context.Context, id uuid.UUID, userID string) (*domain.JobPost, error)
}

// AnalysisRepo is the analysis cache and persistence writer. Find returns
// (nil, nil) when no analysis is stored yet.
type AnalysisRepo interface {
	Find(ctx context.Context, jobPostID uuid.UUID, userID string) (*domain.Analysis, error)
	Insert(ctx context.Context, a *domain.Analysis) error
}

// Completer is the external completion provider. Ready reports a missing
// credential without making a network call.
type Completer interface {
	Ready() error
	Complete(ctx context.Context, messages []ai.Message) (string, error)
}

// Limiter throttles analyze calls per identity.
type Limiter interface {
	Limited(identity string) bool
}
