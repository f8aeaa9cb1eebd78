package interfaces

import (
	"context"

	"github.com/hyperterse/dataexplorer/core/domain"
)

// QueryService defines the interface for query operations shared by the CLI
// and the HTTP transport
type QueryService interface {
	// Run executes one query and renders its table
	Run(ctx context.Context, req domain.RunRequest) (*domain.Report, error)

	// RunAll executes several queries concurrently, keeping request order
	RunAll(ctx context.Context, reqs []domain.RunRequest, concurrency int) ([]*domain.Report, error)
}
