package interfaces

import (
	"context"

	"github.com/hyperterse/dataexplorer/core/domain"
)

// QueryExecutor runs a saved query on the remote Data Explorer
type QueryExecutor interface {
	// ExecuteQuery submits the request and returns the parsed result
	ExecuteQuery(ctx context.Context, req *domain.QueryRequest) (*domain.QueryResult, error)
}
