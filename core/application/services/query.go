package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hyperterse/dataexplorer/core/application/render"
	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/domain/interfaces"
	"github.com/hyperterse/dataexplorer/core/infrastructure/discourse"
	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
	"github.com/hyperterse/dataexplorer/core/infrastructure/metrics"
	"github.com/hyperterse/dataexplorer/core/logger"
	"github.com/hyperterse/dataexplorer/core/observability"
	sharedctx "github.com/hyperterse/dataexplorer/core/shared/context"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

// DefaultConcurrency bounds RunAll when the caller passes zero or less
const DefaultConcurrency = 4

// QueryService runs queries and renders their tables. It is shared by the
// CLI commands and the HTTP transport.
type QueryService struct {
	executor interfaces.QueryExecutor
}

var _ interfaces.QueryService = (*QueryService)(nil)

// NewQueryService creates a new QueryService
func NewQueryService(executor interfaces.QueryExecutor) *QueryService {
	return &QueryService{
		executor: executor,
	}
}

// Run executes one query. A result the remote flags as unsuccessful is still
// rendered; the remote errors are logged as a warning.
func (s *QueryService) Run(ctx context.Context, req domain.RunRequest) (*domain.Report, error) {
	log := logging.New("query")
	name := displayName(req)
	ctx = sharedctx.WithQueryName(ctx, name)

	log.Infof("Running query: %s", name)
	start := time.Now()

	result, err := s.executor.ExecuteQuery(ctx, &req.Request)
	if err != nil {
		observability.RecordQueryExecution(ctx, name, false, elapsedMS(start))
		return nil, logger.WithTag("query", classify(name, err))
	}

	if !result.Success {
		if len(result.Errors) > 0 {
			log.Warnf("Query %s reported errors: %s", name, strings.Join(result.Errors, "; "))
		} else {
			log.Warnf("Query %s reported success=false", name)
		}
	}

	table, err := render.ResultsToTable(result)
	if err != nil {
		observability.RecordQueryExecution(ctx, name, false, elapsedMS(start))
		return nil, logger.WithTag("query", apperrors.WrapError(
			apperrors.ErrCodeRenderFailed,
			fmt.Sprintf("query '%s' returned a result that cannot be rendered", name),
			err,
		))
	}

	metrics.ObserveRenderedRows(name, len(result.Rows))
	observability.RecordQueryExecution(ctx, name, true, elapsedMS(start))
	log.Debugf("Query %s completed, %d row(s) in %.1fms remote time", name, len(result.Rows), result.Duration)

	return &domain.Report{
		Name:        name,
		Description: req.Description,
		Result:      result,
		Table:       table,
	}, nil
}

// RunAll executes the requests with at most concurrency in flight. Reports
// come back in request order. The first failure cancels the remaining runs
// and is returned alone.
func (s *QueryService) RunAll(ctx context.Context, reqs []domain.RunRequest, concurrency int) ([]*domain.Report, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	reports := make([]*domain.Report, len(reqs))
	for i, req := range reqs {
		g.Go(func() error {
			report, err := s.Run(gctx, req)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func displayName(req domain.RunRequest) string {
	if req.Name != "" {
		return req.Name
	}
	return "query " + req.Request.ID.String()
}

func classify(name string, err error) *apperrors.AppError {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return apperrors.WrapError(apperrors.ErrCodeInvalidInput, fmt.Sprintf("query '%s' has an invalid request", name), err)
	}

	var statusErr *discourse.StatusError
	if errors.As(err, &statusErr) {
		return apperrors.WrapError(apperrors.ErrCodeRemoteStatus, fmt.Sprintf("query '%s' was rejected by the remote", name), err)
	}

	return apperrors.WrapError(apperrors.ErrCodeRequestFailed, fmt.Sprintf("query '%s' failed", name), err)
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
