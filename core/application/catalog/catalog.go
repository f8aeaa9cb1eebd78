package catalog

import (
	"fmt"
	"strings"

	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
	apperrors "github.com/hyperterse/dataexplorer/core/shared/errors"
)

// Catalog turns configured query names into run requests against one forum.
type Catalog struct {
	model    *domain.Model
	hostname string
	apiKey   string
}

// New creates a catalog. hostname and apiKey are the resolved connection
// settings; they take precedence over the ones in the model.
func New(model *domain.Model, hostname, apiKey string) *Catalog {
	if model == nil {
		model = &domain.Model{}
	}
	return &Catalog{model: model, hostname: hostname, apiKey: apiKey}
}

// Hostname returns the forum the catalog targets.
func (c *Catalog) Hostname() string {
	return c.hostname
}

// Resolve builds the run request for a configured query. overrides replace
// configured params with the same name.
func (c *Catalog) Resolve(name string, overrides map[string]string) (domain.RunRequest, error) {
	log := logging.New("catalog")

	query, ok := c.model.FindQuery(name)
	if !ok {
		log.Debugf("Query not found: %s", name)
		return domain.RunRequest{}, apperrors.NewAppError(
			apperrors.ErrCodeQueryNotFound,
			fmt.Sprintf("query '%s' not found", name),
			nil,
		)
	}

	params := query.MergedParams(overrides)
	log.Debugf("Resolved query %s to id %s with %d param(s)", name, query.ID, len(params))

	return domain.RunRequest{
		Name:        query.Name,
		Description: query.Description,
		Request: domain.QueryRequest{
			Hostname: c.hostname,
			ID:       query.ID,
			Params:   params,
			APIKey:   c.apiKey,
		},
	}, nil
}

// ResolveAll resolves every configured query, or only the named ones when
// names is not empty. Configuration order is kept either way.
func (c *Catalog) ResolveAll(names []string) ([]domain.RunRequest, error) {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		// The first unknown name, in the order given, is reported
		if _, ok := c.model.FindQuery(n); !ok {
			return nil, apperrors.NewAppError(
				apperrors.ErrCodeQueryNotFound,
				fmt.Sprintf("query '%s' not found", n),
				nil,
			)
		}
		wanted[n] = true
	}

	reqs := make([]domain.RunRequest, 0, len(c.model.Queries))
	for _, q := range c.model.Queries {
		if len(wanted) > 0 && !wanted[q.Name] {
			continue
		}
		req, err := c.Resolve(q.Name, nil)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Adhoc builds a run request for a remote query id that is not configured.
func (c *Catalog) Adhoc(id domain.QueryID, params map[string]string) domain.RunRequest {
	if params == nil {
		params = map[string]string{}
	}
	return domain.RunRequest{
		Request: domain.QueryRequest{
			Hostname: c.hostname,
			ID:       id,
			Params:   params,
			APIKey:   c.apiKey,
		},
	}
}

// GetQuery returns a query definition by name
func (c *Catalog) GetQuery(name string) (*domain.QueryDefinition, error) {
	if q, ok := c.model.FindQuery(name); ok {
		return q, nil
	}
	return nil, apperrors.NewAppError(apperrors.ErrCodeQueryNotFound, fmt.Sprintf("query '%s' not found", name), nil)
}

// GetAllQueries returns all query definitions in configuration order
func (c *Catalog) GetAllQueries() []*domain.QueryDefinition {
	return c.model.Queries
}
