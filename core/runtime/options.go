package runtime

import (
	"github.com/hyperterse/dataexplorer/core/application/catalog"
	"github.com/hyperterse/dataexplorer/core/domain"
)

// CatalogFactory builds the query catalog for a model. The CLI supplies one
// that applies flag, environment and keyring overrides.
type CatalogFactory func(model *domain.Model) (*catalog.Catalog, error)

type RuntimeOption func(*Runtime)

// WithCatalogFactory replaces the default factory, which uses the host and
// API key written in the model.
func WithCatalogFactory(factory CatalogFactory) RuntimeOption {
	return func(r *Runtime) {
		if factory != nil {
			r.factory = factory
		}
	}
}

// WithListenHost sets the interface the HTTP server binds to. The default is
// loopback only.
func WithListenHost(host string) RuntimeOption {
	return func(r *Runtime) {
		r.host = host
	}
}

// WithAllowedOrigins lists the browser origins allowed to call the server.
func WithAllowedOrigins(origins []string) RuntimeOption {
	return func(r *Runtime) {
		r.allowedOrigins = origins
	}
}

func defaultCatalogFactory(model *domain.Model) (*catalog.Catalog, error) {
	return catalog.New(model, model.Host, model.APIKey), nil
}
