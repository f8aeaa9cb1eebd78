package runtime

import (
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/hyperterse/dataexplorer/core/application/catalog"
	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/domain/interfaces"
	httptransport "github.com/hyperterse/dataexplorer/core/infrastructure/transport/http"
	"github.com/hyperterse/dataexplorer/core/logger"
)

// Runtime serves the configured queries over HTTP
type Runtime struct {
	mu      sync.Mutex
	model   *domain.Model
	catalog atomic.Pointer[catalog.Catalog]
	factory CatalogFactory
	service interfaces.QueryService
	server  *httptransport.Server
	port    string

	host           string
	allowedOrigins []string
}

// NewRuntime creates a new runtime instance
func NewRuntime(model *domain.Model, service interfaces.QueryService, port string, opts ...RuntimeOption) (*Runtime, error) {
	if port == "" {
		port = "8080"
	}

	r := &Runtime{
		model:   model,
		factory: defaultCatalogFactory,
		service: service,
		port:    port,
	}
	for _, opt := range opts {
		opt(r)
	}

	cat, err := r.factory(model)
	if err != nil {
		return nil, err
	}
	r.catalog.Store(cat)

	return r, nil
}

// Catalog returns the catalog currently served
func (r *Runtime) Catalog() *catalog.Catalog {
	return r.catalog.Load()
}

// Addr returns the address the server listens on
func (r *Runtime) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.server == nil {
		return net.JoinHostPort(r.listenHost(), r.port)
	}
	return r.server.Addr()
}

func (r *Runtime) listenHost() string {
	if r.host == "" {
		return httptransport.DefaultHost
	}
	return r.host
}

// Start starts the runtime server and blocks until SIGTERM/SIGINT
func (r *Runtime) Start() error {
	if err := r.StartAsync(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	<-quit

	return r.Stop()
}

// StartAsync starts the runtime server without blocking
func (r *Runtime) StartAsync() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	server := httptransport.NewServer(
		r.port,
		httptransport.WithHost(r.host),
		httptransport.WithAllowedOrigins(r.allowedOrigins),
	)
	httptransport.RegisterRoutes(server.Router(), httptransport.NewQueryHandler(r.service, r.Catalog))
	if err := server.StartAsync(); err != nil {
		return err
	}
	r.server = server

	log := logger.New("runtime")
	log.Infof("Serving %d configured query definition(s) against %s", len(r.Catalog().GetAllQueries()), r.Catalog().Hostname())
	return nil
}

// ReloadModel swaps in a new model without restarting the HTTP server.
// Requests already running keep the catalog they started with.
func (r *Runtime) ReloadModel(model *domain.Model) error {
	log := logger.New("runtime")
	log.Infof("Reloading configuration")

	cat, err := r.factory(model)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.model = model
	r.mu.Unlock()
	r.catalog.Store(cat)

	log.Successf("Configuration reloaded: %d query definition(s)", len(cat.GetAllQueries()))
	return nil
}

// Stop stops the runtime server gracefully
func (r *Runtime) Stop() error {
	r.mu.Lock()
	server := r.server
	r.server = nil
	r.mu.Unlock()

	if server == nil {
		return nil
	}

	log := logger.New("runtime")
	log.Infof("Shutting down server")
	return server.Stop()
}
