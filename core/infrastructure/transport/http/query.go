package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hyperterse/dataexplorer/core/application/catalog"
	"github.com/hyperterse/dataexplorer/core/application/render"
	"github.com/hyperterse/dataexplorer/core/domain/interfaces"
	"github.com/hyperterse/dataexplorer/core/infrastructure/transport/http/dto"
	"github.com/hyperterse/dataexplorer/core/infrastructure/transport/http/handlers"
	"github.com/hyperterse/dataexplorer/core/infrastructure/transport/http/middleware"
	sharedctx "github.com/hyperterse/dataexplorer/core/shared/context"
	"github.com/hyperterse/dataexplorer/core/shared/errors"
)

// CatalogSource returns the catalog current at call time. The runtime swaps
// it when the configuration is reloaded.
type CatalogSource func() *catalog.Catalog

// QueryHandler serves the configured queries
type QueryHandler struct {
	*handlers.BaseHandler
	service interfaces.QueryService
	catalog CatalogSource
}

// NewQueryHandler creates a new QueryHandler
func NewQueryHandler(service interfaces.QueryService, source CatalogSource) *QueryHandler {
	return &QueryHandler{
		BaseHandler: handlers.NewBaseHandler("handler"),
		service:     service,
		catalog:     source,
	}
}

// List returns the configured queries in configuration order
func (h *QueryHandler) List(w http.ResponseWriter, r *http.Request) {
	defs := h.catalog().GetAllQueries()

	resp := dto.QueryListResponse{
		Success: true,
		Queries: make([]dto.QuerySummary, 0, len(defs)),
	}
	for _, q := range defs {
		resp.Queries = append(resp.Queries, dto.QuerySummary{
			Name:        q.Name,
			ID:          q.ID.String(),
			Description: q.Description,
			Params:      q.Params,
		})
	}
	h.WriteSuccess(w, resp)
}

// Run executes a configured query and writes the rendered result
func (h *QueryHandler) Run(w http.ResponseWriter, r *http.Request) {
	log := h.Logger()
	name := chi.URLParam(r, "name")
	requestID := sharedctx.GetRequestID(r.Context())
	log.Infof("Request %s: run query %s", requestID, name)

	body, fieldErrs, err := middleware.DecodeAndValidate[dto.RunQueryRequest](r)
	if err != nil {
		h.WriteError(w, errors.NewAppError(errors.ErrCodeInvalidInput, "Invalid JSON", err))
		return
	}
	if len(fieldErrs) > 0 {
		h.WriteValidationError(w, fieldErrs)
		return
	}

	format, err := render.ParseFormat(body.Format)
	if err != nil {
		h.WriteError(w, errors.NewAppError(errors.ErrCodeInvalidInput, err.Error(), err))
		return
	}

	req, err := h.catalog().Resolve(name, body.Params)
	if err != nil {
		h.WriteError(w, err)
		return
	}

	report, err := h.service.Run(r.Context(), req)
	if err != nil {
		log.Warnf("Request %s: query %s failed: %v", requestID, name, err)
		h.WriteError(w, err)
		return
	}

	output := report.Table
	if format == render.FormatJSON {
		output, err = render.RenderJSON(report.Result)
		if err != nil {
			h.WriteError(w, errors.WrapError(errors.ErrCodeRenderFailed, "failed to render result", err))
			return
		}
	}

	h.WriteText(w, http.StatusOK, format.ContentType(), output)
}
