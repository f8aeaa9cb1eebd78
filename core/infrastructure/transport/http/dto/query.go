package dto

// RunQueryRequest is the body of POST /queries/{name}/run. Both fields are
// optional.
type RunQueryRequest struct {
	// Params override the configured params of the query
	Params map[string]string `json:"params" validate:"omitempty,dive,keys,required,endkeys"`
	Format string            `json:"format" validate:"omitempty,oneof=markdown md json"`
}

// QuerySummary describes one configured query
type QuerySummary struct {
	Name        string            `json:"name"`
	ID          string            `json:"id"`
	Description string            `json:"description,omitempty"`
	Params      map[string]string `json:"params,omitempty"`
}

// QueryListResponse is the body of GET /queries
type QueryListResponse struct {
	Success bool           `json:"success"`
	Queries []QuerySummary `json:"queries"`
}
