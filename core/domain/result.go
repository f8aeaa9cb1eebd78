package domain

import "encoding/json"

// QueryResult is the body returned by a successful Data Explorer run.
// Rows are positionally aligned with Columns; the remote enforces that and it
// is not re-checked here.
type QueryResult struct {
	// ColRender maps column names to render hints. Not used for rendering.
	ColRender map[string]string `json:"colrender"`

	// Columns lists the column names in order
	Columns []string `json:"columns"`

	// DefaultLimit is the default row limit applied by the remote
	DefaultLimit int `json:"default_limit"`

	// Duration of the execution in milliseconds
	Duration float64 `json:"duration"`

	// Errors reported while parsing or executing the query
	Errors []string `json:"errors"`

	// Params echoes the parameters the query ran with
	Params map[string]string `json:"params"`

	// Relations holds related objects keyed by column-like names. Kept opaque.
	Relations map[string][]json.RawMessage `json:"relations"`

	// ResultCount is the number of rows returned
	ResultCount int `json:"result_count"`

	Rows [][]Value `json:"rows"`

	// Success reports whether the remote executed the query
	Success bool `json:"success"`
}
