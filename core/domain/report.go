package domain

// RunRequest names a query execution. Name is a display label; it is the
// configured query name when the query comes from a configuration file.
type RunRequest struct {
	Name        string
	Description string
	Request     QueryRequest
}

// Report is the outcome of a RunRequest: the raw result plus its rendered
// Markdown table.
type Report struct {
	Name        string
	Description string
	Result      *QueryResult
	Table       string
}
