package domain

import (
	"strconv"
	"strings"
)

// QueryID identifies a query saved on the remote Data Explorer. The remote
// accepts numeric ids; they are carried as text so string and integer ids
// build the same URL.
type QueryID string

// QueryIDFromInt converts a numeric query id.
func QueryIDFromInt(id int64) QueryID {
	return QueryID(strconv.FormatInt(id, 10))
}

func (id QueryID) String() string {
	return string(id)
}

// QueryRequest is the input of a single query execution. It is built per call
// and never persisted.
type QueryRequest struct {
	// Hostname of the forum, without scheme (e.g. "forum.example.com")
	Hostname string
	ID       QueryID
	Params   map[string]string
	// APIKey is sent as the api-key header and must never be logged
	APIKey string
}

// Validate checks the fields needed to build the request URL.
func (r *QueryRequest) Validate() error {
	if r == nil {
		return ErrInvalidRequest
	}
	if strings.TrimSpace(r.Hostname) == "" || strings.Contains(r.Hostname, "://") {
		return ErrInvalidHostname
	}
	if strings.TrimSpace(string(r.ID)) == "" {
		return ErrInvalidQueryID
	}
	return nil
}

// Domain errors
var (
	ErrInvalidRequest  = &DomainError{Message: "query request cannot be nil"}
	ErrInvalidHostname = &DomainError{Message: "hostname must be non-empty and must not include a scheme"}
	ErrInvalidQueryID  = &DomainError{Message: "query id cannot be empty"}
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
