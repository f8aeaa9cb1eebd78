package context

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// QueryNameKey is the context key for the configured query name
	QueryNameKey contextKey = "query_name"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithQueryName adds the query name to the context
func WithQueryName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, QueryNameKey, name)
}

// GetQueryName retrieves the query name from context
func GetQueryName(ctx context.Context) string {
	if name, ok := ctx.Value(QueryNameKey).(string); ok {
		return name
	}
	return ""
}

// GenerateRequestID generates a unique request ID
func GenerateRequestID() string {
	return uuid.NewString()
}

// EnsureRequestID returns ctx with a request ID, generating one if absent
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := GetRequestID(ctx); id != "" {
		return ctx, id
	}
	id := GenerateRequestID()
	return WithRequestID(ctx, id), id
}
