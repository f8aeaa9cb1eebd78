package observability

import (
	"strings"
)

const (
	AttrQueryName      = "query.name"
	AttrQueryID        = "query.id"
	AttrRemoteHost     = "server.address"
	AttrHTTPMethod     = "http.request.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatusCode = "http.response.status_code"
	AttrRowCount       = "query.row_count"
)

var secretKeySubstrings = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"api_key",
	"api-key",
	"apikey",
	"authorization",
}

// RedactAttributeValue masks values for known-sensitive keys.
func RedactAttributeValue(key string, value string) string {
	lower := strings.ToLower(key)
	for _, needle := range secretKeySubstrings {
		if strings.Contains(lower, needle) {
			return "[REDACTED]"
		}
	}
	return value
}
