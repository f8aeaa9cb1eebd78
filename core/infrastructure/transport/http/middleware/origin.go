package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
	"github.com/hyperterse/dataexplorer/core/infrastructure/transport/http/dto"
)

// RejectForeignOrigins answers 403 to any request whose Origin header is not
// in allowed. Requests without an Origin header (curl, scripts) pass. This
// covers simple cross-site POSTs that never send a preflight.
func RejectForeignOrigins(allowed []string) func(http.Handler) http.Handler {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		set[strings.ToLower(strings.TrimRight(origin, "/"))] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || set[strings.ToLower(origin)] {
				next.ServeHTTP(w, r)
				return
			}

			logging.New("http").Warnf("Rejected %s %s from origin %s", r.Method, r.URL.Path, origin)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(dto.ErrorResponse{
				Success: false,
				Code:    "FORBIDDEN_ORIGIN",
				Error:   "origin " + origin + " is not allowed",
			})
		})
	}
}
