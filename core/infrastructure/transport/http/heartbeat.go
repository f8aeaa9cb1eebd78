package http

import (
	"encoding/json"
	"net/http"

	"github.com/hyperterse/dataexplorer/core/infrastructure/transport/http/dto"
)

func handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dto.HealthResponse{Success: true})
}
