package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleFetchStats(w http.ResponseWriter, r *http.Request) {
	if s.cellar == nil {
		jsonError(w, "fetch stats unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats":       s.cellar.Stats().Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
