package api

import (
	"encoding/json"
	"net/http"

	"github.com/lexsift/lexsift/internal/celex"
)

// handleCelexGuess resolves slash notation like "2019/947" to the
// CELEX identifiers the Publications Office actually knows, using the
// SPARQL endpoint to confirm candidates.
func (s *Server) handleCelexGuess(w http.ResponseWriter, r *http.Request) {
	notation := r.URL.Query().Get("notation")
	if notation == "" {
		jsonError(w, "notation is required", http.StatusBadRequest)
		return
	}
	docType := celex.TypeCode(r.URL.Query().Get("type"))
	sector := celex.Sector(r.URL.Query().Get("sector"))

	ids, err := celex.Guess(r.Context(), s.sparql, notation, docType, sector)
	if err != nil {
		s.log.Error("celex guess failed", "notation", notation, "error", err)
		jsonError(w, "guess failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"notation":  notation,
		"celex_ids": ids,
	})
}
