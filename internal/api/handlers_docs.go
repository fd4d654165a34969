package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexsift/lexsift/internal/pipeline"
)

type submitDocumentsRequest struct {
	// Documents lists CELEX identifiers or slash notation like
	// "2019/947".
	Documents []string `json:"documents"`
	Filtered  bool     `json:"filtered"`
}

func (s *Server) handleSubmitDocuments(w http.ResponseWriter, r *http.Request) {
	var req submitDocumentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		jsonError(w, "at least one document is required", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(req.Documents, req.Filtered)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/documents/%s/status", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":    snap.ID,
		"documents": snap.Documents,
		"status":    snap.Status,
		"phase":     snap.Phase,
		"filtered":  snap.Filtered,
		"progress":  snap.Progress,
	})
}

func (s *Server) handleJobRows(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}

	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted, pipeline.StatusPartial:
	default:
		jsonError(w, fmt.Sprintf("job not finished: %s", snap.Status), http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":  snap.ID,
		"status":  snap.Status,
		"results": job.Results(),
	})
}
