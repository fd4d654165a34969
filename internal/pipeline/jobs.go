// Package pipeline runs asynchronous document extraction jobs. A job
// names one or more documents by identifier; workers fetch each
// rendition, recover its structure and optionally filter the rows.
package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/lexsift/lexsift/internal/structure"
)

// JobStatus represents the state of an extraction job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusFetching   JobStatus = "fetching"
	StatusExtracting JobStatus = "extracting"
	StatusFiltering  JobStatus = "filtering"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// DocumentResult holds the rows recovered from a single document.
type DocumentResult struct {
	ID         string          `json:"id"`
	Rows       []structure.Row `json:"rows"`
	Paragraphs []string        `json:"paragraphs,omitempty"`
}

// Job tracks the state of a single extraction request.
type Job struct {
	mu sync.Mutex

	ID        string   `json:"job_id"`
	Documents []string `json:"documents"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	// Filtered requests the substantive-paragraph filter on top of
	// structural extraction.
	Filtered bool `json:"filtered"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	results []DocumentResult
	errors  []string
}

// Progress tracks per-document processing progress.
type Progress struct {
	TotalDocuments     int      `json:"total_documents"`
	DocumentsProcessed int      `json:"documents_processed"`
	RowsExtracted      int      `json:"rows_extracted"`
	RowsKept           int      `json:"rows_kept"`
	Errors             []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// AddResult records the outcome for one document.
func (j *Job) AddResult(result DocumentResult, extracted, kept int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, result)
	j.Progress.DocumentsProcessed++
	j.Progress.RowsExtracted += extracted
	j.Progress.RowsKept += kept
	j.UpdatedAt = time.Now()
}

// IncrProcessed counts a document that produced no result.
func (j *Job) IncrProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocumentsProcessed++
	j.UpdatedAt = time.Now()
}

// Results returns a copy of the per-document results collected so far.
func (j *Job) Results() []DocumentResult {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]DocumentResult, len(j.results))
	copy(out, j.results)
	return out
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Documents []string  `json:"documents"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filtered  bool      `json:"filtered"`
	Progress  Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	docs := make([]string, len(j.Documents))
	copy(docs, j.Documents)
	return JobSnapshot{
		ID:        j.ID,
		Documents: docs,
		Status:    j.Status,
		Phase:     j.Phase,
		Filtered:  j.Filtered,
		Progress: Progress{
			TotalDocuments:     j.Progress.TotalDocuments,
			DocumentsProcessed: j.Progress.DocumentsProcessed,
			RowsExtracted:      j.Progress.RowsExtracted,
			RowsKept:           j.Progress.RowsKept,
			Errors:             errs,
		},
	}
}

// NewJob builds a queued job for the given document identifiers.
func NewJob(documents []string, filtered bool) *Job {
	now := time.Now()
	docs := make([]string, len(documents))
	copy(docs, documents)
	return &Job{
		ID:        JobID(docs, now),
		Documents: docs,
		Status:    StatusQueued,
		Filtered:  filtered,
		Progress:  Progress{TotalDocuments: len(docs)},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// JobID derives a stable identifier from the requested documents and
// submission time.
func JobID(documents []string, at time.Time) string {
	h := sha256.New()
	for _, doc := range documents {
		h.Write([]byte(doc))
		h.Write([]byte{0})
	}
	fmt.Fprintf(h, "%d", at.UnixNano())
	return fmt.Sprintf("%x", h.Sum(nil))[:24]
}
