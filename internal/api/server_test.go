package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lexsift/lexsift/internal/celex"
	"github.com/lexsift/lexsift/internal/config"
	"github.com/lexsift/lexsift/internal/pipeline"
	"github.com/lexsift/lexsift/internal/sparql"
)

const testAPIKey = "test-key"

type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) HTMLByCELEX(ctx context.Context, celexID string) (string, error) {
	if markup, ok := f.pages[celexID]; ok {
		return markup, nil
	}
	return "", &notFoundError{}
}

type notFoundError struct{}

func (e *notFoundError) Error() string { return "document not found" }

type stubRunner struct {
	results *sparql.Results
	err     error
}

func (r *stubRunner) Query(ctx context.Context, query string) (*sparql.Results, error) {
	return r.results, r.err
}

func testServer(t *testing.T, fetcher pipeline.Fetcher, runner celex.Runner, start bool) *Server {
	t.Helper()
	cfg := config.Config{
		LexsiftAPIKey:  testAPIKey,
		WorkerCount:    2,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := pipeline.NewOrchestrator(cfg, fetcher, log)
	if start {
		orch.Start(context.Background())
		t.Cleanup(orch.Stop)
	}
	return NewServer(orch, nil, runner, log, cfg)
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestHealthNoAuth(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestAuthRequired(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("{}")))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("missing auth: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer wrong")
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad key: status = %d", rec.Code)
	}
}

func TestExtractRows(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	markup := `<html><body><p class="normal">1. The operator shall register.</p></body></html>`
	body, _ := json.Marshal(map[string]string{"markup": markup})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/extract", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Rows []struct {
			Text      *string `json:"text"`
			Paragraph string  `json:"paragraph"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("rows = %d", len(resp.Rows))
	}
	if resp.Rows[0].Text == nil || *resp.Rows[0].Text != "The operator shall register." {
		t.Errorf("text = %v", resp.Rows[0].Text)
	}
	if resp.Rows[0].Paragraph != "1" {
		t.Errorf("paragraph = %q", resp.Rows[0].Paragraph)
	}
}

func TestExtractRecordsMode(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	markup := `<html><body><p class="doc-ti">REGULATION 2019/947</p></body></html>`
	body, _ := json.Marshal(map[string]string{"markup": markup, "mode": "records"})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/extract", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Records []struct {
			Type string `json:"type"`
		} `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Records) != 1 || resp.Records[0].Type != "doc-title" {
		t.Errorf("records = %+v", resp.Records)
	}
}

func TestExtractValidation(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	body, _ := json.Marshal(map[string]string{"markup": ""})
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/extract", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty markup: status = %d", rec.Code)
	}

	body, _ = json.Marshal(map[string]string{"markup": "<html/>", "mode": "bogus"})
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/extract", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bogus mode: status = %d", rec.Code)
	}
}

func TestSplitJSON(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	article := "Intro.\n1.      First rule.\n2.      Second rule."
	body, _ := json.Marshal(map[string]string{"article": article})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/split", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Paragraphs []struct {
			Label string `json:"label"`
			Text  string `json:"text"`
		} `json:"paragraphs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Paragraphs) != 3 {
		t.Fatalf("paragraphs = %+v", resp.Paragraphs)
	}
	if resp.Paragraphs[1].Label != "1." || resp.Paragraphs[1].Text != "First rule." {
		t.Errorf("paragraph 1 = %+v", resp.Paragraphs[1])
	}
}

func TestSplitMultipartFile(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "article.txt")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("1.      First rule.\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/split", &buf)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "First rule.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestSplitUnsupportedFile(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "article.exe")
	fw.Write([]byte("binary"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/split", &buf)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestCelexGuess(t *testing.T) {
	results := &sparql.Results{}
	results.Results.Bindings = []map[string]sparql.Binding{
		{"o": {Type: "uri", Value: "http://publications.europa.eu/resource/celex/32019R0947"}},
	}
	server := testServer(t, &stubFetcher{}, &stubRunner{results: results}, false)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/celex/guess?notation=2019/947", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Notation string   `json:"notation"`
		CelexIDs []string `json:"celex_ids"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.CelexIDs) != 1 || resp.CelexIDs[0] != "32019R0947" {
		t.Errorf("celex_ids = %v", resp.CelexIDs)
	}
}

func TestCelexGuessRequiresNotation(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/celex/guess", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestDocumentJobLifecycle(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"32019R0947": `<html><body><p class="normal">1. The operator shall register.</p></body></html>`,
	}}
	server := testServer(t, fetcher, &stubRunner{}, true)

	body, _ := json.Marshal(map[string]any{"documents": []string{"32019R0947"}})
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/documents", bytes.NewReader(body)))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d, body %s", rec.Code, rec.Body.String())
	}
	var submitted struct {
		JobID   string `json:"job_id"`
		PollURL string `json:"poll_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if submitted.JobID == "" {
		t.Fatal("no job_id returned")
	}

	deadline := time.Now().Add(2 * time.Second)
	var status string
	for time.Now().Before(deadline) {
		rec = httptest.NewRecorder()
		server.ServeHTTP(rec, authedRequest(http.MethodGet, submitted.PollURL, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status endpoint = %d", rec.Code)
		}
		var poll struct {
			Status string `json:"status"`
		}
		json.Unmarshal(rec.Body.Bytes(), &poll)
		status = poll.Status
		if status == "completed" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if status != "completed" {
		t.Fatalf("job status = %q", status)
	}

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/documents/"+submitted.JobID+"/rows", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("rows status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "The operator shall register.") {
		t.Errorf("rows body = %s", rec.Body.String())
	}
}

func TestJobRowsBeforeCompletion(t *testing.T) {
	// Orchestrator never started, so the job stays queued.
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	body, _ := json.Marshal(map[string]any{"documents": []string{"32019R0947"}})
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/documents", bytes.NewReader(body)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("submit status = %d", rec.Code)
	}
	var submitted struct {
		JobID string `json:"job_id"`
	}
	json.Unmarshal(rec.Body.Bytes(), &submitted)

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/documents/"+submitted.JobID+"/rows", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("rows before completion: status = %d", rec.Code)
	}
}

func TestJobNotFound(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/documents/nope/status", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestSubmitDocumentsValidation(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	body, _ := json.Marshal(map[string]any{"documents": []string{}})
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/documents", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestFetchStatsUnavailableWithoutClient(t *testing.T) {
	server := testServer(t, &stubFetcher{}, &stubRunner{}, false)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/stats/fetch", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d", rec.Code)
	}
}
