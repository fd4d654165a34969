package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/lexsift/lexsift/internal/parser"
	"github.com/lexsift/lexsift/internal/structure"
)

type extractRequest struct {
	Markup string `json:"markup"`
	// Mode "records" returns every classified record including titles
	// and links; the default "rows" returns text rows with flattened
	// context.
	Mode string `json:"mode,omitempty"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Markup) == "" {
		jsonError(w, "markup is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch req.Mode {
	case "", "rows":
		rows := structure.Extract(req.Markup)
		json.NewEncoder(w).Encode(map[string]any{"rows": rows})
	case "records":
		records := structure.Records(req.Markup)
		json.NewEncoder(w).Encode(map[string]any{"records": records})
	default:
		jsonError(w, fmt.Sprintf("unknown mode: %s", req.Mode), http.StatusBadRequest)
	}
}

type splitRequest struct {
	Article string `json:"article"`
}

// handleSplit splits an article into numbered paragraphs. The article
// text arrives either as JSON or as an uploaded file in a supported
// format.
func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	article, ok := s.readArticle(w, r)
	if !ok {
		return
	}

	paragraphs := structure.SplitParagraphs(article)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"paragraphs": paragraphs})
}

// readArticle pulls article text from the request, writing the error
// response itself when extraction fails.
func (s *Server) readArticle(w http.ResponseWriter, r *http.Request) (string, bool) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req splitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return "", false
		}
		if req.Article == "" {
			jsonError(w, "article is required", http.StatusBadRequest)
			return "", false
		}
		return req.Article, true
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", false
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	if pdfParser, isPDF := p.(*parser.PDFParser); isPDF {
		pdfParser.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}

	article, err := p.Parse(strings.NewReader(string(data)), filename)
	if err != nil {
		jsonError(w, "parse failed: "+err.Error(), http.StatusUnprocessableEntity)
		return "", false
	}
	return article, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
