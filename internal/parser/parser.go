// Package parser converts uploaded article files into plain text
// ready for paragraph splitting. Each supported format is handled by
// a dedicated parser that strips markup and layout while preserving
// paragraph breaks.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Parser extracts the plain text of an article from raw file bytes.
type Parser interface {
	Parse(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// joinParagraphs assembles extracted paragraphs into the article text,
// separating them with blank lines and dropping empties.
func joinParagraphs(paragraphs []string) string {
	kept := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para != "" {
			kept = append(kept, para)
		}
	}
	return strings.Join(kept, "\n\n")
}
