package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsAndBody(t *testing.T) {
	input := `# Article 1

1.   This Regulation lays down rules.

2.   It applies from the date of entry into force.
`
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "article.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := strings.Split(got, "\n\n")
	if len(parts) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %q", len(parts), got)
	}
	if parts[0] != "Article 1" {
		t.Errorf("heading = %q", parts[0])
	}
	if parts[1] != "1.   This Regulation lays down rules." {
		t.Errorf("first paragraph = %q", parts[1])
	}
}

func TestMarkdownParser_ListItems(t *testing.T) {
	input := `Requirements:

- keep records
- hold a certificate
`
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "article.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "keep records") {
		t.Errorf("list item text missing: %q", got)
	}
	if !strings.Contains(got, "hold a certificate") {
		t.Errorf("list item text missing: %q", got)
	}
}

func TestMarkdownParser_NoDuplicatedText(t *testing.T) {
	input := "A single paragraph of text.\n"

	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "article.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := strings.Count(got, "A single paragraph"); count != 1 {
		t.Errorf("paragraph text appears %d times: %q", count, got)
	}
}
