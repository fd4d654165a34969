package structure

import (
	"strings"

	"golang.org/x/net/html"
)

// Records parses markup and returns every record the tree walk emits,
// titles and links included. Malformed markup yields an empty slice,
// never an error: well-formedness is not this package's concern.
func Records(markup string) []Record {
	root, err := parseRoot(markup)
	if err != nil || root == nil {
		return nil
	}
	recs, _ := walkChildren(root, nil, Context{})
	return recs
}

// Extract parses markup and returns the assembled tabular rows: each
// record's context snapshot flattened into top-level fields, with only
// text-type records retained. Titles, subtitles, group/section headers
// and links exist to build context and reference paths; they are
// intermediate signal, not output.
func Extract(markup string) []Row {
	var rows []Row
	for _, rec := range Records(markup) {
		if rec.Type != TypeText {
			continue
		}
		rows = append(rows, flatten(rec))
	}
	return rows
}

func flatten(rec Record) Row {
	return Row{
		Text:            rec.Text,
		Type:            rec.Type,
		Modifier:        rec.Modifier,
		Ref:             rec.Ref,
		Context:         rec.Context,
		Document:        rec.Context.Document,
		Group:           rec.Context.Group,
		Section:         rec.Context.Section,
		Article:         rec.Context.Article,
		ArticleSubtitle: rec.Context.ArticleSubtitle,
		Paragraph:       rec.Context.Paragraph,
	}
}

// parseRoot parses markup and returns the document's root element, or
// nil when no element survives parsing.
func parseRoot(markup string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c, nil
		}
	}
	return nil, nil
}
