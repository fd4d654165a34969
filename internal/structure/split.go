package structure

import (
	"regexp"
	"strings"
)

// Paragraph is one segment of a split article. Label is the paragraph
// marker exactly as written ("1.", "(2)"); it is empty for the
// unlabeled preamble before the first marker. Outline labels are never
// empty strings, so the empty label is unambiguous.
type Paragraph struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

var (
	dottedMarker = regexp.MustCompile(`^[0-9]+[.]`)
	parenMarker  = regexp.MustCompile(`^[(][0-9]+[)]`)
)

// SplitParagraphs segments a block of plain article prose into its
// numbered paragraphs, insertion order preserved. Text sourced from
// CELEX data encodes line breaks as runs of five spaces; those are
// normalized first. A line opening with "<digits>." or "(<digits>)"
// starts a new paragraph under that marker; the remainder of the line
// begins its body. Lines before the first marker collect under the
// empty preamble label. Multi-line bodies are joined with newlines and
// trimmed.
func SplitParagraphs(article string) []Paragraph {
	article = strings.ReplaceAll(article, "     ", "\n")

	var order []string
	bodies := make(map[string][]string)
	label := ""

	for _, line := range strings.Split(article, "\n") {
		if marker := dottedMarker.FindString(line); marker != "" {
			label = marker
			rest := strings.Split(line, ".")[1:]
			line = strings.TrimSpace(strings.Join(rest, "."))
		} else if marker := parenMarker.FindString(line); marker != "" {
			label = marker
			rest := strings.Split(line, ")")[1:]
			line = strings.TrimSpace(strings.Join(rest, ")"))
		}
		if _, seen := bodies[label]; !seen {
			order = append(order, label)
		}
		bodies[label] = append(bodies[label], line)
	}

	out := make([]Paragraph, 0, len(order))
	for _, l := range order {
		out = append(out, Paragraph{
			Label: l,
			Text:  strings.TrimSpace(strings.Join(bodies[l], "\n")),
		})
	}
	return out
}
