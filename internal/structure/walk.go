package structure

import (
	"golang.org/x/net/html"
)

// walkChildren visits the element children of n in document order and
// returns the emitted records along with the context to continue with.
//
// Context propagation is decided per arm, not by copy semantics: the
// <div> arm feeds the recursion's updated context onward to following
// siblings (div is transparent), while <body> and <table> discard it
// (they are isolation boundaries). Unmatched tags are dropped without
// emission or recursion.
func walkChildren(n *html.Node, ref []string, ctx Context) ([]Record, Context) {
	var out []Record
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch tagName(c) {
		case "a":
			out = append(out, newRecord(textOrNil(c), TypeLink, "", ref, ctx))
		case "p", "span":
			var recs []Record
			recs, ctx = classifyPara(c, ref, ctx)
			out = append(out, recs...)
		case "table":
			if label, valueCell, ok := outlineRow(c); ok {
				recs, _ := walkChildren(valueCell, extendRef(ref, label), ctx)
				out = append(out, recs...)
			}
		case "div":
			var recs []Record
			recs, ctx = walkChildren(c, ref, ctx)
			out = append(out, recs...)
		case "body":
			recs, _ := walkChildren(c, ref, ctx)
			out = append(out, recs...)
		case "head", "hr":
			// Ignored outright.
		}
	}
	return out, ctx
}

// outlineRow matches the two-column enumeration shape EUR-Lex uses in
// place of list markup: tbody -> tr -> exactly two cells over the
// whole table, where the key cell wraps a single plain paragraph. On a
// match it returns the key cell's text as the outline label and the
// value cell for recursion. Any other table shape is skipped silently.
func outlineRow(table *html.Node) (label string, valueCell *html.Node, ok bool) {
	var cells []*html.Node
	for tb := table.FirstChild; tb != nil; tb = tb.NextSibling {
		if tb.Type != html.ElementNode || tagName(tb) != "tbody" {
			continue
		}
		for tr := tb.FirstChild; tr != nil; tr = tr.NextSibling {
			if tr.Type != html.ElementNode || tagName(tr) != "tr" {
				continue
			}
			for td := tr.FirstChild; td != nil; td = td.NextSibling {
				if td.Type == html.ElementNode && tagName(td) == "td" {
					cells = append(cells, td)
				}
			}
		}
	}
	if len(cells) != 2 {
		return "", nil, false
	}

	var key *html.Node
	elems := 0
	for c := cells[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			elems++
			key = c
		}
	}
	if elems != 1 || tagName(key) != "p" {
		return "", nil, false
	}

	label, _ = nodeText(key)
	return label, cells[1], true
}

// extendRef appends a label onto a fresh slice. Reference paths are
// immutable once attached to a record, so the working path is never
// extended in place.
func extendRef(ref []string, label string) []string {
	out := make([]string, 0, len(ref)+1)
	out = append(out, ref...)
	return append(out, label)
}
