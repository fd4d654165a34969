package structure

import (
	"strings"

	"golang.org/x/net/html"
)

// nodeText returns the trimmed text content of a node. A node wrapping
// exactly one child element delegates to that child, which handles
// <span>-wrapped titles. Otherwise the node's own direct text (the
// text before any child element) is returned. A node with no direct
// text and zero or several child elements yields no value: mixed
// multi-child content is not supported here and must be handled by a
// node-type branch in the walker instead.
func nodeText(n *html.Node) (string, bool) {
	var only *html.Node
	elems := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			elems++
			only = c
		}
	}
	if elems == 1 {
		return nodeText(only)
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return strings.TrimSpace(b.String()), true
}

// textOrNil adapts nodeText for record construction: no value becomes
// a nil pointer so the field is omitted downstream, never coerced to
// an empty string.
func textOrNil(n *html.Node) *string {
	text, ok := nodeText(n)
	if !ok {
		return nil
	}
	return strptr(text)
}

// tagName returns the local element name with any XML namespace prefix
// stripped, so "html:tbody" and "tbody" compare equal.
func tagName(n *html.Node) string {
	name := n.Data
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// attrValue returns the value of the named attribute, reporting
// whether the attribute is present at all.
func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
