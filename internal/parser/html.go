package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLParser handles HTML files using goquery. Script, style and
// chrome elements are removed before text extraction.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, nav, footer, header").Remove()

	var paragraphs []string
	blocks := doc.Find("h1, h2, h3, h4, h5, h6, p, li, td, blockquote")
	if blocks.Length() == 0 {
		return strings.TrimSpace(doc.Find("body").Text()), nil
	}

	blocks.Each(func(_ int, sel *goquery.Selection) {
		// Container cells repeat their nested paragraph text.
		if goquery.NodeName(sel) == "td" && sel.Find("p, li").Length() > 0 {
			return
		}
		paragraphs = append(paragraphs, collapseSpace(sel.Text()))
	})

	return joinParagraphs(paragraphs), nil
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
