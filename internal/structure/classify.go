package structure

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// nodeClass is the closed set of paragraph categories the EUR-Lex
// markup convention uses. Anything else, including a missing class
// attribute entirely, is classUnrecognized and yields no emission.
type nodeClass int

const (
	classUnrecognized nodeClass = iota
	classDocTitle
	classArtSubtitle
	classArtTitle
	classGroupTitle
	classSectionTitle
	classNormal
	classItalic
	classSignatory
	classNote
)

func classify(n *html.Node) nodeClass {
	class, ok := attrValue(n, "class")
	if !ok {
		return classUnrecognized
	}
	switch {
	case class == "doc-ti":
		return classDocTitle
	case class == "sti-art":
		return classArtSubtitle
	case class == "ti-art":
		return classArtTitle
	case strings.HasPrefix(class, "ti-grseq-"):
		return classGroupTitle
	case strings.HasPrefix(class, "ti-section-"):
		return classSectionTitle
	case class == "normal":
		return classNormal
	case class == "italic":
		return classItalic
	case class == "signatory":
		return classSignatory
	case class == "note":
		return classNote
	}
	return classUnrecognized
}

// leadingNumeral matches the bare "<digits>." paragraph marker that a
// normal-class paragraph may open with. "(1)"-style markers do not
// qualify here; they only occur as table outline labels.
var leadingNumeral = regexp.MustCompile(`^[0-9]+[.]`)

// classifyPara dispatches a <p> or <span> node by its class attribute,
// returning the records it emits and the context to continue with.
//
// Most title classes mutate the context first and emit a snapshot that
// reflects the update. Group and section titles are the deliberate
// exception: they emit with the context as it was before recording the
// new group/section, so the title row itself reflects its enclosing
// context rather than its own update. The asymmetry is load-bearing —
// existing document structure is defined by it.
func classifyPara(n *html.Node, ref []string, ctx Context) ([]Record, Context) {
	switch classify(n) {
	case classDocTitle:
		// Accumulates: multi-line document titles arrive as a run of
		// doc-ti paragraphs.
		if text, ok := nodeText(n); ok {
			ctx.Document += text
		}
		return []Record{newRecord(textOrNil(n), TypeDocTitle, "", ref, ctx)}, ctx

	case classArtSubtitle:
		if text, ok := nodeText(n); ok {
			ctx.ArticleSubtitle = text
		}
		return []Record{newRecord(textOrNil(n), TypeArtSubtitle, "", ref, ctx)}, ctx

	case classArtTitle:
		if text, ok := nodeText(n); ok {
			ctx.Article = strings.TrimSpace(strings.TrimPrefix(text, "Article"))
		}
		return []Record{newRecord(textOrNil(n), TypeArtTitle, "", ref, ctx)}, ctx

	case classGroupTitle:
		rec := newRecord(textOrNil(n), TypeGroupTitle, "", ref, ctx)
		if text, ok := nodeText(n); ok {
			ctx.Group = text
		}
		return []Record{rec}, ctx

	case classSectionTitle:
		rec := newRecord(textOrNil(n), TypeSectionTitle, "", ref, ctx)
		if text, ok := nodeText(n); ok {
			ctx.Section = text
		}
		return []Record{rec}, ctx

	case classNormal:
		text, ok := nodeText(n)
		if !ok {
			return []Record{newRecord(nil, TypeText, "", ref, ctx)}, ctx
		}
		if marker := leadingNumeral.FindString(text); marker != "" {
			ctx.Paragraph = strings.TrimSuffix(marker, ".")
			text = strings.TrimSpace(text[len(marker):])
		}
		return []Record{newRecord(strptr(text), TypeText, "", ref, ctx)}, ctx

	case classItalic:
		return []Record{newRecord(textOrNil(n), TypeText, ModifierItalic, ref, ctx)}, ctx
	case classSignatory:
		return []Record{newRecord(textOrNil(n), TypeText, ModifierSignatory, ref, ctx)}, ctx
	case classNote:
		return []Record{newRecord(textOrNil(n), TypeText, ModifierNote, ref, ctx)}, ctx
	}
	return nil, ctx
}
