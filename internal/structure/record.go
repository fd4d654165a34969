package structure

// RecordType classifies an emitted text unit.
type RecordType string

const (
	TypeText         RecordType = "text"
	TypeDocTitle     RecordType = "doc-title"
	TypeArtTitle     RecordType = "art-title"
	TypeArtSubtitle  RecordType = "art-subtitle"
	TypeGroupTitle   RecordType = "group-title"
	TypeSectionTitle RecordType = "section-title"
	TypeLink         RecordType = "link"
)

// Modifier marks text variants that carry no context updates.
type Modifier string

const (
	ModifierItalic    Modifier = "italic"
	ModifierSignatory Modifier = "signatory"
	ModifierNote      Modifier = "note"
)

// Context is the document-position metadata accumulated while walking.
// It is a plain value: assignment copies it, so every recursive call
// and every emitted record holds an independent snapshot. An empty
// string means the key has not been seen yet; keys are only ever added
// or overwritten as the walk descends.
type Context struct {
	Document        string `json:"document,omitempty"`
	Group           string `json:"group,omitempty"`
	Section         string `json:"section,omitempty"`
	Article         string `json:"article,omitempty"`
	ArticleSubtitle string `json:"article_subtitle,omitempty"`
	Paragraph       string `json:"paragraph,omitempty"`
}

// Record is one emitted text unit. Text is nil when the source node
// had no extractable text at all, which is distinct from an empty
// extracted string. Ref is the outline reference path at emission
// time, outermost label first. Records are immutable once emitted.
type Record struct {
	Text     *string    `json:"text,omitempty"`
	Type     RecordType `json:"type"`
	Modifier Modifier   `json:"modifier,omitempty"`
	Ref      []string   `json:"ref"`
	Context  Context    `json:"context"`
}

// Row is a Record with its context snapshot flattened into top-level
// fields, the shape tabular consumers receive. The nested context is
// retained alongside the flattened copy.
type Row struct {
	Text            *string    `json:"text,omitempty"`
	Type            RecordType `json:"type"`
	Modifier        Modifier   `json:"modifier,omitempty"`
	Ref             []string   `json:"ref"`
	Context         Context    `json:"context"`
	Document        string     `json:"document,omitempty"`
	Group           string     `json:"group,omitempty"`
	Section         string     `json:"section,omitempty"`
	Article         string     `json:"article,omitempty"`
	ArticleSubtitle string     `json:"article_subtitle,omitempty"`
	Paragraph       string     `json:"paragraph,omitempty"`
}

func newRecord(text *string, typ RecordType, mod Modifier, ref []string, ctx Context) Record {
	return Record{
		Text:     text,
		Type:     typ,
		Modifier: mod,
		Ref:      copyRef(ref),
		Context:  ctx,
	}
}

// copyRef snapshots a reference path so later extension of the
// walker's working slice cannot alias an emitted record.
func copyRef(ref []string) []string {
	out := make([]string, len(ref))
	copy(out, ref)
	return out
}

func strptr(s string) *string { return &s }
