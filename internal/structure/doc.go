// Package structure recovers the outline structure of EUR-Lex legal
// document HTML.
//
// EUR-Lex markup encodes the document outline implicitly: CSS classes
// on <p> elements mark titles, group and section headers, and body
// text, while nested two-column tables stand in for enumeration lists
// ("(1)", "(a)", "i."). The walker reconstructs that outline without a
// formal grammar, emitting one Record per text unit, each carrying its
// reference path and a snapshot of the document context (title, group,
// section, article, paragraph) at the moment it was seen.
//
// Everything in this package is pure and deterministic: input markup
// or text in, records out, no I/O and no shared state. Malformed or
// unrecognized markup degrades to an empty or partial result, never an
// error.
package structure
