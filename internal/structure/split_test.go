package structure

import (
	"reflect"
	"testing"
)

func TestSplitParagraphs_DottedMarkers(t *testing.T) {
	got := SplitParagraphs("Intro text.     1. First.     2. Second.")
	want := []Paragraph{
		{Label: "", Text: "Intro text."},
		{Label: "1.", Text: "First."},
		{Label: "2.", Text: "Second."},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitParagraphs_ParenthesizedMarkers(t *testing.T) {
	got := SplitParagraphs("Intro:     (1) First     (2) Second")
	want := []Paragraph{
		{Label: "", Text: "Intro:"},
		{Label: "(1)", Text: "First"},
		{Label: "(2)", Text: "Second"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitParagraphs_RejoinsLaterPeriods(t *testing.T) {
	got := SplitParagraphs("1. First sentence. And more v2.0 text.")
	want := []Paragraph{{Label: "1.", Text: "First sentence. And more v2.0 text."}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitParagraphs_MultiLineBodies(t *testing.T) {
	got := SplitParagraphs("1. First line\nsecond line\n2. Next")
	want := []Paragraph{
		{Label: "1.", Text: "First line\nsecond line"},
		{Label: "2.", Text: "Next"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitParagraphs_PreambleOnly(t *testing.T) {
	got := SplitParagraphs("Just prose\nwith no markers")
	want := []Paragraph{{Label: "", Text: "Just prose\nwith no markers"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitParagraphs_RepeatedLabelAppends(t *testing.T) {
	got := SplitParagraphs("1. First\n1. Again")
	want := []Paragraph{{Label: "1.", Text: "First\nAgain"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitParagraphs_MarkerWithoutSpace(t *testing.T) {
	got := SplitParagraphs("12.Rule text")
	want := []Paragraph{{Label: "12.", Text: "Rule text"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitParagraphs_InsertionOrderPreserved(t *testing.T) {
	got := SplitParagraphs("3. Third\n1. First\n2. Second")
	labels := make([]string, len(got))
	for i, p := range got {
		labels[i] = p.Label
	}
	want := []string{"3.", "1.", "2."}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels in document order: got %v, want %v", labels, want)
	}
}
