package celex

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/lexsift/lexsift/internal/sparql"
)

type fakeRunner struct {
	lastQuery string
	results   *sparql.Results
	err       error
}

func (f *fakeRunner) Query(_ context.Context, query string) (*sparql.Results, error) {
	f.lastQuery = query
	return f.results, f.err
}

func sameAsResults(values ...string) *sparql.Results {
	r := &sparql.Results{}
	for _, v := range values {
		r.Results.Bindings = append(r.Results.Bindings, map[string]sparql.Binding{
			"o": {Type: "uri", Value: v},
		})
	}
	return r
}

func TestGuess_CollectsConfirmedIDs(t *testing.T) {
	runner := &fakeRunner{results: sameAsResults(
		"http://publications.europa.eu/resource/celex/32019R0947",
		"http://publications.europa.eu/resource/cellar/abc-def",
		"http://publications.europa.eu/resource/celex/32019R0947",
		"http://publications.europa.eu/resource/celex/02019R0947",
	)}

	ids, err := Guess(context.Background(), runner, "2019/947", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"02019R0947", "32019R0947"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("got %v, want %v", ids, want)
	}

	if !strings.Contains(runner.lastQuery, "owl:sameAs celex:32019R0947") {
		t.Errorf("query missing expected candidate clause: %s", runner.lastQuery)
	}
	if !strings.Contains(runner.lastQuery, "prefix owl:") {
		t.Error("query must carry prefix declarations")
	}
}

func TestGuess_TruncatesExtraSegments(t *testing.T) {
	runner := &fakeRunner{results: sameAsResults()}
	if _, err := Guess(context.Background(), runner, "2019/947/EU", TypeRegulation, SectorLegislation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(runner.lastQuery, "celex:32019R0947") {
		t.Errorf("extra segments should be dropped before candidate generation: %s", runner.lastQuery)
	}
}

func TestGuess_EmptyResult(t *testing.T) {
	runner := &fakeRunner{results: sameAsResults()}
	ids, err := Guess(context.Background(), runner, "2019/947", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected no ids, got %v", ids)
	}
}
