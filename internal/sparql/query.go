// Package sparql builds and runs the SPARQL queries the Publications
// Office endpoint answers, and converts the JSON results into plain
// tabular rows.
package sparql

import (
	"fmt"
	"strings"
)

// prefixes is the IRI prefix table prepended to every query. Order is
// fixed so generated queries are byte-stable.
var prefixes = []struct {
	Name string
	URL  string
}{
	{"cdm", "http://publications.europa.eu/ontology/cdm#"},
	{"celex", "http://publications.europa.eu/resource/celex/"},
	{"owl", "http://www.w3.org/2002/07/owl#"},
	{"rdf", "http://www.w3.org/1999/02/22-rdf-syntax-ns#"},
	{"cellar", "http://publications.europa.eu/resource/cellar/"},
	{"skos", "http://www.w3.org/2004/02/skos/core#"},
}

// PrependPrefixes returns the query with the standard prefix
// declarations in front.
func PrependPrefixes(query string) string {
	var b strings.Builder
	for i, p := range prefixes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "prefix %s: <%s>", p.Name, p.URL)
	}
	b.WriteString(" ")
	b.WriteString(query)
	return b.String()
}

// SimplifyIRI replaces a known prefix URL with its shorthand, so
// "http://publications.europa.eu/ontology/cdm#test" becomes
// "cdm:test". Unknown IRIs pass through unchanged.
func SimplifyIRI(iri string) string {
	for _, p := range prefixes {
		if strings.HasPrefix(iri, p.URL) {
			return p.Name + ":" + strings.TrimPrefix(iri, p.URL)
		}
	}
	return iri
}

// RegulationsQuery selects implementing-regulation works. A negative
// limit means no limit; shuffle adds a random ordering for sampling.
func RegulationsQuery(limit int, shuffle bool) string {
	query := "select ?doc where {?doc cdm:work_has_resource-type " +
		"<http://publications.europa.eu/resource/authority/resource-type/REG_IMPL> . }"
	if shuffle {
		query += " order by rand()"
	}
	if limit > 0 {
		query += fmt.Sprintf(" limit %d", limit)
	}
	return PrependPrefixes(query)
}

// SameAsQuery builds the owl:sameAs union lookup used to confirm which
// of a set of candidate CELEX identifiers actually exist.
func SameAsQuery(celexIDs []string) string {
	clauses := make([]string, 0, len(celexIDs))
	for _, id := range celexIDs {
		clauses = append(clauses, "{ ?s owl:sameAs celex:"+id+" . ?s owl:sameAs ?o }")
	}
	query := "SELECT * WHERE {" + strings.Join(clauses, " UNION ") + "}"
	return PrependPrefixes(query)
}
