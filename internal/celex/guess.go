package celex

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lexsift/lexsift/internal/sparql"
)

// Runner executes a SPARQL query; satisfied by *sparql.Client.
type Runner interface {
	Query(ctx context.Context, query string) (*sparql.Results, error)
}

// Guess resolves a slash notation to the CELEX identifiers that
// actually exist, by asking the SPARQL endpoint which of the candidate
// ids have an owl:sameAs work. The result is sorted and de-duplicated.
func Guess(ctx context.Context, runner Runner, notation string, docType TypeCode, sector Sector) ([]string, error) {
	// Citations sometimes carry trailing segments ("2019/947/EU");
	// only the first two terms matter.
	parts := strings.SplitN(notation, "/", 3)
	if len(parts) > 2 {
		notation = parts[0] + "/" + parts[1]
	}

	candidates, err := Candidates(notation, docType, sector)
	if err != nil {
		return nil, err
	}
	candidateStrings := make([]string, len(candidates))
	for i, id := range candidates {
		candidateStrings[i] = id.String()
	}

	results, err := runner.Query(ctx, sparql.SameAsQuery(candidateStrings))
	if err != nil {
		return nil, fmt.Errorf("confirm celex candidates: %w", err)
	}

	seen := make(map[string]bool)
	var ids []string
	for _, binding := range results.Results.Bindings {
		o, ok := binding["o"]
		if !ok || !strings.Contains(o.Value, "/celex/") {
			continue
		}
		segments := strings.Split(o.Value, "/")
		id := segments[len(segments)-1]
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
