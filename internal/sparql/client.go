package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the Publications Office public SPARQL endpoint.
const DefaultEndpoint = "http://publications.europa.eu/webapi/rdf/sparql"

// Binding is one variable binding in a result row.
type Binding struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Results is the decoded application/sparql-results+json payload.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Binding `json:"bindings"`
	} `json:"results"`
}

// Rows flattens the bindings into one map per result row, with IRI
// values simplified to their prefixed form.
func (r *Results) Rows() []map[string]string {
	rows := make([]map[string]string, 0, len(r.Results.Bindings))
	for _, binding := range r.Results.Bindings {
		row := make(map[string]string, len(binding))
		for name, b := range binding {
			row[name] = SimplifyIRI(b.Value)
		}
		rows = append(rows, row)
	}
	return rows
}

// Client executes SPARQL queries over HTTP.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Query posts a query and decodes the JSON result set.
func (c *Client) Query(ctx context.Context, query string) (*Results, error) {
	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("run query: status %d: %s", resp.StatusCode, string(body))
	}

	var results Results
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode query results: %w", err)
	}
	return &results, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
