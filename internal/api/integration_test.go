package api

import (
	"context"
	"os"
	"testing"

	"github.com/altinukshini/casesearch/internal/model"
)

func integrationClient(t *testing.T) *Client {
	t.Helper()
	if os.Getenv("CASESEARCH_INTEGRATION") == "" {
		t.Skip("Set CASESEARCH_INTEGRATION=1 (and CASESEARCH_BASE_URL) to run integration tests")
	}
	base := os.Getenv("CASESEARCH_BASE_URL")
	if base == "" {
		base = "http://localhost:5000"
	}
	client, err := NewClient(Options{BaseURL: base})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestIntegrationQueryRoundTrip(t *testing.T) {
	client := integrationClient(t)
	ctx := context.Background()

	q := model.UserQuery{Query: "盗窃"}
	h, err := client.CreateQuery(ctx, q)
	if err != nil {
		t.Fatalf("CreateQuery: %v", err)
	}
	t.Logf("query %s: %d results", h.QueryID, h.TotalResults)

	meta, err := client.GetQueryMeta(ctx, h.QueryID)
	if err != nil {
		t.Fatalf("GetQueryMeta: %v", err)
	}
	if meta.Params.Query != q.Query {
		t.Errorf("params.query = %q, want %q", meta.Params.Query, q.Query)
	}

	page, err := client.ListResults(ctx, ResultsFilter{QueryID: h.QueryID, Page: 1})
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	for _, r := range page.Results {
		t.Logf("  %s %s", r.AJID, r.Title())
	}
}

func TestIntegrationLabels(t *testing.T) {
	client := integrationClient(t)

	labels, err := client.ListLabels(context.Background())
	if err != nil {
		t.Fatalf("ListLabels: %v", err)
	}
	t.Logf("Found %d labels", len(labels))
}
