package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/calebds/tracker/internal/retailer"
	"github.com/calebds/tracker/internal/retailer/retailertest"
	"github.com/calebds/tracker/internal/state"
	"github.com/calebds/tracker/internal/track"
)

func bestBuyClient() *retailertest.Client {
	return &retailertest.Client{
		ClientName: "BestBuy",
		SearchKeys: map[string]string{
			"per":        "pageSize",
			"attributes": "show",
		},
		Products: map[string]string{
			"sku":      "sku",
			"name":     "names.title",
			"price":    "salePrice",
			"in_stock": "onlineAvailability",
			"url":      "url",
		},
		Items: []map[string]any{
			{"sku": "6364253", "names.title": "Nintendo Switch", "salePrice": 29999.0},
		},
		Pagination: []byte(`{"currentPage":1,"totalPages":12}`),
	}
}

func newOrchestrator(t *testing.T, client retailer.Client) (Orchestrator, *state.MemoryStore) {
	t.Helper()
	s := state.NewMemoryStore()
	if err := s.SeedRetailers(context.Background(), []string{"BestBuy"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return Orchestrator{
		Registry: retailer.NewRegistry(client),
		Store:    s,
	}, s
}

func TestSearch_MapsOptionsAndGuaranteesIdentityFields(t *testing.T) {
	client := bestBuyClient()
	orch, _ := newOrchestrator(t, client)

	opts := Options{Per: 20, Page: 1, Sort: "price.asc", Attributes: "price"}
	results, err := orch.Search(context.Background(), "BestBuy", "switch", opts.Canonical())
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	// Outbound: canonical keys re-keyed, sort field value-mapped.
	if client.LastTerm != "switch" {
		t.Fatalf("term not forwarded: %q", client.LastTerm)
	}
	if client.LastOptions["pageSize"] != "20" {
		t.Fatalf("per not mapped: %#v", client.LastOptions)
	}
	if client.LastOptions["sort"] != "salePrice.asc" {
		t.Fatalf("sort value not mapped: %#v", client.LastOptions)
	}

	// The show list must carry the mapped identity fields even though only
	// price was requested.
	show, _ := client.LastOptions["show"].(string)
	if !containsTok(show, "sku") || !containsTok(show, "names.title") {
		t.Fatalf("identity fields missing from %q", show)
	}
	if !containsTok(show, "salePrice") {
		t.Fatalf("requested attribute missing from %q", show)
	}

	// Inbound: items canonical, pagination untouched.
	if len(results.Items) != 1 {
		t.Fatalf("unexpected items: %#v", results.Items)
	}
	item := results.Items[0]
	if item["sku"] != "6364253" || item["name"] != "Nintendo Switch" {
		t.Fatalf("items not canonicalized: %#v", item)
	}
	if string(results.Pagination) != `{"currentPage":1,"totalPages":12}` {
		t.Fatalf("pagination altered: %s", results.Pagination)
	}
}

func TestSearch_UnknownRetailer(t *testing.T) {
	orch, _ := newOrchestrator(t, bestBuyClient())

	_, err := orch.Search(context.Background(), "Target", "switch", Options{}.Canonical())
	var nf *track.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.ID != "Target" {
		t.Fatalf("error must name the retailer, got %q", nf.ID)
	}
}

func TestSearch_ClientFailurePropagatesUnchanged(t *testing.T) {
	client := bestBuyClient()
	client.Err = errors.New("rate limited")
	orch, _ := newOrchestrator(t, client)

	_, err := orch.Search(context.Background(), "BestBuy", "switch", Options{}.Canonical())
	if err == nil || err.Error() != "rate limited" {
		t.Fatalf("expected opaque client error, got %v", err)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantField string
	}{
		{"per too small", Options{Per: 0, Page: 1}, "per"},
		{"per too large", Options{Per: 101, Page: 1}, "per"},
		{"page too small", Options{Per: 20, Page: 0}, "page"},
		{"bad sort", Options{Per: 20, Page: 1, Sort: "price"}, "sort"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.opts.Validate()
			if res.IsValid() {
				t.Fatalf("expected issue for %q", tt.wantField)
			}
			found := false
			for _, it := range res.Issues {
				if it.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected issue for %q, got %#v", tt.wantField, res.Issues)
			}
		})
	}

	if res := DefaultOptions().Validate(); !res.IsValid() {
		t.Fatalf("defaults must validate: %#v", res.Issues)
	}
}

func TestOptions_CanonicalDefaults(t *testing.T) {
	m := Options{}.Canonical()

	if m["per"] != "20" || m["page"] != "1" {
		t.Fatalf("unexpected pagination defaults: %#v", m)
	}
	if m["sort"] != DefaultSort {
		t.Fatalf("unexpected sort default: %#v", m)
	}
	if m["attributes"] != DefaultAttributes {
		t.Fatalf("unexpected attributes default: %#v", m)
	}
	if _, ok := m["filters"]; ok {
		t.Fatalf("empty filters must be omitted: %#v", m)
	}
}

func containsTok(list, want string) bool {
	for _, tok := range strings.Split(list, ",") {
		if strings.TrimSpace(tok) == want {
			return true
		}
	}
	return false
}
