package track

import (
	"context"
	"testing"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/state"
)

func seededStore(t *testing.T, names ...string) *state.MemoryStore {
	t.Helper()
	s := state.NewMemoryStore()
	if err := s.SeedRetailers(context.Background(), names); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return s
}

func mustRetailer(t *testing.T, s *state.MemoryStore, name string) domain.Retailer {
	t.Helper()
	r, ok, err := s.GetRetailerByName(context.Background(), name)
	if err != nil || !ok {
		t.Fatalf("retailer %q missing: ok=%v err=%v", name, ok, err)
	}
	return r
}

func TestTrackProduct_Idempotent(t *testing.T) {
	s := seededStore(t, "BestBuy")
	r := mustRetailer(t, s, "BestBuy")
	w := Workflow{Store: s}
	ctx := context.Background()

	attrs := map[string]any{"name": "X", "sku": "123", "url": "https://example.com/x"}

	p1, created, err := w.TrackProduct(ctx, attrs, r)
	if err != nil {
		t.Fatalf("first track failed: %v", err)
	}
	if !created {
		t.Fatalf("first track must create the association")
	}
	if p1.Name != "X" || p1.SKU != "123" {
		t.Fatalf("unexpected product: %#v", p1)
	}

	p2, created, err := w.TrackProduct(ctx, attrs, r)
	if err != nil {
		t.Fatalf("second track failed: %v", err)
	}
	if created {
		t.Fatalf("second track must not create a duplicate association")
	}
	if p2.ID != p1.ID {
		t.Fatalf("expected same product row, got %d and %d", p1.ID, p2.ID)
	}

	products, _ := s.CountProducts(ctx)
	stock, _ := s.CountStock(ctx)
	if products != 1 || stock != 1 {
		t.Fatalf("expected exactly one product and one stock row, got %d/%d", products, stock)
	}
}

func TestTrackProduct_MultiRetailer(t *testing.T) {
	s := seededStore(t, "BestBuy", "Walmart")
	w := Workflow{Store: s}
	ctx := context.Background()

	attrs := map[string]any{"name": "X", "sku": "123"}

	if _, _, err := w.TrackProduct(ctx, attrs, mustRetailer(t, s, "BestBuy")); err != nil {
		t.Fatalf("track at BestBuy failed: %v", err)
	}
	if _, _, err := w.TrackProduct(ctx, attrs, mustRetailer(t, s, "Walmart")); err != nil {
		t.Fatalf("track at Walmart failed: %v", err)
	}

	products, _ := s.CountProducts(ctx)
	stock, _ := s.CountStock(ctx)
	if products != 1 {
		t.Fatalf("expected one product across retailers, got %d", products)
	}
	if stock != 2 {
		t.Fatalf("expected one stock row per retailer, got %d", stock)
	}
}

func TestTrackProduct_RetailerLocalSKU(t *testing.T) {
	s := seededStore(t, "BestBuy")
	r := mustRetailer(t, s, "BestBuy")
	w := Workflow{Store: s}
	ctx := context.Background()

	t.Run("distinct local sku", func(t *testing.T) {
		attrs := map[string]any{"name": "A", "sku": "canon-1", "retailer_sku": "bb-9"}
		if _, _, err := w.TrackProduct(ctx, attrs, r); err != nil {
			t.Fatalf("track failed: %v", err)
		}

		stock, _ := s.ListStockForRetailer(ctx, r.ID)
		if len(stock) != 1 || stock[0].SKU != "bb-9" {
			t.Fatalf("expected local sku bb-9, got %#v", stock)
		}
	})

	t.Run("falls back to canonical sku", func(t *testing.T) {
		attrs := map[string]any{"name": "B", "sku": "canon-2"}
		if _, _, err := w.TrackProduct(ctx, attrs, r); err != nil {
			t.Fatalf("track failed: %v", err)
		}

		stock, _ := s.ListStockForRetailer(ctx, r.ID)
		if len(stock) != 2 || stock[1].SKU != "canon-2" {
			t.Fatalf("expected canonical fallback, got %#v", stock)
		}
	})
}

func TestSession_SelectNotFoundLeavesStateUnchanged(t *testing.T) {
	s := seededStore(t, "BestBuy")
	r := mustRetailer(t, s, "BestBuy")
	w := Workflow{Store: s}
	ctx := context.Background()

	session := Session{
		Retailer: r,
		Results: domain.SearchResults{
			Items: []map[string]any{
				{"sku": "111", "name": "A"},
				{"sku": "222", "name": "B"},
			},
		},
	}

	_, _, err := session.Track(ctx, w, "999")
	if err == nil {
		t.Fatalf("expected not-found error")
	}
	nf, ok := err.(*NotFoundError)
	if !ok {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nf.ID != "999" {
		t.Fatalf("error must name the unmatched sku, got %q", nf.ID)
	}

	products, _ := s.CountProducts(ctx)
	stock, _ := s.CountStock(ctx)
	if products != 0 || stock != 0 {
		t.Fatalf("persisted state must be unchanged, got %d/%d", products, stock)
	}

	// A later selection in the same session still works.
	p, created, err := session.Track(ctx, w, "222")
	if err != nil || !created {
		t.Fatalf("subsequent selection failed: created=%v err=%v", created, err)
	}
	if p.Name != "B" {
		t.Fatalf("unexpected product: %#v", p)
	}
}

func TestSession_SelectMatchesNumericSKU(t *testing.T) {
	session := Session{
		Results: domain.SearchResults{
			Items: []map[string]any{
				{"sku": 6364253.0, "name": "Nintendo Switch"}, // JSON number
			},
		},
	}

	item, err := session.Select("6364253")
	if err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if item["name"] != "Nintendo Switch" {
		t.Fatalf("unexpected item: %#v", item)
	}
}

func TestProductFromAttributes(t *testing.T) {
	price := 19.99 // fractional floats never reach here; validation rejects them

	tests := []struct {
		name    string
		attrs   map[string]any
		wantErr bool
	}{
		{"complete", map[string]any{"name": "X", "sku": "1", "url": "https://a", "price": float64(100), "in_stock": true}, false},
		{"minimal", map[string]any{"name": "X", "sku": "1"}, false},
		{"missing name", map[string]any{"sku": "1"}, true},
		{"missing sku", map[string]any{"name": "X"}, true},
		{"fractional sku rejected", map[string]any{"name": "X", "sku": price}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ProductFromAttributes(tt.attrs)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name != "X" || p.SKU != "1" {
				t.Fatalf("unexpected product: %#v", p)
			}
		})
	}
}
