package track

import (
	"context"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/schema"
)

// Session holds the state between a search and the selections made against it:
// Idle -> Searched -> (optionally) Tracking -> Idle. The "track another" loop
// is an explicit caller loop over Select/Track; every iteration is independent,
// so a not-found selection never aborts the loop or earlier trackings.
type Session struct {
	Retailer domain.Retailer
	Results  domain.SearchResults
}

// Select locates the item in the last search results whose canonical sku
// matches exactly. No match yields a NotFoundError naming the sku and leaves
// the session (and all persisted state) unchanged.
func (s *Session) Select(sku string) (map[string]any, error) {
	for _, item := range s.Results.Items {
		v, ok := stringValue(item[schema.FieldSKU])
		if ok && v == sku {
			return item, nil
		}
	}
	return nil, &NotFoundError{Kind: "sku", ID: sku}
}

// Track selects the item for sku and tracks it at the session's retailer.
func (s *Session) Track(ctx context.Context, w Workflow, sku string) (domain.Product, bool, error) {
	item, err := s.Select(sku)
	if err != nil {
		return domain.Product{}, false, err
	}
	return w.TrackProduct(ctx, item, s.Retailer)
}
