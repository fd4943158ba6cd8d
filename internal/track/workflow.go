// Package track persists tracked products and their per-retailer associations
// without ever creating duplicates, across repeated runs and across retailers.
package track

import (
	"context"
	"fmt"
	"strings"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/schema"
	"github.com/calebds/tracker/internal/state"
)

type Workflow struct {
	Store state.Store
}

// TrackProduct creates-or-finds the canonical Product for the given attribute
// set and ensures the single Stock association for (retailer, product). The
// association carries the retailer-local sku when the item reports one, else
// the canonical sku. Both levels are idempotent: repeating the call changes
// nothing, and the returned bool reports whether a new association was made.
// Attributes are expected to be pre-validated (schema.Validate).
func (w Workflow) TrackProduct(ctx context.Context, attrs map[string]any, r domain.Retailer) (domain.Product, bool, error) {
	p, err := ProductFromAttributes(attrs)
	if err != nil {
		return domain.Product{}, false, err
	}

	product, _, err := w.Store.FirstOrCreateProduct(ctx, p)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("create product failed: %w", err)
	}

	localSKU := p.SKU
	if v, ok := attrs[schema.RetailerSKU].(string); ok && strings.TrimSpace(v) != "" {
		localSKU = v
	}

	created, err := w.Store.EnsureStock(ctx, r.ID, product.ID, localSKU)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("create stock failed: %w", err)
	}

	return product, created, nil
}

// ProductFromAttributes converts a canonical attribute map to a Product.
// Numeric values may arrive as int, int64 or whole float64 (JSON decoding).
func ProductFromAttributes(attrs map[string]any) (domain.Product, error) {
	var p domain.Product

	name, ok := attrs[schema.FieldName].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return domain.Product{}, fmt.Errorf("attributes missing required field %q", schema.FieldName)
	}
	sku, ok := stringValue(attrs[schema.FieldSKU])
	if !ok || strings.TrimSpace(sku) == "" {
		return domain.Product{}, fmt.Errorf("attributes missing required field %q", schema.FieldSKU)
	}

	p.Name = name
	p.SKU = sku

	if v, ok := attrs[schema.FieldURL].(string); ok {
		p.URL = v
	}
	if v, ok := attrs[schema.FieldPrice]; ok && v != nil {
		switch n := v.(type) {
		case int:
			i := int64(n)
			p.Price = &i
		case int64:
			i := n
			p.Price = &i
		case float64:
			i := int64(n)
			p.Price = &i
		}
	}
	if v, ok := attrs[schema.FieldInStock].(bool); ok {
		b := v
		p.InStock = &b
	}

	return p, nil
}

// Retailers may report sku values as JSON numbers.
func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t)), true
		}
		return "", false
	default:
		return "", false
	}
}
