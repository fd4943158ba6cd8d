// Package search builds a retailer-native request from canonical options,
// delegates to the retailer client, and returns canonical results.
package search

import (
	"context"
	"fmt"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/mapping"
	"github.com/calebds/tracker/internal/retailer"
	"github.com/calebds/tracker/internal/state"
	"github.com/calebds/tracker/internal/track"
)

type Orchestrator struct {
	Registry retailer.Registry
	Store    state.Store
}

// ResolveRetailer looks up a retailer by name in the store and pairs it with
// its registered client. Unknown names yield a NotFoundError.
func (o Orchestrator) ResolveRetailer(ctx context.Context, name string) (domain.Retailer, retailer.Client, error) {
	r, ok, err := o.Store.GetRetailerByName(ctx, name)
	if err != nil {
		return domain.Retailer{}, nil, fmt.Errorf("get retailer failed: %w", err)
	}
	if !ok {
		return domain.Retailer{}, nil, &track.NotFoundError{Kind: "retailer", ID: name}
	}

	client, ok := o.Registry.Get(name)
	if !ok {
		return domain.Retailer{}, nil, &track.NotFoundError{Kind: "retailer client", ID: name}
	}

	return r, client, nil
}

// Search maps rawOptions through the retailer's tables (keys, then values,
// then the required show attributes), delegates to the client, and re-keys
// result items back to canonical field names. Pagination passes through
// untouched; client failures propagate unchanged. Every returned item is
// guaranteed to carry the sku and name identity fields.
func (o Orchestrator) Search(ctx context.Context, retailerName, term string, rawOptions map[string]any) (domain.SearchResults, error) {
	_, client, err := o.ResolveRetailer(ctx, retailerName)
	if err != nil {
		return domain.SearchResults{}, err
	}
	return o.SearchWithClient(ctx, client, term, rawOptions)
}

// SearchWithClient is Search for an already-resolved client.
func (o Orchestrator) SearchWithClient(ctx context.Context, client retailer.Client, term string, rawOptions map[string]any) (domain.SearchResults, error) {
	engine := mapping.Engine{
		Keys:   client.SearchAttributeNames(),
		Values: client.ProductAttributeNames(),
	}

	options := engine.MapKeys(rawOptions)
	options = engine.MapValues(options)
	options = engine.RequireShowAttributes(options)

	results, err := client.Search(ctx, term, options)
	if err != nil {
		return domain.SearchResults{}, err
	}

	results.Items = engine.CanonicalizeItems(results.Items)
	return results, nil
}
