// Package retailertest provides a configurable in-memory retailer client. It
// backs the package tests and the memory-mode wiring of the CLI/API, where no
// real network client is registered.
package retailertest

import (
	"context"
	"encoding/json"

	"github.com/calebds/tracker/internal/domain"
)

type Client struct {
	ClientName string

	// Items returned from every search, keyed exactly as the fake retailer
	// would report them (use the Products table names).
	Items      []map[string]any
	Pagination json.RawMessage

	// Err, when set, is returned from Search unchanged.
	Err error

	SearchKeys map[string]string
	Products   map[string]string

	// Captured arguments from the last Search call.
	LastTerm    string
	LastOptions map[string]any
}

func (c *Client) Name() string {
	if c.ClientName == "" {
		return "fake"
	}
	return c.ClientName
}

func (c *Client) Search(ctx context.Context, term string, options map[string]any) (domain.SearchResults, error) {
	c.LastTerm = term
	c.LastOptions = options

	if c.Err != nil {
		return domain.SearchResults{}, c.Err
	}

	items := make([]map[string]any, 0, len(c.Items))
	for _, it := range c.Items {
		cp := make(map[string]any, len(it))
		for k, v := range it {
			cp[k] = v
		}
		items = append(items, cp)
	}

	return domain.SearchResults{
		Items:      items,
		Pagination: c.Pagination,
	}, nil
}

func (c *Client) SearchAttributeNames() map[string]string {
	return c.SearchKeys
}

func (c *Client) ProductAttributeNames() map[string]string {
	return c.Products
}
