// Package fixture loads file-backed retailer clients. They stand in for real
// network clients in memory-mode setups and demos; the capability surface is
// identical.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/retailer"
)

type clientSpec struct {
	Name                  string            `json:"name"`
	SearchAttributeNames  map[string]string `json:"search_attribute_names"`
	ProductAttributeNames map[string]string `json:"product_attribute_names"`
	Items                 []map[string]any  `json:"items"`
	Pagination            json.RawMessage   `json:"pagination"`
}

type Client struct {
	spec clientSpec
}

func (c *Client) Name() string { return c.spec.Name }

func (c *Client) Search(ctx context.Context, term string, options map[string]any) (domain.SearchResults, error) {
	items := make([]map[string]any, 0, len(c.spec.Items))
	for _, it := range c.spec.Items {
		cp := make(map[string]any, len(it))
		for k, v := range it {
			cp[k] = v
		}
		items = append(items, cp)
	}

	return domain.SearchResults{
		Items:      items,
		Pagination: c.spec.Pagination,
	}, nil
}

func (c *Client) SearchAttributeNames() map[string]string  { return c.spec.SearchAttributeNames }
func (c *Client) ProductAttributeNames() map[string]string { return c.spec.ProductAttributeNames }

// LoadFile reads a JSON array of client specs and returns one client per entry.
func LoadFile(path string) ([]retailer.Client, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var specs []clientSpec
	if err := json.Unmarshal(b, &specs); err != nil {
		return nil, fmt.Errorf("parse retailer fixtures failed: %w", err)
	}

	out := make([]retailer.Client, 0, len(specs))
	for _, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("retailer fixture entry missing name")
		}
		spec := s
		out = append(out, &Client{spec: spec})
	}
	return out, nil
}
