package domain

import "encoding/json"

// SearchResults is an ephemeral value: an ordered sequence of canonical product
// attribute maps plus whatever pagination descriptor the retailer reports,
// passed through opaquely. Never persisted.
type SearchResults struct {
	Items      []map[string]any `json:"items"`
	Pagination json.RawMessage  `json:"pagination,omitempty"`
}
