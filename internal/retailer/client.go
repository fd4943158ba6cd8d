// Package retailer defines the capability contract every retailer backend must
// satisfy. Concrete network clients live outside this core; they are registered
// into a Registry at wiring time.
package retailer

import (
	"context"

	"github.com/calebds/tracker/internal/domain"
)

// Client is the fixed contract for a retailer backend. Search failures
// (network, auth, rate limiting, malformed responses) are opaque to this core
// and surface unchanged. The two tables are read-only:
//   - SearchAttributeNames: canonical search-option key -> retailer option key
//   - ProductAttributeNames: canonical product field -> retailer field name
type Client interface {
	Name() string
	Search(ctx context.Context, term string, options map[string]any) (domain.SearchResults, error)
	SearchAttributeNames() map[string]string
	ProductAttributeNames() map[string]string
}

type Registry struct {
	byName map[string]Client
}

func NewRegistry(clients ...Client) Registry {
	m := make(map[string]Client, len(clients))
	for _, c := range clients {
		if c == nil {
			continue
		}
		m[c.Name()] = c
	}
	return Registry{byName: m}
}

func (r Registry) Get(name string) (Client, bool) {
	if r.byName == nil {
		return nil, false
	}
	c, ok := r.byName[name]
	return c, ok
}

func (r Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	return out
}
