package cli

import (
	"context"
	"errors"

	"github.com/calebds/tracker/internal/schema"
	"github.com/calebds/tracker/internal/search"
	"github.com/calebds/tracker/internal/track"
)

// SearchCommand implements `tracker search [retailer] [term] --per --page
// --filters --sort --attributes`, including the repeatable track loop.
type SearchCommand struct {
	Orchestrator search.Orchestrator
	Workflow     track.Workflow
	IO           *IO
}

func (c SearchCommand) Run(ctx context.Context, retailerArg, termArg string, opts search.Options) error {
	retailer, err := ResolveRetailer(ctx, c.Orchestrator.Store, c.IO, retailerArg)
	if err != nil {
		return err
	}

	term := termArg
	if term == "" {
		for term == "" {
			term, err = c.IO.Ask("What product are you looking for?")
			if err != nil {
				return err
			}
		}
	}

	if res := opts.Validate(); !res.IsValid() {
		return &schema.ValidationError{Result: res}
	}

	results, err := c.Orchestrator.Search(ctx, retailer.Name, term, opts.Canonical())
	if err != nil {
		return err
	}

	RenderResults(c.IO.out, results)

	session := track.Session{Retailer: retailer, Results: results}
	return c.trackResults(ctx, &session)
}

// trackResults runs the selection loop: each iteration is independent, so a
// sku that is not in the results only skips that selection.
func (c SearchCommand) trackResults(ctx context.Context, session *track.Session) error {
	want, err := c.IO.Confirm("Do you want to track one of the above products?")
	if err != nil {
		return err
	}

	for want {
		if err := c.trackOne(ctx, session); err != nil {
			return err
		}

		want, err = c.IO.Confirm("Do you want to track anything else?")
		if err != nil {
			return err
		}
	}

	return nil
}

func (c SearchCommand) trackOne(ctx context.Context, session *track.Session) error {
	skuValue, err := c.IO.AskValidated("Enter SKU of the product you want to track", schema.FieldSKU)
	if err != nil {
		return err
	}
	sku, _ := skuValue.(string)

	product, _, err := session.Track(ctx, c.Workflow, sku)
	if err != nil {
		var nf *track.NotFoundError
		if errors.As(err, &nf) {
			c.IO.Printf("Product with SKU %s has not been found in the search results\n", nf.ID)
			return nil
		}
		return err
	}

	c.IO.Printf("Product %s has been tracked!\n", product.Name)
	return nil
}
