package cli

import (
	"context"
	"fmt"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/schema"
	"github.com/calebds/tracker/internal/state"
	"github.com/calebds/tracker/internal/track"
)

// AddCommand implements `tracker add [retailer] [name sku [url] [price] [in_stock]]`.
// Fully positional input is non-interactive; anything missing falls back to
// prompts.
type AddCommand struct {
	Store    state.Store
	Workflow track.Workflow
	IO       *IO
}

func (c AddCommand) Run(ctx context.Context, retailerArg string, productArgs []string) error {
	retailer, err := ResolveRetailer(ctx, c.Store, c.IO, retailerArg)
	if err != nil {
		return err
	}

	var attrs map[string]any
	if len(productArgs) == 0 {
		attrs, err = c.askAboutProduct()
		if err != nil {
			return err
		}
	} else {
		parsed, res := schema.ParsePositional(productArgs)
		if vres := schema.Validate(parsed); !vres.IsValid() {
			res.Issues = append(res.Issues, vres.Issues...)
		}
		if !res.IsValid() {
			return &schema.ValidationError{Result: res}
		}
		attrs = parsed
	}

	product, _, err := c.Workflow.TrackProduct(ctx, attrs, retailer)
	if err != nil {
		return err
	}

	c.IO.Printf("Product %s has been tracked!\n", product.Name)
	return nil
}

func (c AddCommand) askAboutProduct() (map[string]any, error) {
	attrs := make(map[string]any, 5)

	name, err := c.IO.AskValidated("What product do you want to add?", schema.FieldName)
	if err != nil {
		return nil, err
	}
	attrs[schema.FieldName] = name

	sku, err := c.IO.AskValidated("Enter SKU of the product", schema.FieldSKU)
	if err != nil {
		return nil, err
	}
	attrs[schema.FieldSKU] = sku

	more, err := c.IO.Confirm("Do you want to add any additional product information?")
	if err != nil {
		return nil, err
	}
	if !more {
		return attrs, nil
	}

	url, err := c.IO.AskValidated("Enter url of the product", schema.FieldURL)
	if err != nil {
		return nil, err
	}
	attrs[schema.FieldURL] = url

	price, err := c.IO.AskValidated("Enter price of the product in cents", schema.FieldPrice)
	if err != nil {
		return nil, err
	}
	attrs[schema.FieldPrice] = price

	inStock, err := c.IO.Confirm("Is product in stock?")
	if err != nil {
		return nil, err
	}
	attrs[schema.FieldInStock] = inStock

	return attrs, nil
}

// ResolveRetailer resolves a retailer by argument or interactive choice from
// the known retailer names.
func ResolveRetailer(ctx context.Context, store state.Store, io *IO, arg string) (domain.Retailer, error) {
	name := arg
	if name == "" {
		retailers, err := store.ListRetailers(ctx)
		if err != nil {
			return domain.Retailer{}, fmt.Errorf("list retailers failed: %w", err)
		}
		names := make([]string, 0, len(retailers))
		for _, r := range retailers {
			names = append(names, r.Name)
		}

		name, err = io.Choose("Which retailer do you want to use?", names)
		if err != nil {
			return domain.Retailer{}, err
		}
	}

	r, ok, err := store.GetRetailerByName(ctx, name)
	if err != nil {
		return domain.Retailer{}, fmt.Errorf("get retailer failed: %w", err)
	}
	if !ok {
		return domain.Retailer{}, &track.NotFoundError{Kind: "retailer", ID: name}
	}
	return r, nil
}
