package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/calebds/tracker/internal/domain"
	"github.com/calebds/tracker/internal/schema"
	"github.com/calebds/tracker/internal/state"
	"github.com/calebds/tracker/internal/track"
)

func addCommand(t *testing.T, input string, out *bytes.Buffer) (AddCommand, *state.MemoryStore) {
	t.Helper()
	s := state.NewMemoryStore()
	if err := s.SeedRetailers(context.Background(), []string{"BestBuy", "Walmart"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return AddCommand{
		Store:    s,
		Workflow: track.Workflow{Store: s},
		IO:       NewIO(strings.NewReader(input), out),
	}, s
}

func TestAdd_PositionalIsNonInteractive(t *testing.T) {
	var out bytes.Buffer
	// Empty input reader: any prompt attempt would fail loudly.
	cmd, s := addCommand(t, "", &out)

	err := cmd.Run(context.Background(), "BestBuy", []string{"Nintendo Switch", "6364253"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Product Nintendo Switch has been tracked!") {
		t.Fatalf("missing confirmation, output: %q", out.String())
	}

	products, _ := s.CountProducts(context.Background())
	stock, _ := s.CountStock(context.Background())
	if products != 1 || stock != 1 {
		t.Fatalf("expected 1 product and 1 stock row, got %d/%d", products, stock)
	}
}

func TestAdd_PositionalWithOptionalFields(t *testing.T) {
	var out bytes.Buffer
	cmd, _ := addCommand(t, "", &out)

	err := cmd.Run(context.Background(), "BestBuy",
		[]string{"Nintendo Switch", "6364253", "https://bestbuy.com/6364253", "29999", "true"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestAdd_PositionalValidationAggregatesIssues(t *testing.T) {
	var out bytes.Buffer
	cmd, s := addCommand(t, "", &out)

	// Empty name, empty sku, bad url, negative price: all four must be reported.
	err := cmd.Run(context.Background(), "BestBuy", []string{"", "", "not a url", "-1"})
	if err == nil {
		t.Fatal("expected a validation error")
	}

	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *schema.ValidationError", err)
	}
	fields := make(map[string]bool)
	for _, it := range verr.Result.Issues {
		fields[it.Field] = true
	}
	for _, want := range []string{"name", "sku", "url", "price"} {
		if !fields[want] {
			t.Fatalf("missing issue for %q in %v", want, verr.Result.Issues)
		}
	}

	products, _ := s.CountProducts(context.Background())
	if products != 0 {
		t.Fatal("rejected input must not persist anything")
	}
}

func TestAdd_InteractiveFlow(t *testing.T) {
	// Prompt order: name, sku, confirm extras, url, price, in_stock.
	script := "Nintendo Switch\n6364253\ny\nhttps://bestbuy.com/6364253\n29999\ny\n"

	var out bytes.Buffer
	cmd, s := addCommand(t, script, &out)

	if err := cmd.Run(context.Background(), "BestBuy", nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	stock, _ := s.ListStockForRetailer(context.Background(), 1)
	if len(stock) != 1 {
		t.Fatalf("expected 1 stock row, got %d", len(stock))
	}
	if stock[0].SKU != "6364253" {
		t.Fatalf("unexpected stock sku: %q", stock[0].SKU)
	}

	p, created, err := s.FirstOrCreateProduct(context.Background(),
		domain.Product{Name: "Nintendo Switch", SKU: "6364253"})
	if err != nil || created {
		t.Fatalf("expected existing product, created=%v err=%v", created, err)
	}
	if p.URL != "https://bestbuy.com/6364253" {
		t.Fatalf("url not carried: %q", p.URL)
	}
	if p.Price == nil || *p.Price != 29999 {
		t.Fatalf("price not carried: %+v", p.Price)
	}
	if p.InStock == nil || !*p.InStock {
		t.Fatalf("in_stock not carried: %+v", p.InStock)
	}
}

func TestAdd_InteractiveSkipsExtras(t *testing.T) {
	script := "Switch Lite\n6364254\nn\n"

	var out bytes.Buffer
	cmd, s := addCommand(t, script, &out)

	if err := cmd.Run(context.Background(), "BestBuy", nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	products, _ := s.CountProducts(context.Background())
	if products != 1 {
		t.Fatalf("expected 1 product, got %d", products)
	}
}

func TestAdd_ChoosesRetailerWhenMissing(t *testing.T) {
	// First line answers the retailer choice, the rest is the product.
	script := "Walmart\nSwitch OLED\n6364255\nn\n"

	var out bytes.Buffer
	cmd, _ := addCommand(t, script, &out)

	if err := cmd.Run(context.Background(), "", nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Which retailer do you want to use?") {
		t.Fatalf("retailer choice not prompted, output: %q", out.String())
	}
}

func TestAdd_UnknownRetailerArg(t *testing.T) {
	var out bytes.Buffer
	cmd, _ := addCommand(t, "", &out)

	err := cmd.Run(context.Background(), "Target", []string{"X", "1"})
	var nfe *track.NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("error type = %T, want *track.NotFoundError", err)
	}
	if nfe.Kind != "retailer" || nfe.ID != "Target" {
		t.Fatalf("unexpected not-found error: %+v", nfe)
	}
}
