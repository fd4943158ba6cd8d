package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/calebds/tracker/internal/cli"
	"github.com/calebds/tracker/internal/config"
	"github.com/calebds/tracker/internal/logging"
	"github.com/calebds/tracker/internal/migrate"
	"github.com/calebds/tracker/internal/retailer"
	"github.com/calebds/tracker/internal/retailer/fixture"
	"github.com/calebds/tracker/internal/schema"
	"github.com/calebds/tracker/internal/search"
	"github.com/calebds/tracker/internal/state"
	"github.com/calebds/tracker/internal/track"
)

const usage = `usage:
  tracker add [retailer] [name sku [url] [price] [in_stock]]
  tracker search [retailer] [term] [--per N] [--page N] [--filters k=v,...] [--sort field.direction] [--attributes a,b,...]
  tracker retailers
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.NewStdLogger("tracker ")
	ctx := context.Background()

	factoryRes, err := state.NewStore(ctx, state.FactoryConfig{
		Backend:  cfg.StoreBackend,
		MySQLDSN: cfg.MySQLDSN,
	})
	if err != nil {
		logger.Printf("state store init failed: %v", err)
		os.Exit(1)
	}
	store := factoryRes.Store

	if factoryRes.DB != nil && cfg.RunMigrations {
		if err := migrate.ApplyDir(ctx, factoryRes.DB, "./migrations"); err != nil {
			logger.Printf("migrations failed: %v", err)
			os.Exit(1)
		}
	}

	if len(cfg.Retailers) > 0 {
		if err := store.SeedRetailers(ctx, cfg.Retailers); err != nil {
			logger.Printf("seed retailers failed: %v", err)
			os.Exit(1)
		}
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		logger.Printf("retailer clients init failed: %v", err)
		os.Exit(1)
	}

	stdio := cli.NewIO(os.Stdin, os.Stdout)
	workflow := track.Workflow{Store: store}
	orchestrator := search.Orchestrator{Registry: registry, Store: store}

	switch os.Args[1] {
	case "add":
		err = runAdd(ctx, store, workflow, stdio, os.Args[2:])
	case "search":
		err = runSearch(ctx, orchestrator, workflow, stdio, os.Args[2:])
	case "retailers":
		err = runRetailers(ctx, store, stdio)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			for _, issue := range verr.Result.Issues {
				fmt.Fprintf(os.Stderr, "%s: %s\n", issue.Field, issue.Message)
			}
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// buildRegistry wires retailer clients. Real network clients are registered
// here at deployment time; fixture clients cover setups without them.
func buildRegistry(cfg config.Config) (retailer.Registry, error) {
	if cfg.RetailerFixtures == "" {
		return retailer.NewRegistry(), nil
	}

	clients, err := fixture.LoadFile(cfg.RetailerFixtures)
	if err != nil {
		return retailer.Registry{}, err
	}
	return retailer.NewRegistry(clients...), nil
}

func runAdd(ctx context.Context, store state.Store, workflow track.Workflow, stdio *cli.IO, args []string) error {
	retailerArg := ""
	if len(args) > 0 {
		retailerArg = args[0]
		args = args[1:]
	}

	cmd := cli.AddCommand{Store: store, Workflow: workflow, IO: stdio}
	return cmd.Run(ctx, retailerArg, args)
}

func runSearch(ctx context.Context, orch search.Orchestrator, workflow track.Workflow, stdio *cli.IO, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	opts := search.DefaultOptions()
	fs.IntVar(&opts.Per, "per", opts.Per, "items per page <1-100>")
	fs.IntVar(&opts.Page, "page", opts.Page, "current search page")
	fs.StringVar(&opts.Filters, "filters", opts.Filters, "filter results by any params (e.g. in_stock=true)")
	fs.StringVar(&opts.Sort, "sort", opts.Sort, "sort results by any params")
	fs.StringVar(&opts.Attributes, "attributes", opts.Attributes, "product attributes that you want to receive")

	// Positional arguments may precede flags: [retailer] [term]
	positional := make([]string, 0, 2)
	for len(args) > 0 && !isFlag(args[0]) && len(positional) < 2 {
		positional = append(positional, args[0])
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	retailerArg, termArg := "", ""
	if len(positional) > 0 {
		retailerArg = positional[0]
	}
	if len(positional) > 1 {
		termArg = positional[1]
	}

	cmd := cli.SearchCommand{Orchestrator: orch, Workflow: workflow, IO: stdio}
	return cmd.Run(ctx, retailerArg, termArg, opts)
}

func runRetailers(ctx context.Context, store state.Store, stdio *cli.IO) error {
	retailers, err := store.ListRetailers(ctx)
	if err != nil {
		return err
	}
	for _, r := range retailers {
		stdio.Printf("%s\n", r.Name)
	}
	return nil
}

func isFlag(s string) bool {
	return len(s) > 0 && s[0] == '-'
}
