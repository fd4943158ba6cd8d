package main

import (
	"context"
	"crypto/rsa"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/calebds/tracker/internal/api/auth"
	"github.com/calebds/tracker/internal/api/handlers"
	"github.com/calebds/tracker/internal/api/middleware"
	"github.com/calebds/tracker/internal/config"
	"github.com/calebds/tracker/internal/logging"
	"github.com/calebds/tracker/internal/migrate"
	"github.com/calebds/tracker/internal/retailer"
	"github.com/calebds/tracker/internal/retailer/fixture"
	"github.com/calebds/tracker/internal/search"
	"github.com/calebds/tracker/internal/state"
	"github.com/calebds/tracker/internal/track"
)

func main() {
	cfg := config.Load()
	logger := logging.NewStdLogger("api-service ")

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

	registry := retailer.NewRegistry()
	if cfg.RetailerFixtures != "" {
		clients, err := fixture.LoadFile(cfg.RetailerFixtures)
		if err != nil {
			logger.Printf("retailer fixtures failed: %v", err)
			os.Exit(1)
		}
		registry = retailer.NewRegistry(clients...)
	}

	var pubKey *rsa.PublicKey
	if key, err := auth.LoadRSAPublicKeyFromEnv("JWT_PUBLIC_KEY_PEM"); err == nil {
		pubKey = key
	} else if cfg.Env != "dev" {
		logger.Printf("auth key load failed: %v", err)
		os.Exit(1)
	}

	workflow := track.Workflow{Store: store}
	orchestrator := search.Orchestrator{Registry: registry, Store: store}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	authed := func(next http.Handler) http.Handler {
		return middleware.AuthMiddleware{
			Env:       cfg.Env,
			PublicKey: pubKey,
			Next:      next,
		}
	}

	mux.Handle("/v1/retailers", authed(handlers.RetailersHandler{Store: store}))
	mux.Handle("/v1/search", authed(handlers.SearchHandler{Orchestrator: orchestrator}))
	mux.Handle("/v1/track", authed(middleware.IdempotencyMiddleware{
		Store: store,
		Next:  handlers.TrackHandler{Store: store, Workflow: workflow},
	}))
	mux.Handle("/v1/track:bulk", authed(middleware.IdempotencyMiddleware{
		Store: store,
		Next:  handlers.TrackBulkHandler{Store: store, Workflow: workflow},
	}))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Printf("starting (env=%s) on %s", cfg.Env, server.Addr)

		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Printf("server error: %v", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(logger, server)
}

func waitForShutdown(logger interface{ Printf(string, ...any) }, server *http.Server) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Printf("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = server.Shutdown(ctx)
	logger.Printf("shutdown complete")
}
