package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env string `env:"ENV" default:"dev"`

	Port string `env:"PORT" default:"8080"`

	StoreBackend string `env:"STORE_BACKEND" default:"memory"` // memory | mysql
	MySQLDSN     string `env:"DB_DSN" default:""`              // required when STORE_BACKEND=mysql

	// Optional: run migrations at startup (dev convenience)
	RunMigrations bool `env:"RUN_MIGRATIONS" default:"false"`

	// Retailer names to seed at startup. Retailers are created out-of-band;
	// this is the out-of-band path for local setups.
	Retailers []string `env:"RETAILERS" default:""`

	// Optional JSON file of fixture-backed retailer clients for setups without
	// real network clients wired in.
	RetailerFixtures string `env:"RETAILER_FIXTURES" default:""`
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Env:              getenv("ENV", "dev"),
		Port:             getenv("PORT", "8080"),
		StoreBackend:     getenv("STORE_BACKEND", "memory"),
		MySQLDSN:         getenv("DB_DSN", ""),
		RunMigrations:    getenv("RUN_MIGRATIONS", "false") == "true",
		Retailers:        splitList(getenv("RETAILERS", "")),
		RetailerFixtures: getenv("RETAILER_FIXTURES", ""),
	}
	return cfg
}

func getenv(key string, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
