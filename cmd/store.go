package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/caryschwartzstein/edgar-parser/internal/fetcher"
	"github.com/caryschwartzstein/edgar-parser/internal/store"
)

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store.database_url is required for the postgres driver")
		}
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.Pool.MaxConns,
			MinConns: cfg.Store.Pool.MinConns,
		})
	case "sqlite", "":
		return store.NewSQLite(cfg.Store.SQLitePath)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initFetcher builds the EDGAR HTTP fetcher from config.
func initFetcher() (fetcher.Fetcher, error) {
	if cfg.EDGAR.UserAgent == "" {
		return nil, eris.New("edgar.user_agent is required; the SEC blocks anonymous clients")
	}
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.EDGAR.UserAgent,
		Timeout:    time.Duration(cfg.EDGAR.TimeoutSecs) * time.Second,
		MaxRetries: cfg.EDGAR.MaxRetries,
	}), nil
}
