package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/SarahE-Dev/moms-watchlist-app/internal/config"
	"github.com/SarahE-Dev/moms-watchlist-app/internal/migrate"
	"github.com/SarahE-Dev/moms-watchlist-app/internal/server"
	"github.com/SarahE-Dev/moms-watchlist-app/internal/store"
	"github.com/SarahE-Dev/moms-watchlist-app/pkg/cache"
	pkgdb "github.com/SarahE-Dev/moms-watchlist-app/pkg/db"
	"github.com/SarahE-Dev/moms-watchlist-app/pkg/deps"
	"github.com/SarahE-Dev/moms-watchlist-app/pkg/tmdb"
)

func main() {
	_ = godotenv.Load() // best-effort
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store open failed")
	}
	defer st.Close()

	var c cache.Cache
	if addr := cfg.ValkeyAddr; addr != "" {
		vc, err := cache.NewValkey(addr, cfg.ValkeyPassword)
		if err != nil {
			log.Error().Err(err).Msg("valkey connect failed, using in-memory cache")
			c = cache.NewInMemory()
		} else {
			c = vc
		}
	} else {
		c = cache.NewInMemory()
	}

	if cfg.TMDBAPIKey == "" {
		log.Warn().Msg("TMDB_API_KEY not set, catalog search and details will fail")
	}
	catalog := tmdb.New(cfg.TMDBAPIKey)

	api := server.New(deps.ServerDeps{
		Store:     st,
		Cache:     c,
		Catalog:   catalog,
		Name:      "watchlist-api",
		StartedAt: time.Now(),
	}, cfg.CORSAllowedOrigins)

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("store", cfg.StoreDriver).Msg("listening")
		if err := server.StartHTTP(ctx, addr, api.Router()); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	_, _ = fmt.Fprintln(os.Stderr, "shutting down...")
	time.Sleep(200 * time.Millisecond)
}

// openStore selects the suggestion store backend at process start. All
// three satisfy the same contract; swapping drivers never changes
// observable behavior.
func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pkgdb.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := migrate.Up(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, err
		}
		return store.NewPostgres(pool), nil
	case "sqlite":
		return store.NewSQLite(cfg.SQLitePath)
	default:
		return store.NewBolt(cfg.BoltPath)
	}
}
