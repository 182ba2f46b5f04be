package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	filesnapshotstore "github.com/browncherrycoffee/gwanak-church/internal/adapters/file/snapshotstore"
	"github.com/browncherrycoffee/gwanak-church/internal/adapters/httpapi"
	membackuprepo "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/backuprepo"
	memcontentrepo "github.com/browncherrycoffee/gwanak-church/internal/adapters/memory/contentrepo"
	"github.com/browncherrycoffee/gwanak-church/internal/adapters/postgres"
	pgbackuprepo "github.com/browncherrycoffee/gwanak-church/internal/adapters/postgres/backuprepo"
	pgcontentrepo "github.com/browncherrycoffee/gwanak-church/internal/adapters/postgres/contentrepo"
	"github.com/browncherrycoffee/gwanak-church/internal/app/roster"
	"github.com/browncherrycoffee/gwanak-church/internal/app/search"
	"github.com/browncherrycoffee/gwanak-church/internal/platform/auth/hmactoken"
	platformclock "github.com/browncherrycoffee/gwanak-church/internal/platform/clock"
	"github.com/browncherrycoffee/gwanak-church/internal/platform/config"
	"github.com/browncherrycoffee/gwanak-church/internal/platform/logger"
	backuprepoport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/backuprepo"
	contentrepoport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/contentrepo"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logg := logger.New(cfg.LogLevel, cfg.LogFormat)

	clk := platformclock.NewSystemClock()

	var (
		backups backuprepoport.Repository
		content contentrepoport.Repository
		cleanup func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Fatalf("invalid postgres config: %v", err)
		}
		cleanup = pool.Close
		backups = pgbackuprepo.NewRepo(pool)
		content = pgcontentrepo.NewRepo(pool)
	default:
		backups = membackuprepo.NewRepo()
		content = memcontentrepo.NewRepo(nil, nil)
	}
	if cleanup != nil {
		defer cleanup()
	}

	snapshots := filesnapshotstore.NewStore(cfg.SnapshotPath)
	store := roster.New(snapshots, clk, logg)
	searcher := search.NewSearcher()
	tokens := hmactoken.New(cfg.AuthSecret, cfg.TokenTTL, clk)

	api := httpapi.NewServer(store, searcher, backups, content, tokens, cfg.AdminPassword, clk, logg)
	handler := httpapi.NewRouter(api)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logg.Info("api listening", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
