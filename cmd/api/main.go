// @title        Pet Adoption API
// @version      1.0
// @description  Read-only JSON view of the adoptable pets catalog.
// @BasePath     /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	sessmem "pet-adoption/internal/adapters/session/memory"
	sessredis "pet-adoption/internal/adapters/session/redis"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/adapters/storage/sqlite"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/uploads"
	"pet-adoption/internal/router"
	"pet-adoption/internal/session"
	"pet-adoption/internal/web"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromStrings("error", "text", "pet-adoption").Error("load config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.NewFromStrings(cfg.LogLevel, cfg.LogFormat, cfg.AppName)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	petRepo, adoptionRepo, closeDB, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	store, closeStore, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	gate, err := session.NewGate(session.Options{
		Credentials: session.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		Secret:      []byte(cfg.SessionSecret),
		TTL:         cfg.SessionTTL,
		Store:       store,
	})
	if err != nil {
		return err
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h, err := router.NewRouter(router.Options{
		Gate:         gate,
		PetRepo:      petRepo,
		AdoptionRepo: adoptionRepo,
		Uploads:      uploads.NewStore(cfg.UploadDir),
		IDProofs:     uploads.NewStore(cfg.IDProofDir),
		Logger:       log,
		Metrics:      metrics.New(reg),
		Renderer:     renderer,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second, // uploads de hasta 16 MiB
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"storage": cfg.StorageDriver,
			"session": cfg.SessionStore,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(cfg config.Config) (pets.Repository, adoptions.Repository, func(), error) {
	var (
		db  *sql.DB
		err error
	)

	switch strings.ToLower(strings.TrimSpace(cfg.StorageDriver)) {
	case config.DriverMemory:
		memDB := mem.NewDB()
		return mem.NewPetRepo(memDB), mem.NewAdoptionRepo(memDB), func() {}, nil
	case config.DriverPostgres:
		if db, err = pg.Open(cfg.DatabaseDSN); err != nil {
			return nil, nil, nil, err
		}
		return pg.NewPetsRepo(db), pg.NewAdoptionsRepo(db), func() { _ = db.Close() }, nil
	default:
		if db, err = sqlite.Open(cfg.SQLitePath); err != nil {
			return nil, nil, nil, err
		}
		return sqlite.NewPetsRepo(db), sqlite.NewAdoptionsRepo(db), func() { _ = db.Close() }, nil
	}
}

func openSessionStore(ctx context.Context, cfg config.Config, log logger.Logger) (session.Store, func(), error) {
	if strings.EqualFold(strings.TrimSpace(cfg.SessionStore), config.SessionStoreRedis) {
		client, err := sessredis.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		return sessredis.NewStore(client), func() { _ = client.Close() }, nil
	}

	store := sessmem.NewStore()
	sweepCtx, cancel := context.WithCancel(ctx)
	go store.RunSweeper(sweepCtx, time.Minute)
	log.Debug("memory session store", map[string]any{"sweep_interval": time.Minute.String()})
	return store, cancel, nil
}
