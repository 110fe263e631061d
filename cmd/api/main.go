package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"pet-genetics/internal/adapters/auth/remote"
	pg "pet-genetics/internal/adapters/storage/postgres"
	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/platform/config"
	"pet-genetics/internal/platform/logger"
	"pet-genetics/internal/router"
)

// @title Pet Genetics API
// @version 1.0
// @description Cría de mascotas: genotipos, cuadros de Punnett, fenotipo y stats derivados.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	// Sin catálogo válido no hay nada que servir.
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Error("catalog load failed", map[string]any{"path": cfg.CatalogPath, "err": err})
		os.Exit(1)
	}

	opts := router.Options{Catalog: catalog, Logger: log}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("db open failed", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Error("ensure schema failed", map[string]any{"err": err})
			_ = db.Close()
			os.Exit(1)
		}
		opts.DB = db
	}

	if cfg.AuthEnabled() {
		v, err := remote.NewVerifier(remote.Config{
			BaseURL: cfg.AuthVerifyURL,
			APIKey:  cfg.AuthAPIKey,
			Timeout: cfg.AuthTimeout,
		})
		if err != nil {
			log.Error("auth verifier config failed", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.AuthVerifier = v
	} else {
		log.Warn("no auth verifier: dev mode, X-Debug-User-ID accepted", map[string]any{"app_env": cfg.AppEnv})
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func loadCatalog(path string) (*genetics.Catalog, error) {
	if path == "" {
		return genetics.DefaultCatalog()
	}
	return genetics.LoadCatalogFile(path)
}
