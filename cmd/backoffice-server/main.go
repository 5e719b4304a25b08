// Command backoffice-server runs the HTTP gateway in front of a Postgres
// database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/solara-studio/backoffice/internal/app"
	"github.com/solara-studio/backoffice/internal/config"
	"github.com/solara-studio/backoffice/internal/httpapi"
	"github.com/solara-studio/backoffice/internal/storage/postgres"
	"github.com/solara-studio/backoffice/pkg/logger"
)

func main() {
	log := logger.NewDefault("backoffice-server")

	cfg, err := config.LoadServer()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.WithError(err).Fatal("run migrations")
	}

	store := postgres.New(db)
	opts := app.Options{
		TokenSecret:   cfg.TokenSecret,
		TokenTTL:      cfg.TokenTTL,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}
	application, err := app.New(app.Stores{
		Users:   store,
		Tickets: store,
		Quotes:  store,
		Reviews: store,
		Pages:   store,
	}, opts, log)
	if err != nil {
		log.WithError(err).Fatal("build application")
	}
	if err := application.Bootstrap(ctx, opts); err != nil {
		log.WithError(err).Fatal("seed admin account")
	}

	handler := httpapi.NewHandler(application, httpapi.Config{
		CORSOrigins:       cfg.CORSOrigins,
		RequestsPerSecond: cfg.RateLimitPerSecond,
		Burst:             cfg.RateLimitBurst,
	}, log)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Addr).Info("gateway listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("gateway stopped")
}
