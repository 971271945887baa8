package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/icdts/todoapp"
	"github.com/icdts/todoapp/internal/config"
	"github.com/icdts/todoapp/internal/db"
	"github.com/icdts/todoapp/internal/render"
	"github.com/icdts/todoapp/internal/server"
	"github.com/icdts/todoapp/internal/store"

	"github.com/jmoiron/sqlx"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		var cerr *config.Error
		if errors.As(err, &cerr) {
			logger.Error("invalid "+cerr.Var+" configuration", "input", cerr.Input, "error", cerr.Err)
		} else {
			logger.Error("invalid configuration", "error", err)
		}
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	database, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	htmxSrc := ""
	if cfg.HTMXSrc != "" {
		logger.Info("HTMX file ready", "input", cfg.HTMXSrc)
		htmxSrc = server.HTMXRoute
	}
	renderer, err := render.New(todoapp.EmbeddedViews, htmxSrc)
	if err != nil {
		return err
	}

	app := &server.App{
		Todos:      store.NewTodos(database),
		Render:     renderer,
		Log:        logger,
		Static:     todoapp.EmbeddedStatic,
		StylesPath: cfg.StylesPath,
		HTMXPath:   cfg.HTMXSrc,
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: app.Routes()}

	errs := make(chan error, 1)
	go func() {
		logger.Info("Listening", "input", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
		close(errs)
	}()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		return err
	case sig := <-exit:
		logger.Info("Signal caught", "sig", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func openDB(cfg config.Config, logger *slog.Logger) (*sqlx.DB, error) {
	if cfg.Driver == config.DriverPostgres {
		pgDB, err := db.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to init Postgres DB", "error", err)
			return nil, err
		}
		return pgDB, nil
	}

	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	sqDB, fresh, err := db.ConnectSQLite(cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to init sqlite DB", "input", cfg.SQLitePath, "error", err)
		return nil, err
	}
	if fresh && cfg.Seed {
		logger.Info("Seeding database...", "input", cfg.SQLitePath)
		if err := db.Seed(sqDB); err != nil {
			sqDB.Close()
			return nil, err
		}
	}
	return sqDB, nil
}
