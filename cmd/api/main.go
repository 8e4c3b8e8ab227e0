package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
	billStore "github.com/MrJamesThe3rd/billbook/internal/bill/store"
	"github.com/MrJamesThe3rd/billbook/internal/config"
	"github.com/MrJamesThe3rd/billbook/internal/database"
	"github.com/MrJamesThe3rd/billbook/internal/export"
	billbookHttp "github.com/MrJamesThe3rd/billbook/internal/http"
	billHandler "github.com/MrJamesThe3rd/billbook/internal/http/bill"
	customerHandler "github.com/MrJamesThe3rd/billbook/internal/http/customer"
	exportHandler "github.com/MrJamesThe3rd/billbook/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/billbook/internal/http/importcsv"
	"github.com/MrJamesThe3rd/billbook/internal/http/web"
	"github.com/MrJamesThe3rd/billbook/internal/logging"
	"github.com/MrJamesThe3rd/billbook/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := billStore.New(db, cfg.DB.Driver)
	if err := store.Migrate(context.Background()); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	m := metrics.New()

	var (
		billService   = bill.NewService(m.Repository(store))
		exportService = export.NewService(billService, cfg.App.Name)
	)

	pages, err := web.NewHandler(cfg.App.Name, billService, exportService, web.NewFlasher(cfg.App.SecretKey))
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	var (
		billH     = billHandler.NewHandler(billService)
		importH   = importHandler.NewHandler(billService)
		exportH   = exportHandler.NewHandler(exportService)
		customerH = customerHandler.NewHandler(billService)
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           billbookHttp.New(m, pages, billH, importH, exportH, customerH),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", server.Addr, "driver", cfg.DB.Driver)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("server failed", "error", err)
		os.Exit(1)
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
