package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	corecfg "github.com/rollcall-app/rollcall/internal/core/config"
	"github.com/rollcall-app/rollcall/internal/core/storage/postgres"
	"github.com/rollcall-app/rollcall/internal/holidays"
	"github.com/rollcall-app/rollcall/internal/marking"
	"github.com/rollcall-app/rollcall/internal/migrations"
	"github.com/rollcall-app/rollcall/internal/reporting"
	"github.com/rollcall-app/rollcall/internal/server"
	"github.com/rollcall-app/rollcall/internal/stream"
)

func main() {
	configPath := flag.String("config", "rollcall.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	loc, err := cfg.Calendar.Location()
	if err != nil {
		slog.Error("Invalid calendar timezone", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	calendarStore := postgres.NewCalendarAdapter(dbAdapter.DB())

	// 3. Initialize Stream Hub (SSE fan-out)
	hub := stream.NewHub(cfg.Stream.SubscriberBuffer)
	streamSvc := stream.NewService(hub)

	// 4. Initialize Services
	markingSvc := marking.NewService(dbAdapter, streamSvc, cfg.Server.MaxBodySizeMB)
	reportingSvc := reporting.NewService(dbAdapter, calendarStore, calendarStore, loc)
	holidaySvc := holidays.NewService(calendarStore, calendarStore)

	// 4.1. Seed holidays (optional, idempotent)
	if cfg.Holidays.SeedFile != "" || cfg.Holidays.NationalRegion != "" {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
		err := holidaySvc.Seed(seedCtx, cfg.Holidays.SeedFile, cfg.Holidays.NationalRegion, time.Now().In(loc).Year())
		cancelSeed()
		if err != nil {
			slog.Error("Failed to seed holidays", "error", err)
			os.Exit(1)
		}
	}

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	markingSvc.RegisterRoutes(srv.Engine)
	reportingSvc.RegisterRoutes(srv.Engine)
	holidaySvc.RegisterRoutes(srv.Engine)
	streamSvc.RegisterRoutes(srv.Engine)

	// 6. Start
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
