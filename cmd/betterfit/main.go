package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/betterfit/internal/coach"
	"github.com/meltforce/betterfit/internal/config"
	betterfitmcp "github.com/meltforce/betterfit/internal/mcp"
	"github.com/meltforce/betterfit/internal/models"
	"github.com/meltforce/betterfit/internal/server"
	"github.com/meltforce/betterfit/internal/storage"
	"github.com/meltforce/betterfit/internal/storage/cloud"
	"github.com/meltforce/betterfit/internal/storage/local"
	"github.com/robfig/cron"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run cloud migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("BetterFit starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	for _, warning := range cfg.Warnings {
		log.Warn("config", "warning", warning)
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg, *migrateOnly, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	if store == nil {
		return // migrate-only
	}
	defer store.Close()

	// Create the coach and restore persisted state
	available := make([]models.Equipment, 0, len(cfg.Equipment))
	for _, e := range cfg.Equipment {
		available = append(available, models.Equipment(e))
	}
	c := coach.New(store, log, coach.Options{
		Username:           cfg.User.Username,
		AvailableEquipment: available,
	})
	if err := c.LoadPersisted(ctx); err != nil {
		log.Error("failed to load persisted state", "error", err)
		os.Exit(1)
	}

	// One mutex serializes every coach caller: HTTP, MCP, and cron.
	var mu sync.Mutex

	srv := server.New(c, &mu, cfg.Auth.APIKey, cfg.Warnings, log)
	mcpSrv := betterfitmcp.New(c, &mu, Version, log)

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))
	mux.Handle("/", srv)

	// Periodic notification recompute keeps reminders aligned with the
	// latest history even when no workout events arrive.
	cr := cron.New()
	cr.AddFunc("@hourly", func() {
		mu.Lock()
		c.RescheduleNotifications()
		mu.Unlock()
	})
	cr.Start()
	defer cr.Stop()

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", storageMode(cfg))
	}

	httpSrv := &http.Server{Handler: mux}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// openStore selects cloud persistence when credentials are configured and
// falls back to the local database otherwise. With migrateOnly it applies
// cloud migrations and returns a nil store.
func openStore(ctx context.Context, cfg *config.Config, migrateOnly bool, log *slog.Logger) (storage.Store, error) {
	if cfg.CloudConfigured() {
		dsn, err := cfg.Cloud.DSN()
		if err != nil {
			return nil, fmt.Errorf("building cloud DSN: %w", err)
		}
		if err := cloud.RunMigrations(dsn, "migrations"); err != nil {
			return nil, fmt.Errorf("cloud migrations: %w", err)
		}
		log.Info("cloud migrations applied")
		if migrateOnly {
			return nil, nil
		}
		store, err := cloud.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		log.Info("cloud storage connected")
		return store, nil
	}

	if migrateOnly {
		return nil, fmt.Errorf("migrate-only requires cloud configuration")
	}
	store, err := local.Open(cfg.Local.DataDir)
	if err != nil {
		return nil, err
	}
	log.Info("local storage opened", "dir", cfg.Local.DataDir)
	return store, nil
}

func storageMode(cfg *config.Config) string {
	if cfg.CloudConfigured() {
		return "cloud"
	}
	return "local"
}
