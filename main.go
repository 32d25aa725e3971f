package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-tournament/internal/config"
	"github.com/mauv0809/padel-tournament/internal/database"
	"github.com/mauv0809/padel-tournament/internal/digest"
	server "github.com/mauv0809/padel-tournament/internal/http"
	"github.com/mauv0809/padel-tournament/internal/live"
	"github.com/mauv0809/padel-tournament/internal/metrics"
	"github.com/mauv0809/padel-tournament/internal/notifier/slack"
	"github.com/mauv0809/padel-tournament/internal/playtomic"
	"github.com/mauv0809/padel-tournament/internal/pubsub"
	"github.com/mauv0809/padel-tournament/internal/store"
	"github.com/mauv0809/padel-tournament/internal/tournament"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %s", err)
	}
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	events, err := pubsub.New(ctx, cfg.ProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize pubsub: %s", err)
	}
	defer events.Close()

	hub := live.NewHub(metricsSvc, cfg.AllowedOrigins)
	go hub.Run(ctx)

	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	svc := tournament.New(
		store.New(db),
		metricsSvc,
		events,
		hub,
		playtomic.NewClient(cfg.Playtomic.TenantID),
		notifier,
	)

	if cfg.DigestInterval > 0 {
		d, err := digest.New(svc, notifier, cfg.DigestInterval, false)
		if err != nil {
			log.Fatalf("Failed to schedule standings digest: %s", err)
		}
		d.Start()
		defer func() {
			if err := d.Shutdown(); err != nil {
				log.Error("Standings digest shutdown failed", "error", err)
			}
		}()
	}

	s := server.NewServer(svc, hub, notifier, metricsHandler, cfg, events)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
