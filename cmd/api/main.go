package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kingsheunn/Diary/internal/config"
	"github.com/Kingsheunn/Diary/internal/db"
	"github.com/Kingsheunn/Diary/internal/handlers"
	"github.com/Kingsheunn/Diary/internal/mailer"
	"github.com/Kingsheunn/Diary/internal/repo"
	"github.com/Kingsheunn/Diary/internal/scheduler"
)

func main() {
	// Load configuration
	cfg := config.Load()
	setupLogging(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	handlers.SetDevMode(cfg.Env == "dev")

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		db.Options{SSLMode: cfg.DBSSLMode, MaxOpenConns: cfg.DBMaxOpenConns, MaxIdleConns: cfg.DBMaxIdleConns},
	)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Reminders
	loc, _ := cfg.Location()
	sched, err := scheduler.New(
		repo.NewUserRepo(database),
		repo.NewEntryRepo(database),
		mailer.New(cfg.Mail),
		scheduler.Options{
			WeeklyTime: cfg.Reminder.WeeklyTime,
			Location:   loc,
			AppURL:     cfg.Reminder.AppURL,
		},
	)
	if err != nil {
		slog.Error("failed to create scheduler", "error", err)
		os.Exit(1)
	}
	if err := sched.Rebuild(context.Background()); err != nil {
		// Preferences stay in the database; the next Sync or restart picks them up.
		slog.Error("initial reminder rebuild failed", "error", err)
	}
	sched.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(database, cfg, sched),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server LAST
	errc := make(chan error, 1)
	go func() {
		tls := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""
		slog.Info("starting server", "port", cfg.Port, "tls", tls, "env", cfg.Env)
		if tls {
			errc <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown", "error", err)
	}
	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		slog.Warn("reminder jobs still running at exit")
	}
}

func setupLogging(format string) {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}
