package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	adapthttp "fitlog/internal/adapter/http"
	"fitlog/internal/adapter/memory"
	"fitlog/internal/adapter/postgres"
	"fitlog/internal/app"
	"fitlog/internal/config"
	"fitlog/internal/domain"
	"fitlog/internal/logger"
	"fitlog/internal/metrics"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, args []string) error {
	cmd := parseCommand(args)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cmd == commandHealthcheck {
		return runHealthcheck(cfg.Addr)
	}

	log := logger.New(w, cfg.LogLevel, cfg.IsLocal())
	log.Info().Str("command", string(cmd)).Str("store", cfg.Store).Msg("starting")

	switch cmd {
	case commandMigrate:
		return runMigrate(cfg, log)
	default:
		return runServe(cfg, log)
	}
}

// store is everything the services and the health check need from a backend.
type store interface {
	domain.UserRepository
	domain.ActivityRepository
	domain.NutritionRepository
	adapthttp.HealthChecker
}

func openStore(cfg *config.Config, log zerolog.Logger) (store, func() error, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using in-memory store; data is lost on exit")
		return memory.New(), func() error { return nil }, nil
	}

	opts := postgres.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		AutoMigrate:     cfg.AutoMigrate,
	}
	db, err := postgres.Open(cfg.DatabaseURL, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}
	log.Info().Bool("auto_migrate", cfg.AutoMigrate).Msg("database connection established")
	return db, db.Close, nil
}

func runServe(cfg *config.Config, log zerolog.Logger) error {
	db, closeDB, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeDB() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := adapthttp.New(
		app.NewUserService(db),
		app.NewActivityService(db, db),
		app.NewNutritionService(db, db),
		app.NewReportService(db, db, db),
		adapthttp.Options{
			Logger:         log,
			Metrics:        metrics.NewCollector(reg),
			Gatherer:       reg,
			Health:         db,
			AllowedOrigins: cfg.AllowedOrigins(),
			RateLimit:      rate.Limit(cfg.RateLimitRPS),
			RateBurst:      cfg.RateLimitBurst,
		},
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func runMigrate(cfg *config.Config, log zerolog.Logger) error {
	if cfg.Store != config.StorePostgres {
		return fmt.Errorf("migrate requires FITLOG_STORE=%s", config.StorePostgres)
	}
	version, err := postgres.Migrate(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	log.Info().Uint("version", version).Msg("migrations applied")
	return nil
}

// runHealthcheck probes the local /api/health endpoint, for container
// health checks where no shell or curl is available.
func runHealthcheck(addr string) error {
	url := "http://" + healthHost(addr) + "/api/health"
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// healthHost turns a listen address such as ":8080" into a dialable host.
func healthHost(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
