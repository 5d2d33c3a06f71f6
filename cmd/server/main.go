package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osa911/contactform/internal/config"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/metrics"
	"github.com/osa911/contactform/internal/ratelimit"
	"github.com/osa911/contactform/internal/server"
	"github.com/osa911/contactform/internal/service"
	"github.com/osa911/contactform/internal/spam"
	"github.com/osa911/contactform/internal/telemetry"
	"github.com/osa911/contactform/internal/version"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger configuration
	logConfig := logging.DefaultLogConfig()
	logConfig.Level = cfg.LogLevel
	logConfig.File = cfg.LogFile

	// Configure and get logger
	if err := logging.InitLogger(logConfig); err != nil {
		panic(err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting contact API %s in %s mode", version.Info(), cfg.Environment)

	if err := run(cfg, logger); err != nil {
		logger.Error("Contact API stopped: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: version.Version,
		Environment:    cfg.Environment,
	})
	if err != nil {
		return logging.WrapError(err, "telemetry")
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces: %v", err)
		}
	}()

	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return logging.WrapError(err, "rate limit store")
	}
	defer closeStore()

	rules, err := spam.LoadRules(cfg.SpamRulesFile)
	if err != nil {
		return logging.WrapError(err, "spam rules")
	}
	if cfg.SpamRulesFile != "" {
		logger.Info("Loaded spam rules from %s", cfg.SpamRulesFile)
	}
	rules = rules.WithSiteDomain(cfg.SiteDomain)

	mailer, err := service.NewMailer(cfg.Mail)
	if err != nil {
		return logging.WrapError(err, "mailer")
	}
	if cfg.Mail.Provider == config.MailProviderResend && cfg.Mail.APIKey == "" {
		logger.Warn("MAIL_API_KEY is not set, contact messages will fail to send")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	contact := service.NewContactService(
		ratelimit.NewLimiter(store),
		spam.NewDetector(rules),
		mailer,
		service.ContactConfigFrom(cfg),
		service.WithMetrics(m),
		service.WithLogger(logger),
	)

	srv, err := server.NewServer(cfg, server.Dependencies{
		Contact:  contact,
		Metrics:  m,
		Gatherer: reg,
		Store:    store,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// newStore picks Redis when REDIS_URL is set, process memory otherwise
func newStore(ctx context.Context, cfg *config.Config, logger *logging.Logger) (ratelimit.Store, func(), error) {
	if cfg.RedisURL == "" {
		logger.Info("Rate limit state kept in process memory")
		return ratelimit.NewMemoryStore(), func() {}, nil
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Rate limit state kept in Redis")

	return ratelimit.NewRedisStore(client), func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close Redis client: %v", err)
		}
	}, nil
}
