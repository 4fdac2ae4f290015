package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/nexdevs/sentinel/internal/adapter/inbound/httpapi"
	natsbus "github.com/nexdevs/sentinel/internal/adapter/outbound/eventbus/nats"
	"github.com/nexdevs/sentinel/internal/adapter/outbound/notification"
	"github.com/nexdevs/sentinel/internal/adapter/outbound/notification/email"
	slacknotifier "github.com/nexdevs/sentinel/internal/adapter/outbound/notification/slack"
	"github.com/nexdevs/sentinel/internal/adapter/outbound/persistence/sqlite"
	"github.com/nexdevs/sentinel/internal/config"
	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
	"github.com/nexdevs/sentinel/internal/domain/service"
	"github.com/nexdevs/sentinel/internal/heuristics"
	"github.com/nexdevs/sentinel/internal/metrics"
	"github.com/nexdevs/sentinel/pkg/health"
	"github.com/nexdevs/sentinel/pkg/version"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	printVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *printVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = buildLogger(cfg.Logging)

	// --- Database (dead-letter queue) ---
	store, err := sqlite.NewStore(sqlite.Config{
		Path:              cfg.Database.SQLite.Path,
		MaxOpenConns:      cfg.Database.SQLite.MaxOpenConns,
		PragmaJournalMode: cfg.Database.SQLite.PragmaJournalMode,
		PragmaBusyTimeout: cfg.Database.SQLite.PragmaBusyTimeout,
	})
	if err != nil {
		logger.Error("failed to open sqlite store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	deliveryRepo := sqlite.NewDeliveryRepo(store)

	// --- Alert channels ---
	notifier := buildNotifier(cfg, logger)

	// --- Event bus (optional) ---
	var publisher outbound.EventPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err := natsbus.NewPublisher(cfg.NATS.URL, logger)
		if err != nil {
			logger.Error("failed to connect to nats", "error", err)
			os.Exit(1)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	// --- Metrics ---
	m := metrics.New()

	// --- Domain services ---
	monitor := service.NewMonitor(service.MonitorConfig{
		MaxEvents:    cfg.Monitor.MaxEvents,
		Window:       cfg.Monitor.Window,
		AlertTimeout: cfg.Monitor.AlertTimeout,
		Thresholds:   thresholdsFromConfig(cfg.Monitor.Thresholds),
	}, notifier, publisher, deliveryRepo, m, logger)
	defer monitor.Close()

	redeliverer := service.NewRedeliverer(service.RedelivererConfig{
		Interval:    cfg.Redelivery.Interval,
		MaxAttempts: cfg.Redelivery.MaxAttempts,
		BatchSize:   cfg.Redelivery.BatchSize,
		SendTimeout: cfg.Redelivery.SendTimeout,
	}, deliveryRepo, notifier, m, logger)

	// --- HTTP API ---
	selector := heuristics.NewSelector(cfg.Heuristics.TemplateCacheSize)
	apiHandler := httpapi.NewHandler(monitor, selector)
	apiServer := httpapi.NewServer(httpapi.ServerConfig{
		Port:              cfg.Server.Port,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		AdminToken:        cfg.Server.AdminToken,
		RateLimitPerMin:   cfg.Server.RateLimitPerMinute,
		TrustProxyHeaders: cfg.Server.TrustProxyHeaders,
	}, apiHandler, logger)

	// --- Health checker ---
	checker := health.NewChecker()
	checker.Register("database", func(ctx context.Context) error {
		return store.DB.PingContext(ctx)
	})

	// --- Metrics server ---
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/healthz", checker.LivenessHandler())
	metricsMux.HandleFunc("/readyz", checker.ReadinessHandler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsMux,
	}

	// --- Signal handling & startup ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// API server.
	g.Go(func() error {
		logger.Info("starting api server", "port", cfg.Server.Port)
		return apiServer.Start(gCtx)
	})

	// Metrics/health server.
	g.Go(func() error {
		logger.Info("starting metrics server", "port", cfg.Server.MetricsPort)
		errCh := make(chan error, 1)
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
			close(errCh)
		}()
		select {
		case <-gCtx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return metricsServer.Shutdown(shutdownCtx)
		case err := <-errCh:
			return err
		}
	})

	// Dead-letter redelivery loop.
	g.Go(func() error {
		logger.Info("starting alert redeliverer", "interval", cfg.Redelivery.Interval)
		return redeliverer.Run(gCtx)
	})

	logger.Info("sentinel started", "version", version.String())

	if err := g.Wait(); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("sentinel stopped")
}

// buildNotifier assembles the configured alert channels. With nothing
// configured, alerts go to the log.
func buildNotifier(cfg *config.Config, logger *slog.Logger) outbound.AlertNotifier {
	var notifiers []outbound.AlertNotifier

	if cfg.Email.Enabled {
		notifiers = append(notifiers, email.NewMailer(email.Config{
			From: cfg.Email.From,
			To:   cfg.Email.To,
			Primary: email.SMTPConfig{
				Host:     cfg.Email.Primary.Host,
				Port:     cfg.Email.Primary.Port,
				Username: cfg.Email.Primary.Username,
				Password: cfg.Email.Primary.Password,
				StartTLS: cfg.Email.Primary.StartTLS,
				Timeout:  cfg.Email.Primary.Timeout,
			},
			Fallback: email.SMTPConfig{
				Host:     cfg.Email.Fallback.Host,
				Port:     cfg.Email.Fallback.Port,
				Username: cfg.Email.Fallback.Username,
				Password: cfg.Email.Fallback.Password,
				StartTLS: cfg.Email.Fallback.StartTLS,
				Timeout:  cfg.Email.Fallback.Timeout,
			},
		}, logger))
	}

	if cfg.Slack.Enabled {
		notifiers = append(notifiers, slacknotifier.NewNotifier(slacknotifier.Config{
			BotToken: cfg.Slack.BotToken,
			Channel:  cfg.Slack.Channel,
		}))
	}

	if len(notifiers) == 0 {
		logger.Info("no alert channels configured, logging alerts only")
		return notification.NewNoopNotifier(logger)
	}
	return notification.NewMultiNotifier(notifiers...)
}

func thresholdsFromConfig(raw map[string]int) map[model.EventType]int {
	if raw == nil {
		return nil
	}
	thresholds := make(map[model.EventType]int, len(raw))
	for name, count := range raw {
		thresholds[model.EventType(name)] = count
	}
	return thresholds
}

// buildLogger constructs a slog.Logger based on config.
func buildLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
