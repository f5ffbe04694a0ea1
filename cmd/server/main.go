package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/optstore/internal/application"
	"github.com/eugenenazirov/optstore/internal/config"
	"github.com/eugenenazirov/optstore/internal/logging"
	"github.com/eugenenazirov/optstore/internal/options"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("optstore", "Option store service - inspect, change and temporarily override global options")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	assignments := kingpinApp.Flag("set", "Set an option at startup as key=value (repeatable)").Short('s').Strings()
	printOptions := kingpinApp.Flag("print-options", "Print the option values and exit").Bool()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	store := options.NewDefault()
	if err := applyAssignments(store, *assignments); err != nil {
		kingpinApp.Fatalf("%v", err)
	}

	if *printOptions {
		printStore(os.Stdout, store)
		return
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}
	if *port != "" {
		overrides.Port = port
	}
	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}
	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, opt := range store.Snapshot() {
		logger.Debug("option", zap.String("key", opt.Name), zap.String("value", options.FormatValue(opt.Value)))
	}

	app, err := application.New(cfg, store, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// applyAssignments sets every key=value pair on store in order.
func applyAssignments(store *options.Store, raw []string) error {
	parsed, err := config.ParseAssignments(raw)
	if err != nil {
		return err
	}
	for _, o := range parsed {
		if err := store.Set(o.Key, o.Value); err != nil {
			return fmt.Errorf("--set %s: %w", o.Key, err)
		}
	}
	return nil
}

func printStore(w io.Writer, store *options.Store) {
	_, _ = fmt.Fprintln(w, store.String())
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
