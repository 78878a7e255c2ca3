// Command countdownd serves countdown images over HTTP.
//
// Usage:
//
//	countdownd -addr :3000
//	countdownd -config countdown.yaml -log-level debug
//
// Environment variables (ALLOW_GIF, BUCKET_SECONDS, CACHE_HEADER, GIF_FRAMES,
// GIF_DELAY_CS, ANIMATION_TIMEOUT, RENDER_WORKERS, RENDER_BACKEND, FONT_PATH,
// FONT_FAMILY) override the config file; -help lists them. PORT is used when
// -addr is not given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/countdown"
	"github.com/gogpu/countdown/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (default :$PORT or :3000)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Usage = usage
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	countdown.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, listenAddr(*addr)); err != nil {
		logger.Error("countdownd: fatal", "error", err)
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [flags]\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
	fmt.Fprintln(out, "\nEnvironment (overrides the config file):")
	for _, name := range countdown.EnvVars() {
		fmt.Fprintln(out, "  "+name)
	}
	fmt.Fprintln(out, "  PORT (listen port when -addr is empty)")
}

func listenAddr(flagAddr string) string {
	if flagAddr != "" {
		return flagAddr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":3000"
}

func run(ctx context.Context, logger *slog.Logger, configPath, addr string) error {
	cfg := countdown.DefaultConfig()
	if configPath != "" {
		c, err := countdown.LoadConfigFile(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = *c
	}
	cfg.ApplyEnv(os.LookupEnv)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(countdown.NewBuilder(cfg), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("countdownd: listening", "addr", addr,
			"allow_animation", cfg.AllowAnimation, "bucket_seconds", cfg.BucketSeconds)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("countdownd: shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
