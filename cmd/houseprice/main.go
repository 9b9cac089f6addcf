package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"houseprice/internal/cfg"
	"houseprice/internal/logging"
	"houseprice/internal/metrics"
	"houseprice/internal/model"
	"houseprice/internal/server"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	c, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	logCloser, err := logging.Setup(logging.Options{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		File:   c.Log.File,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("logging setup failed")
	}
	defer logCloser.Close()

	storeOpts := []model.Option{model.WithCache(c.Model.CacheSize)}
	srvOpts := server.Options{
		Addr:         c.Server.Addr(),
		ReadTimeout:  c.Server.ReadTimeout,
		WriteTimeout: c.Server.WriteTimeout,
		IdleTimeout:  c.Server.IdleTimeout,
	}
	if c.Metrics.Enabled {
		mw := metrics.NewWrapper(metrics.New())
		storeOpts = append(storeOpts, model.WithMetrics(mw))
		srvOpts.Metrics = mw
		srvOpts.MetricsHandler = promhttp.Handler()
	}

	// A missing artifact leaves the store unloaded; a corrupt one is fatal.
	store, err := model.Load(c.Model.Path, storeOpts...)
	if err != nil {
		log.Fatal().Err(err).Str("path", c.Model.Path).Msg("model load failed")
	}

	srv := server.New(store, srvOpts)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	waitForShutdown(srv, c.Server.ShutdownTimeout, errCh)
}

// waitForShutdown blocks until a signal arrives or the server fails, then
// drains in-flight requests within timeout.
func waitForShutdown(srv *server.Server, timeout time.Duration, errCh <-chan error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			log.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info().Msg("shutting down gracefully...")
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("shutdown timeout, forcing exit")
		return
	}
	log.Info().Msg("server stopped")
}
