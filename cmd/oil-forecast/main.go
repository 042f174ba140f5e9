package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"oil-forecast/config"
	v1 "oil-forecast/internal/controllers/http/v1"
	"oil-forecast/internal/repositories"
	"oil-forecast/internal/services/forecast"
	"oil-forecast/pkg/httpserver"
	"oil-forecast/pkg/observe"
)

// @title Oil Forecast API
// @version 1.0.0
// @description Monthly oil price forecasts served from a pre-trained time series model.
// @description The HTML form lives at / and renders the forecast with an embedded chart.

// @contact.name Oil Forecast Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Forecast
// @tag.description Oil price forecast operations
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	cnf, err := config.NewConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	writers := []io.Writer{os.Stdout}
	var hook *observe.SentryHook
	if cnf.Sentry.DSN != "" {
		hook = observe.NewSentryHook(cnf.App.Env, cnf.App.Name, 0, cnf.Sentry.Debug, cnf.Sentry.DSN)
		writers = append(writers, hook)
	}

	l, err := observe.NewLogger(observe.LoggerConfig{
		AppName: cnf.App.Name,
		AppEnv:  cnf.App.Env,
		Level:   cnf.Log.Level,
		Format:  cnf.Log.Format,
	}, writers...)
	if err != nil {
		log.Fatalf("cannot init logger: %v", err)
	}
	if hook != nil {
		hook.SetLogger(l)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observe.NewMetrics(reg, "oil_forecast")

	model, err := repositories.InitForecastModel(cnf, l)
	if err != nil {
		l.Fatal("cannot init forecast model", map[string]any{"err": err.Error()})
	}

	service := forecast.NewForecastService(model, l, metrics)

	var ready atomic.Bool
	app := httpserver.InitFiberServer(httpserver.Options{
		AppName:      cnf.App.Name,
		ReadTimeout:  time.Duration(cnf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cnf.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cnf.Server.IdleTimeout) * time.Second,
		Ready:        ready.Load,
	}, l)

	v1.NewRouter(
		app,
		service,
		reg,
		metrics,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Server.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err.Error()})
		}
	}()

	ready.Store(true)
	l.Info("application started successfully", map[string]any{
		"port":    cnf.Server.Port,
		"model":   service.ModelName(),
		"version": cnf.App.Version,
	})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		ready.Store(false)
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = app.ShutdownWithContext(shutdownCtx)
		if hook != nil {
			hook.Flush()
		}
		_ = l.Stop()
		cancel()
	}()

	select {
	case <-sigCh:
		fmt.Println("received shutdown signal")
	case <-ctx.Done():
		fmt.Println("context cancelled")
	}
}
