// TaskTrackerService is an in-memory task tracking web service.
//
// It keeps tasks in process memory only: a single seed task exists at startup
// and everything is lost when the process exits. Requests are rate limited per
// client and Prometheus metrics are exposed for monitoring.
//
// The following endpoints are available:
//
//  1. GET /tasks?completed=true|false&sort=asc|desc - List tasks
//  2. GET /tasks/priority/{level} - List tasks with a priority level
//  3. GET /tasks/{id} - Get a task by ID
//  4. POST /tasks - Create a new task
//  5. PUT /tasks/{id} - Update an existing task
//  6. DELETE /tasks/{id} - Delete an existing task
//  7. GET /healthz - Liveness probe
//  8. GET /metrics - Display Prometheus metrics
//
// Configuration is read from TASKS_ prefixed environment variables, optionally
// loaded from a .env file in the working directory.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"TaskTrackerService/config"
	"TaskTrackerService/handlers"
	"TaskTrackerService/metrics"
	"TaskTrackerService/store"
	"TaskTrackerService/validation"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("could not load .env file")
	}

	conf, err := config.Parse()
	if err != nil {
		log.WithError(err).Fatal("could not parse config")
	}

	level, err := conf.Logger.ParseLevel()
	if err != nil {
		log.WithError(err).Fatal("could not parse config")
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(ctx context.Context, conf *config.Config, log *logrus.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	validator, err := validation.New()
	if err != nil {
		return errors.WithStack(err)
	}

	tasks := handlers.NewTaskHandler(store.New(), validator, metrics.New(registry), log)

	server := &http.Server{
		Addr:    conf.HTTP.Address,
		Handler: handlers.NewRouter(conf, tasks, registry, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("could not shut down server")
		}
	}()

	log.WithField("address", conf.HTTP.Address).Info("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}
	log.Info("Server stopped")
	return nil
}
