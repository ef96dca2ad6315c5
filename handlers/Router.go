package handlers

import (
	"net/http"

	"TaskTrackerService/config"
	"TaskTrackerService/response"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts the task routes together with /healthz and, when enabled,
// /metrics served from gatherer. Task routes go through the rate limiter when
// conf.RateLimit.Enabled is set; every route is request-logged.
func NewRouter(conf *config.Config, tasks *TaskHandler, gatherer prometheus.Gatherer, log *logrus.Logger) http.Handler {
	mux := http.NewServeMux()

	var taskRoutes http.Handler = tasks
	if conf.RateLimit.Enabled {
		taskRoutes = Chain(tasks, RateLimiter(conf.RateLimit))
	}
	mux.Handle("/tasks", taskRoutes)
	mux.Handle("/tasks/", taskRoutes)
	mux.HandleFunc("/", tasks.NotFoundHandler)

	mux.HandleFunc("GET /healthz", func(res http.ResponseWriter, req *http.Request) {
		_ = response.WriteMessage(res, http.StatusOK, "ok")
	})

	if conf.Metrics.Enabled {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return Chain(mux, RequestLogger(log))
}
