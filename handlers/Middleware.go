package handlers

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"TaskTrackerService/config"
	"TaskTrackerService/response"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h so that the first one listed runs first.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// RateLimiter limits each client to conf.Burst requests, refilled one every
// conf.Interval. Clients are keyed by remote IP, or by the X-Forwarded-For /
// X-Real-Ip headers when conf.TrustHeaders is set.
//
// Rejected requests get a 429 JSON message and a Retry-After header.
func RateLimiter(conf config.RateLimit) Middleware {
	cache := expirable.NewLRU[string, *rate.Limiter](conf.CacheSize, nil, conf.TTL)
	var mu sync.Mutex

	getLimiter := func(remoteAddr string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		limiter, exists := cache.Get(remoteAddr)
		if !exists {
			limiter = rate.NewLimiter(rate.Every(conf.Interval), conf.Burst)
			cache.Add(remoteAddr, limiter)
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			limiter := getLimiter(clientAddr(req, conf.TrustHeaders))

			reservation := limiter.Reserve()
			if !reservation.OK() || reservation.Delay() > 0 {
				if reservation.OK() {
					res.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(reservation.Delay().Seconds()))))
					reservation.Cancel()
				}
				_ = response.WriteMessage(res, http.StatusTooManyRequests, "The API is at capacity, try again later.")
				return
			}

			res.Header().Set("X-RateLimit-Limit", strconv.Itoa(conf.Burst))
			res.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
			next.ServeHTTP(res, req)
		})
	}
}

func clientAddr(req *http.Request, trustHeaders bool) string {
	if trustHeaders {
		if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := req.Header.Get("X-Real-Ip"); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one entry per request with its outcome and duration.
func RequestLogger(log *logrus.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: res, status: http.StatusOK}

			next.ServeHTTP(rec, req)

			log.WithFields(logrus.Fields{
				"method":   req.Method,
				"path":     req.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
				"remote":   req.RemoteAddr,
			}).Debug("request served")
		})
	}
}
