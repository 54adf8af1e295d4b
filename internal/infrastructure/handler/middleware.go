package handler

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v3"
	"github.com/gorilla/mux"
	"github.com/victoragudo/hotel-management-system/pkg/constants"
	"golang.org/x/time/rate"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an id, reusing the caller's
// X-Request-ID when present.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			r.Header.Set(RequestIDHeader, requestID)
		}
		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.Info("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status_code", wrapped.statusCode,
				"duration", time.Since(start),
				constants.RequestId, r.Header.Get(RequestIDHeader),
			)
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const (
	limiterIdleTTL  = 10 * time.Minute
	maxTrackedUsers = 10000
)

// clientLimiters hands out one token bucket per client address. A bucket
// idle for longer than idleTTL is dropped and the client starts full again.
type clientLimiters struct {
	mu       sync.Mutex
	limiters *ccache.Cache[*rate.Limiter]
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
}

func newClientLimiters(limit rate.Limit, burst int, idleTTL time.Duration, maxSize int64) *clientLimiters {
	return &clientLimiters{
		limiters: ccache.New(ccache.Configure[*rate.Limiter]().MaxSize(maxSize)),
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
	}
}

func (c *clientLimiters) get(clientID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item := c.limiters.Get(clientID); item != nil && !item.Expired() {
		item.Extend(c.idleTTL)
		return item.Value()
	}

	limiter := rate.NewLimiter(c.limit, c.burst)
	c.limiters.Set(clientID, limiter, c.idleTTL)
	return limiter
}

func RateLimitMiddleware(requestsPerSecond float64, burst int) mux.MiddlewareFunc {
	limiters := newClientLimiters(rate.Limit(requestsPerSecond), burst, limiterIdleTTL, maxTrackedUsers)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.get(clientIP(r)).Allow() {
				writeJSON(w, http.StatusTooManyRequests, APIResponse{Success: false, Error: "Rate limit exceeded"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
