package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRateLimitMiddleware_PerClient(t *testing.T) {
	h := RateLimitMiddleware(0.001, 2)(okHandler)

	request := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, request("10.0.0.1:5000"))
	assert.Equal(t, http.StatusNoContent, request("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:5002"))
	assert.Equal(t, http.StatusNoContent, request("10.0.0.2:5000"), "other clients keep their own bucket")
}

func TestClientLimiters_IdleBucketsAreDropped(t *testing.T) {
	limiters := newClientLimiters(rate.Limit(0.001), 1, 20*time.Millisecond, 100)

	first := limiters.get("10.0.0.1")
	require.True(t, first.Allow())
	assert.Same(t, first, limiters.get("10.0.0.1"))
	assert.NotSame(t, first, limiters.get("10.0.0.2"))

	time.Sleep(60 * time.Millisecond)

	fresh := limiters.get("10.0.0.1")
	assert.NotSame(t, first, fresh)
	assert.True(t, fresh.Allow(), "an evicted client starts with a full bucket")
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	rec := httptest.NewRecorder()
	CORSMiddleware(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/apis/rooms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.4:41000"
	assert.Equal(t, "192.168.1.4", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))
}
