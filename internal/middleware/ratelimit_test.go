package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRateLimiterPerClient(t *testing.T) {
	l := NewRateLimiter(1, 2, zap.NewNop())
	h := l.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/session/spin", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if call("10.0.0.1:1000") != http.StatusNoContent || call("10.0.0.1:1001") != http.StatusNoContent {
		t.Fatal("burst requests rejected")
	}
	if code := call("10.0.0.1:1002"); code != http.StatusTooManyRequests {
		t.Fatalf("third request got %d, want 429", code)
	}
	if code := call("10.0.0.2:1000"); code != http.StatusNoContent {
		t.Fatalf("other client got %d", code)
	}
}

func TestLoggerSetsRequestID(t *testing.T) {
	h := Logger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session/state", nil))
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("request id not set")
	}

	req := httptest.NewRequest(http.MethodGet, "/session/state", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != "abc" {
		t.Fatal("incoming request id not kept")
	}
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	l := NewRateLimiter(1, 1, zap.NewNop())
	now := time.Now()
	l.now = func() time.Time { return now }
	l.lastSweep = now

	l.limiter("10.0.0.1")
	l.limiter("10.0.0.2")
	if l.Clients() != 2 {
		t.Fatalf("tracking %d clients, want 2", l.Clients())
	}

	now = now.Add(idleTTL / 2)
	l.limiter("10.0.0.2")

	now = now.Add(idleTTL / 2)
	l.limiter("10.0.0.3")
	if l.Clients() != 2 {
		t.Fatalf("tracking %d clients after sweep, want 2", l.Clients())
	}
	if _, ok := l.visitors["10.0.0.1"]; ok {
		t.Fatal("idle client kept")
	}
	if _, ok := l.visitors["10.0.0.2"]; !ok {
		t.Fatal("active client evicted")
	}
}
