package middleware

import (
	"net"
	"net/http"
	"slot_machine/pkg/resp"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Лимитер клиента, который столько не обращался, удаляется
const idleTTL = 10 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter ограничивает частоту запросов с одного адреса
type RateLimiter struct {
	mtx       sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	rps       int
	burst     int
	logger    *zap.Logger
	now       func() time.Time
}

func NewRateLimiter(rps, burst int, logger *zap.Logger) *RateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
		rps:       rps,
		burst:     burst,
		logger:    logger,
		now:       time.Now,
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	now := l.now()
	l.sweep(now)

	if v, ok := l.visitors[key]; ok {
		v.seen = now
		return v.lim
	}
	v := &visitor{
		lim:  rate.NewLimiter(rate.Every(time.Second/time.Duration(l.rps)), l.burst),
		seen: now,
	}
	l.visitors[key] = v
	return v.lim
}

// sweep раз в idleTTL удаляет простаивающих клиентов. Вызывается под mtx
func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleTTL {
		return
	}
	l.lastSweep = now
	for key, v := range l.visitors {
		if now.Sub(v.seen) >= idleTTL {
			delete(l.visitors, key)
		}
	}
}

// Clients число отслеживаемых адресов
func (l *RateLimiter) Clients() int {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return len(l.visitors)
}

// Handler middleware для chi
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !l.limiter(key).Allow() {
			l.logger.Debug("request rate limited", zap.String("client", key), zap.String("path", r.URL.Path))
			resp.WriteError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
