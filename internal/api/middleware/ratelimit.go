package middleware

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/m04kA/CafeBookingService/internal/api/handlers"
)

// defaultIdleTTL сколько хранится лимитер IP без запросов
const defaultIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP.
// Лимитеры IP, не присылавших запросов дольше idleTTL, удаляет Prune.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
	mu      sync.Mutex
	clients map[string]*client
	log     Logger
}

// NewRateLimiter создает лимитер: perMinute запросов в минуту, не более burst подряд
func NewRateLimiter(perMinute int, burst int, log Logger) *RateLimiter {
	interval := time.Minute / time.Duration(perMinute)
	return &RateLimiter{
		limit: rate.Every(interval),
		burst: burst,
		// к этому моменту корзина IP снова полная, новый лимитер ведет себя так же
		idleTTL: max(defaultIdleTTL, time.Duration(burst)*interval),
		now:     time.Now,
		clients: make(map[string]*client),
		log:     log,
	}
}

// Middleware возвращает mux middleware
func (rl *RateLimiter) Middleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.limiter(ip).Allow() {
				rl.log.Warn("RateLimit: %s %s throttled for ip=%s", r.Method, r.URL.Path, ip)
				handlers.RespondTooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Run периодически удаляет простаивающие лимитеры, пока не отменен ctx
func (rl *RateLimiter) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := rl.Prune(); removed > 0 {
				rl.log.Info("RateLimit: pruned %d idle clients", removed)
			}
		}
	}
}

// Prune удаляет лимитеры IP, простаивающих дольше idleTTL, и возвращает их число
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idleTTL)
	removed := 0
	for ip, c := range rl.clients {
		if c.lastSeen.Before(cutoff) {
			delete(rl.clients, ip)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = rl.now()
	return c.limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
