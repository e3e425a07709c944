package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CafeBookingService/internal/domain"
	"github.com/m04kA/CafeBookingService/internal/service/identity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type resolverStub map[string]*domain.User

func (s resolverStub) Resolve(_ context.Context, token string) (*domain.User, error) {
	switch token {
	case "broken-store":
		return nil, errors.New("redis down")
	case "expired":
		return nil, identity.ErrSessionNotFound
	}
	user, ok := s[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return user, nil
}

type recordingMetrics struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (m *recordingMetrics) ObserveHTTPRequest(_ string, route string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routes = append(m.routes, route)
	m.status = append(m.status, status)
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	id, ok := GetUserID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	token, _ := GetToken(r.Context())
	_, _ = w.Write([]byte(id + ":" + token))
}

func TestAuth(t *testing.T) {
	resolver := resolverStub{"good": {ID: "u-1"}}
	handler := Auth(resolver, nopLogger{})(http.HandlerFunc(echoUser))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid bearer", header: "Bearer good", wantStatus: http.StatusOK, wantBody: "u-1:good"},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusOK, wantBody: "u-1:good"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "expired session", header: "Bearer expired", wantStatus: http.StatusUnauthorized},
		{name: "store failure", header: "Bearer broken-store", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestOperatorKey(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	tests := []struct {
		name       string
		configured string
		provided   string
		wantStatus int
	}{
		{name: "matching key", configured: "k", provided: "k", wantStatus: http.StatusNoContent},
		{name: "wrong key", configured: "k", provided: "x", wantStatus: http.StatusForbidden},
		{name: "missing key", configured: "k", provided: "", wantStatus: http.StatusForbidden},
		{name: "not configured", configured: "", provided: "", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/", nil)
			if tt.provided != "" {
				req.Header.Set(OperatorKeyHeader, tt.provided)
			}
			rec := httptest.NewRecorder()

			OperatorKey(tt.configured, nopLogger{})(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	metrics := &recordingMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(metrics))
	r.HandleFunc("/cafes/{cafeId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cafes/42", nil))

	require.Len(t, metrics.routes, 1)
	assert.Equal(t, "/cafes/{cafeId}", metrics.routes[0])
	assert.Equal(t, http.StatusNotFound, metrics.status[0])
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, nopLogger{})
	handler := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func TestRateLimiter_PrunesIdleClients(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(10, 5, nopLogger{})
	rl.now = clock.Now

	for i := 0; i < 100; i++ {
		rl.limiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	require.Equal(t, 100, rl.size())

	clock.Advance(defaultIdleTTL / 2)
	rl.limiter("10.0.0.1")
	assert.Zero(t, rl.Prune(), "nothing is idle long enough yet")

	clock.Advance(defaultIdleTTL/2 + time.Second)
	assert.Equal(t, 99, rl.Prune())
	assert.Equal(t, 1, rl.size())

	rl.mu.Lock()
	_, kept := rl.clients["10.0.0.1"]
	rl.mu.Unlock()
	assert.True(t, kept, "recently seen client survives")
}

func TestRateLimiter_IdleTTLCoversRefill(t *testing.T) {
	// 1 запрос в минуту, корзина 30: полное восстановление за 30 минут
	rl := NewRateLimiter(1, 30, nopLogger{})
	assert.Equal(t, 30*time.Minute, rl.idleTTL)

	assert.Equal(t, defaultIdleTTL, NewRateLimiter(60, 5, nopLogger{}).idleTTL)
}

func TestRateLimiter_RunPrunesUntilCancelled(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(10, 5, nopLogger{})
	rl.now = clock.Now

	rl.limiter("10.0.0.1")
	rl.limiter("10.0.0.2")
	clock.Advance(defaultIdleTTL + time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return rl.size() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestLatency(t *testing.T) {
	handler := Latency(50 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	started := time.Now()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, time.Since(started), 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	cancelled := Latency(time.Hour)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	cancelled.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	assert.False(t, called)
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cafes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cafes", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
