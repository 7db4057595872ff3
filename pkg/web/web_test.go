package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/orderrelay/pkg/httpserver"
	"github.com/dmitrymomot/orderrelay/pkg/logger"
	"github.com/dmitrymomot/orderrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/orderrelay/pkg/requestid"
	"github.com/dmitrymomot/orderrelay/pkg/web"
)

type fakePublisher struct {
	mu       sync.Mutex
	payloads []string
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, payload []byte) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.payloads = append(p.payloads, string(payload))
	return "1-0", nil
}

func newRouter(pub web.Publisher) http.Handler {
	return web.NewRouter(
		web.Config{AllowedOrigins: []string{"https://kitchen.example.com"}, MaxEventBytes: 256},
		web.Routes{
			Publisher: pub,
			Live:      httpserver.LivenessHandler(),
			Metrics:   http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("metrics")) }),
		},
		logger.Discard(),
	)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublish(t *testing.T) {
	t.Parallel()

	t.Run("accepted", func(t *testing.T) {
		t.Parallel()
		pub := &fakePublisher{}
		body := `{"type":"order.ready","data":{"orderNumber":"ORD-1","customerName":"Ana","customerEmail":"ana@example.com"}}`

		rec := post(newRouter(pub), body)
		require.Equal(t, http.StatusAccepted, rec.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "1-0", resp["id"])
		assert.Equal(t, []string{body}, pub.payloads)
	})

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed", `{"type":`, http.StatusBadRequest},
		{"missing type", `{"data":{}}`, http.StatusBadRequest},
		{"unknown type", `{"type":"order.refunded","data":{}}`, http.StatusUnprocessableEntity},
		{"too large", `{"type":"order.ready","data":{"orderNumber":"` + strings.Repeat("x", 300) + `"}}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pub := &fakePublisher{}
			rec := post(newRouter(pub), tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Empty(t, pub.payloads)
		})
	}

	t.Run("stream unavailable", func(t *testing.T) {
		t.Parallel()
		rec := post(newRouter(&fakePublisher{err: errors.New("connection refused")}), `{"type":"order.created","data":{"orderNumber":"ORD-1"}}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()
	h := newRouter(&fakePublisher{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "metrics", rec.Body.String())

	// No stream handler configured.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()
	h := newRouter(&fakePublisher{})

	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "https://kitchen.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://kitchen.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()
	h := web.NewRouter(web.Config{MaxEventBytes: 1024}, web.Routes{
		Live: http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
	}, logger.Discard())

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() { h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil)) })
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_PublishRateLimit(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	pub := &fakePublisher{}
	h := web.NewRouter(
		web.Config{MaxEventBytes: 1024, TrustProxyHeaders: true},
		web.Routes{Publisher: pub, PublishLimiter: limiter},
		logger.Discard(),
	)

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"type":"order.created","data":{"orderNumber":"ORD-9"}}`))
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusAccepted, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.1"))
	assert.Equal(t, http.StatusAccepted, send("198.51.100.2"))
	assert.Len(t, pub.payloads, 2)
}
