package ratelimit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMiddleware_AllowsThenRejectsSameKey(t *testing.T) {
	store := NewStore(0.02, 1)
	stats := NewMemoryStatsStore()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	h := Middleware(Options{
		Store:               store,
		Stats:               stats,
		RejectStatus:        http.StatusTooManyRequests,
		RetryAfter:          1 * time.Second,
		AddRateLimitHeaders: true,
	})(next)

	// 1) primeira passa
	r1 := httptest.NewRequest(http.MethodGet, "http://example/gyms", nil)
	r1.RemoteAddr = "10.0.0.1:1234"
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	if w1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w1.Code)
	}
	for _, hdr := range []string{"X-RateLimit-Key", "X-RateLimit-RPS", "X-RateLimit-Burst"} {
		if w1.Header().Get(hdr) == "" {
			t.Fatalf("expected %s header to be set", hdr)
		}
	}
	if got := w1.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("expected X-RateLimit-Remaining=0, got %q", got)
	}

	// 2) segunda bloqueia (burst=1 e rps bem baixo)
	r2 := httptest.NewRequest(http.MethodGet, "http://example/gyms", nil)
	r2.RemoteAddr = "10.0.0.1:1234"
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}
	if got := w2.Header().Get("Retry-After"); got == "" {
		t.Fatalf("expected Retry-After header to be set")
	}

	if calls != 1 {
		t.Fatalf("expected next handler to be called once, got %d", calls)
	}
	if got := stats.Total(); got.Allowed != 1 || got.Denied != 1 {
		t.Fatalf("expected 1 allowed / 1 denied, got %+v", got)
	}
	if got := stats.ByRoute()["GET /gyms"]; got.Allowed != 1 || got.Denied != 1 {
		t.Fatalf("expected route counters 1/1, got %+v", got)
	}
}

func TestMiddleware_KeyByHeader(t *testing.T) {
	store := NewStore(0.02, 1)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := Middleware(Options{
		Store:     store,
		KeyHeader: "X-Api-Key",
	})(next)

	// chaves diferentes têm limiters próprios
	for _, key := range []string{"k1", "k2"} {
		r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
		r.Header.Set("X-Api-Key", key)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for key %s, got %d", key, w.Code)
		}
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 cached keys, got %d", store.Len())
	}
}

func TestMiddleware_RetryAfterUsesSeconds(t *testing.T) {
	h := Middleware(Options{
		Store:      NewStore(0.02, 1),
		RetryAfter: 2500 * time.Millisecond,
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	got := secondResponse(h)
	if got.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", got.Code)
	}
	if ra := strings.TrimSpace(got.Header().Get("Retry-After")); ra != "2" {
		// int(2.5s.Seconds()) == 2
		t.Fatalf("expected Retry-After=2, got %q", ra)
	}
}

func TestMiddleware_RetryAfterDerivedFromRate(t *testing.T) {
	h := Middleware(Options{
		Store: NewStore(0.02, 1),
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	got := secondResponse(h)
	if ra := got.Header().Get("Retry-After"); ra != "50" {
		// 1/0.02 = 50s por token
		t.Fatalf("expected Retry-After=50, got %q", ra)
	}
}

func TestMiddleware_NoStoreAllowsEverything(t *testing.T) {
	h := Middleware(Options{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func secondResponse(h http.Handler) *httptest.ResponseRecorder {
	var w *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodGet, "http://example/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w = httptest.NewRecorder()
		h.ServeHTTP(w, r)
	}
	return w
}
