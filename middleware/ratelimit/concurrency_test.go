package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestConcurrencyMiddleware_TimesOutWhenNoSlot(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	secondDone := make(chan struct{})
	var startedOnce sync.Once

	// handler segura a vaga até liberarmos
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedOnce.Do(func() { close(started) })
		<-release
		w.WriteHeader(http.StatusOK)
	})

	h := ConcurrencyMiddleware(ConcurrencyOptions{
		Max:            1,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: 25 * time.Millisecond,
	})(next)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		w1 := httptest.NewRecorder()
		h.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "http://example/", nil))
		if w1.Code != http.StatusOK {
			t.Errorf("expected first request 200, got %d", w1.Code)
		}
	}()

	select {
	case <-started:
	case <-time.After(200 * time.Millisecond):
		close(release)
		wg.Wait()
		t.Fatalf("timeout waiting first request to start")
	}

	go func() {
		defer wg.Done()
		w2 := httptest.NewRecorder()
		h.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "http://example/", nil))
		if w2.Code != http.StatusServiceUnavailable {
			t.Errorf("expected second request 503, got %d", w2.Code)
		}
		close(secondDone)
	}()

	// a segunda tem que terminar antes de liberar a primeira
	select {
	case <-secondDone:
	case <-time.After(500 * time.Millisecond):
		close(release)
		wg.Wait()
		t.Fatalf("timeout waiting second request to finish")
	}

	close(release)
	wg.Wait()
}

func TestConcurrencyMiddleware_DisabledWhenMaxZero(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := ConcurrencyMiddleware(ConcurrencyOptions{Max: 0})(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://example/", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected passthrough, got %d", w.Code)
	}
}

func TestSlots_ReleaseFreesSlot(t *testing.T) {
	s := make(slots, 1)

	release, ok := s.acquire(context.Background(), 0)
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}
	if _, ok := s.acquire(context.Background(), 5*time.Millisecond); ok {
		t.Fatalf("expected second acquire to time out")
	}

	release()
	release2, ok := s.acquire(context.Background(), 5*time.Millisecond)
	if !ok {
		t.Fatalf("expected acquire after release to succeed")
	}
	release2()
}

func TestSlots_CanceledContext(t *testing.T) {
	s := make(slots, 1)
	s <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := s.acquire(ctx, 0); ok {
		t.Fatalf("expected acquire to fail on canceled ctx")
	}
}
