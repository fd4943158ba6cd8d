package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/calebds/tracker/internal/state"
)

type countingHandler struct {
	calls int
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.calls++
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"calls": h.calls})
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	next := &countingHandler{}
	mw := IdempotencyMiddleware{Store: state.NewMemoryStore(), Next: next}

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/track", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyHeaderKey, "abc-123")
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, req)
		return rr
	}

	first := do()
	second := do()

	if next.calls != 1 {
		t.Fatalf("downstream called %d times, want 1", next.calls)
	}
	if second.Code != first.Code {
		t.Fatalf("replay status = %d, want %d", second.Code, first.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replay body %q differs from original %q", second.Body.String(), first.Body.String())
	}
}

func TestIdempotency_DistinctKeysAreIndependent(t *testing.T) {
	next := &countingHandler{}
	mw := IdempotencyMiddleware{Store: state.NewMemoryStore(), Next: next}

	for _, key := range []string{"key-a", "key-b"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/track", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyHeaderKey, key)
		mw.ServeHTTP(httptest.NewRecorder(), req)
	}

	if next.calls != 2 {
		t.Fatalf("downstream called %d times, want 2", next.calls)
	}
}

func TestIdempotency_SkipsGETAndMissingKey(t *testing.T) {
	next := &countingHandler{}
	mw := IdempotencyMiddleware{Store: state.NewMemoryStore(), Next: next}

	get := httptest.NewRequest(http.MethodGet, "/v1/retailers", nil)
	get.Header.Set(IdempotencyHeaderKey, "ignored-on-get")
	mw.ServeHTTP(httptest.NewRecorder(), get)
	mw.ServeHTTP(httptest.NewRecorder(), get)

	post := httptest.NewRequest(http.MethodPost, "/v1/track", strings.NewReader(`{}`))
	mw.ServeHTTP(httptest.NewRecorder(), post)
	post2 := httptest.NewRequest(http.MethodPost, "/v1/track", strings.NewReader(`{}`))
	mw.ServeHTTP(httptest.NewRecorder(), post2)

	if next.calls != 4 {
		t.Fatalf("downstream called %d times, want 4 (no caching without a key)", next.calls)
	}
}
