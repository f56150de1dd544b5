package registry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"crpt-gateway/crpt/infra"
)

func TestMiddleware_AllowsThenRejectsSameToken(t *testing.T) {
	store := infra.NewStore(0.02, 1)

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"value":"ok"}`)
	})

	h := Middleware(Options{
		Store:               store,
		AddRateLimitHeaders: true,
	})(next)

	// 1) primeira passa
	r1 := httptest.NewRequest(http.MethodPost, "http://registry"+DefaultPath, nil)
	r1.Header.Set("Authorization", "Bearer t1")
	w1 := httptest.NewRecorder()
	h.ServeHTTP(w1, r1)
	if w1.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w1.Code)
	}
	if got := w1.Header().Get("X-RateLimit-RPS"); got != "0.02" {
		t.Fatalf("expected X-RateLimit-RPS=0.02, got %q", got)
	}
	if got := w1.Header().Get("X-RateLimit-Burst"); got != "1" {
		t.Fatalf("expected X-RateLimit-Burst=1, got %q", got)
	}

	// 2) segunda deve bloquear (burst=1 e rps bem baixo)
	r2 := httptest.NewRequest(http.MethodPost, "http://registry"+DefaultPath, nil)
	r2.Header.Set("Authorization", "Bearer t1")
	w2 := httptest.NewRecorder()
	h.ServeHTTP(w2, r2)
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w2.Code)
	}
	if got := w2.Header().Get("Retry-After"); got != "50" {
		// 1 token a 0.02 rps = 50s
		t.Fatalf("expected Retry-After=50, got %q", got)
	}
	if !strings.Contains(w2.Body.String(), `"error_message":"rate limit exceeded"`) {
		t.Fatalf("expected JSON error_message body, got %q", w2.Body.String())
	}

	if calls != 1 {
		t.Fatalf("expected next handler to be called once, got %d", calls)
	}
}

func TestMiddleware_TokensHaveSeparateQuota(t *testing.T) {
	store := infra.NewStore(0.02, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := Middleware(Options{Store: store})(next)

	for _, tok := range []string{"k1", "k2"} {
		r := httptest.NewRequest(http.MethodPost, "http://registry/", nil)
		r.Header.Set("Authorization", "Bearer "+tok)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for token %s, got %d", tok, w.Code)
		}
	}
}

func TestMiddleware_NoStorePassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := Middleware(Options{})(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "http://registry/", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", w.Code)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	cases := map[float64]string{0: "1", 0.2: "1", 1: "1", 1.5: "2", 50: "50"}
	for in, want := range cases {
		if got := retryAfterSeconds(in); got != want {
			t.Fatalf("retryAfterSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}
