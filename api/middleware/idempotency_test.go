package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tourbay/storefront/api/responses"
)

type fakeIdemStore struct {
	values map[string]string
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{values: map[string]string{}}
}

func (f *fakeIdemStore) Get(ctx context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeIdemStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeIdemStore) IdempotencyKey(scope, id string) string {
	return "sf:idempotency:" + scope + ":" + id
}

func (f *fakeIdemStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func newIdemRouter(store *fakeIdemStore, hits *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Post("/api/v1/cart/items", func(w http.ResponseWriter, req *http.Request) {
		*hits++
		responses.WriteSuccess(w, map[string]string{"id": "item-1"})
	})
	return r
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdemStore()
	hits := 0
	router := newIdemRouter(store, &hits)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"tour-1"}`))
		req.Header.Set("Idempotency-Key", "click-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	second := send()

	if hits != 1 {
		t.Fatalf("double submit reached the handler %d times", hits)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if second.Code != http.StatusOK {
		t.Fatalf("unexpected replay status %d", second.Code)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdemStore()
	hits := 0
	router := newIdemRouter(store, &hits)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"tour-1"}`))
	req.Header.Set("Idempotency-Key", "click-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"tour-2"}`))
	req.Header.Set("Idempotency-Key", "click-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for key reuse, got %d", w.Code)
	}
	if hits != 1 {
		t.Fatalf("reused key reached the handler %d times", hits)
	}
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	store := newFakeIdemStore()
	hits := 0
	router := newIdemRouter(store, &hits)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`))
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	if hits != 2 {
		t.Fatalf("expected both requests through, got %d", hits)
	}
}

func TestIdempotencyIgnoresUnguardedRoutes(t *testing.T) {
	store := newFakeIdemStore()
	hits := 0
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Get("/api/v1/cart", func(w http.ResponseWriter, req *http.Request) {
		hits++
		responses.WriteSuccess(w, nil)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.Header.Set("Idempotency-Key", "click-1")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if hits != 2 {
		t.Fatalf("read route intercepted: %d hits", hits)
	}
}
