package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/iho/gosar/internal/adapter/store/redis"
	"github.com/iho/gosar/tests/testutil"
)

func TestCreateIsIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	router, _ := testutil.NewServer(t, testutil.ServerOptions{
		IdempotencyStore: redis.NewIdempotencyStore(client),
	})

	payload, err := json.Marshal(testutil.ValidCreateRequest())
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/sars/", bytes.NewReader(payload))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Idempotency-Key", "create-key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("first create returned status %d: %s", first.Code, first.Body.String())
	}

	second := send()
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Error("second create should be served from the idempotency store")
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("replayed response body should match the original")
	}

	// Only one report should exist.
	code, env := testutil.DoJSON(t, router, http.MethodGet, "/api/v1/sars/", nil)
	if code != http.StatusOK {
		t.Fatalf("list returned status %d", code)
	}
	var result struct {
		TotalCount int `json:"totalCount"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("report count = %d, want 1", result.TotalCount)
	}
}

func TestDifferentKeysCreateSeparateReports(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	router, _ := testutil.NewServer(t, testutil.ServerOptions{
		IdempotencyStore: redis.NewIdempotencyStore(client),
	})

	payload, err := json.Marshal(testutil.ValidCreateRequest())
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	for _, key := range []string{"key-a", "key-b"} {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/sars/", bytes.NewReader(payload))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Idempotency-Key", key)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != http.StatusCreated {
			t.Fatalf("create with key %q returned status %d", key, w.Code)
		}
	}

	code, env := testutil.DoJSON(t, router, http.MethodGet, "/api/v1/sars/", nil)
	if code != http.StatusOK {
		t.Fatalf("list returned status %d", code)
	}
	var result struct {
		TotalCount int `json:"totalCount"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if result.TotalCount != 2 {
		t.Errorf("report count = %d, want 2", result.TotalCount)
	}
}
