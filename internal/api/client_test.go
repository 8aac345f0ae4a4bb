package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mcbulk/internal/api"
	"mcbulk/internal/logging"
)

func newClient(endpoint string, retries int) *api.Client {
	creds := api.Credentials{ID: "test-id", Token: "test-token"}
	opts := api.Options{Timeout: 2 * time.Second, Retries: retries}
	return api.NewClient(endpoint, creds, opts, logging.Discard())
}

func TestExecuteSendsAuthHeadersAndPayload(t *testing.T) {
	type captured struct {
		id, token string
		payload   map[string]any
	}
	ch := make(chan captured, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		ch <- captured{
			id:      r.Header.Get("X-MCD-ID"),
			token:   r.Header.Get("X-MCD-TOKEN"),
			payload: payload,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"ok": true}})
	}))
	defer server.Close()

	client := newClient(server.URL, 0)
	result, err := client.Execute(context.Background(), "query q($id: String) { node(id: $id) { id } }", map[string]any{"id": "m-1"})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	got := <-ch
	if got.id != "test-id" || got.token != "test-token" {
		t.Fatalf("auth headers not sent: %+v", got)
	}
	if got.payload["query"] == "" {
		t.Fatalf("query missing from payload")
	}
	vars, ok := got.payload["variables"].(map[string]any)
	if !ok || vars["id"] != "m-1" {
		t.Fatalf("variables not sent: %v", got.payload["variables"])
	}
	data, ok := result["data"].(map[string]any)
	if !ok || data["ok"] != true {
		t.Fatalf("unexpected result: %v", result)
	}
}

func TestExecuteRejectsMalformedOperation(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	client := newClient(server.URL, 0)
	if _, err := client.Execute(context.Background(), "query { broken", nil); err == nil {
		t.Fatalf("expected parse error")
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("malformed operation must not reach the network")
	}
}

func TestExecuteRetriesOn500(t *testing.T) {
	var count int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&count, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{}})
	}))
	defer server.Close()

	client := newClient(server.URL, 1)
	if _, err := client.Execute(context.Background(), "query { ok }", nil); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if atomic.LoadInt32(&count) != 2 {
		t.Fatalf("expected 2 attempts, got %d", count)
	}
}

func TestExecuteDoesNotRetryAuthFailure(t *testing.T) {
	var count int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&count, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newClient(server.URL, 2)
	if _, err := client.Execute(context.Background(), "query { ok }", nil); err == nil {
		t.Fatalf("expected auth error")
	}
	if atomic.LoadInt32(&count) != 1 {
		t.Fatalf("auth failures must not retry, got %d attempts", count)
	}
}
