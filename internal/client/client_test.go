// ABOUTME: Tests for the EAM gateway request wrapper
// ABOUTME: Uses httptest to mock gateway responses

package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sagmcom/eamctl/internal/session"
)

// memStore is an in-memory session store for tests.
type memStore struct {
	cred session.Credential
	ok   bool
}

func (m *memStore) Load() (session.Credential, bool) { return m.cred, m.ok }

func (m *memStore) Save(c session.Credential) error {
	m.cred = c
	m.ok = true
	return nil
}

func (m *memStore) Clear() error {
	m.cred = session.Credential{}
	m.ok = false
	return nil
}

// newTestClient builds a client against url with the given store and no
// retries, so wrapper tests observe single attempts.
func newTestClient(url string, store *memStore) *Client {
	return New(url,
		WithSession(session.NewProvider(store)),
		WithRetryPolicy(0, time.Millisecond),
	)
}

func TestRequest_NoToken_NoAuthHeader(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	var out map[string]any
	if err := c.do(context.Background(), http.MethodGet, "/api/user/profile", nil, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasAuth {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestRequest_Token_BearerHeader(t *testing.T) {
	var gotAuth []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Values("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := &memStore{cred: session.Credential{Token: "tok-42", Role: "ADMIN"}, ok: true}
	c := newTestClient(server.URL, store)
	var out map[string]any
	if err := c.do(context.Background(), http.MethodGet, "/api/user/profile", nil, nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotAuth) != 1 || gotAuth[0] != "Bearer tok-42" {
		t.Errorf("expected exactly [Bearer tok-42], got %v", gotAuth)
	}
}

func TestRequest_CallerHeadersWin(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	headers := map[string]string{"Content-Type": "text/plain"}
	if err := c.do(context.Background(), http.MethodPost, "/api/x", "body", headers, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "text/plain" {
		t.Errorf("expected caller override to win, got %s", gotContentType)
	}
}

func TestRequest_EmptyBodyNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	var out map[string]any
	if err := c.do(context.Background(), http.MethodDelete, "/api/machine/delete-machine/3", nil, nil, &out); err != nil {
		t.Fatalf("expected empty result, got error: %v", err)
	}
	if out != nil {
		t.Errorf("expected out untouched, got %v", out)
	}
}

func TestRequest_NonJSONSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	var out map[string]any
	if err := c.do(context.Background(), http.MethodGet, "/api/health", nil, nil, &out); err != nil {
		t.Fatalf("expected non-JSON body to be ignored, got error: %v", err)
	}
	if out != nil {
		t.Errorf("expected out untouched, got %v", out)
	}
}

func TestRequest_HTTPErrorCarriesDiagnostics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"titre cannot be blank"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	err := c.do(context.Background(), http.MethodPost, "/api/ordreTravail/add-ordreTravail", map[string]string{}, nil, nil)
	if err == nil {
		t.Fatal("expected error for 400 response")
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Kind != KindHTTP {
		t.Errorf("expected http kind, got %s", apiErr.Kind)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.Status)
	}
	if apiErr.Method != http.MethodPost || apiErr.Path != "/api/ordreTravail/add-ordreTravail" {
		t.Errorf("expected method/path in error, got %s %s", apiErr.Method, apiErr.Path)
	}
	if apiErr.ServerMessage() != "titre cannot be blank" {
		t.Errorf("expected server message, got %q", apiErr.ServerMessage())
	}
}

func TestRequest_401ClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token expired"}`))
	}))
	defer server.Close()

	store := &memStore{cred: session.Credential{Token: "stale"}, ok: true}
	c := newTestClient(server.URL, store)
	err := c.do(context.Background(), http.MethodGet, "/api/user/profile", nil, nil, nil)
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if store.ok {
		t.Error("expected credential cleared after 401")
	}
}

func TestRequest_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := New(server.URL,
		WithSession(session.NewProvider(&memStore{})),
		WithRetryPolicy(0, time.Millisecond),
		WithTimeout(20*time.Millisecond),
	)

	start := time.Now()
	err := c.do(context.Background(), http.MethodGet, "/api/health", nil, nil, nil)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Kind != KindTimeout {
		t.Fatalf("expected timeout kind, got %v", err)
	}
	if apiErr.Retryable() {
		t.Error("timeout must not be retryable")
	}
	if elapsed > 150*time.Millisecond {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestRequest_ConnectionError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1", &memStore{})
	err := c.do(context.Background(), http.MethodGet, "/api/health", nil, nil, nil)
	if err == nil {
		t.Fatal("expected connection error")
	}
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Kind != KindNetwork {
		t.Fatalf("expected network kind, got %v", err)
	}
	if !apiErr.Retryable() {
		t.Error("network failure must be retryable")
	}
}

func TestRequest_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := newTestClient(server.URL, &memStore{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := c.do(ctx, http.MethodGet, "/api/health", nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Kind != KindTimeout {
		t.Fatalf("expected cancellation typed as timeout kind, got %v", err)
	}
}

func TestIsJSON(t *testing.T) {
	cases := []struct {
		contentType string
		want        bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"application/problem+json", true},
		{"text/plain", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isJSON(tc.contentType); got != tc.want {
			t.Errorf("isJSON(%q) = %t, want %t", tc.contentType, got, tc.want)
		}
	}
}
