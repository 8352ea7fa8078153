package goLedger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrEthical07/goLedger/session"
)

func newTestEngine(t *testing.T, handler http.Handler) (*Engine, *session.MemStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemStore()

	cfg := defaultConfig()
	cfg.API.BaseURL = srv.URL
	cfg.Storage.Backend = StorageMemory

	eng, err := New().
		WithConfig(cfg).
		WithStore(store).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(eng.Close)

	return eng, store
}

func testProfile() session.UserProfile {
	return session.UserProfile{
		ID:       1,
		Name:     "Alice Example",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     "accountant",
	}
}

func seedSession(t *testing.T, store session.Store, token string) {
	t.Helper()

	now := time.Now()
	err := store.Save(context.Background(), &session.Session{
		Token:     token,
		User:      testProfile(),
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(24 * time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
}

// requireBearer fails the request with 401 unless the expected token is presented.
func requireBearer(t *testing.T, token string, next http.HandlerFunc) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
