package goLedger

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
)

func TestResolveRouteProtectedWithoutSession(t *testing.T) {
	var hits atomic.Int64
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	eng, _ := newTestEngine(t, mux)

	nav, err := eng.ResolveRoute(context.Background(), "/dashboard.html")
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if nav != NavigateLogin {
		t.Fatalf("nav = %v, want NavigateLogin", nav)
	}

	// An absent session is decided locally.
	if got := hits.Load(); got != 0 {
		t.Fatalf("expected 0 backend calls, got %d", got)
	}
}

func TestResolveRouteProtectedWithValidSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/validate", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"success":true,"user":{"id":1,"name":"Alice Example","username":"alice","email":"alice@example.com","role":"accountant"}}`)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	nav, err := eng.ResolveRoute(context.Background(), "vouchers")
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if nav != NavigateStay {
		t.Fatalf("nav = %v, want NavigateStay", nav)
	}
}

func TestResolveRouteProtectedWithRevokedToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "stale-token")

	nav, err := eng.ResolveRoute(context.Background(), "reports")
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if nav != NavigateLogin {
		t.Fatalf("nav = %v, want NavigateLogin", nav)
	}

	if _, err := store.Load(context.Background()); !errors.Is(err, ErrSessionAbsent) {
		t.Fatalf("expected cleared session, got %v", err)
	}
}

func TestResolveRouteFailClosedOnTransportFailure(t *testing.T) {
	// The handler drops the connection mid-request to simulate an unreachable
	// backend.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/validate", func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("response writer does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Fatalf("hijack: %v", err)
		}
		conn.Close()
	})

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	nav, err := eng.ResolveRoute(context.Background(), "dashboard")
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if nav != NavigateLogin {
		t.Fatalf("nav = %v, want NavigateLogin", nav)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrSessionAbsent) {
		t.Fatalf("expected cleared session after transport failure, got %v", err)
	}
}

func TestResolveRoutePublicWithValidSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/validate", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"success":true,"user":{"id":1,"username":"alice"}}`)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	nav, err := eng.ResolveRoute(context.Background(), "/Login.html")
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if nav != NavigateLanding {
		t.Fatalf("nav = %v, want NavigateLanding", nav)
	}
}

func TestResolveRoutePublicWithoutSession(t *testing.T) {
	eng, _ := newTestEngine(t, http.NewServeMux())

	nav, err := eng.ResolveRoute(context.Background(), "register.html")
	if err != nil {
		t.Fatalf("ResolveRoute failed: %v", err)
	}
	if nav != NavigateStay {
		t.Fatalf("nav = %v, want NavigateStay", nav)
	}
}

func TestNormalizeRoute(t *testing.T) {
	cases := map[string]string{
		"/Login.html":     "login",
		"login.html":      "login",
		"LOGIN":           "login",
		"":                "login",
		"/index.html":     "login",
		"/Dashboard.html": "dashboard",
		"vouchers":        "vouchers",
	}
	for in, want := range cases {
		if got := normalizeRoute(in); got != want {
			t.Errorf("normalizeRoute(%q) = %q, want %q", in, got, want)
		}
	}
}
