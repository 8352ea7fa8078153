package goLedger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
)

func TestVoucherDraftValidate(t *testing.T) {
	const tolerance = 0.01

	t.Run("balanced", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "opening entry").
			AddDebit(1, 100.00, "cash").
			AddCredit(2, 100.00, "capital")
		if err := d.Validate(tolerance); err != nil {
			t.Fatalf("expected valid draft, got %v", err)
		}
	})

	t.Run("within tolerance", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "").
			AddDebit(1, 33.33, "").addTestCredits(2, 11.11, 11.11, 11.11)
		if err := d.Validate(tolerance); err != nil {
			t.Fatalf("expected floating-point accumulation absorbed, got %v", err)
		}
	})

	t.Run("unbalanced", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "").
			AddDebit(1, 100.00, "").
			AddCredit(2, 99.00, "")
		if err := d.Validate(tolerance); !errors.Is(err, ErrVoucherUnbalanced) {
			t.Fatalf("expected ErrVoucherUnbalanced, got %v", err)
		}
	})

	t.Run("missing credit side", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "").
			AddDebit(1, 100.00, "")
		if err := d.Validate(tolerance); !errors.Is(err, ErrVoucherMissingCredit) {
			t.Fatalf("expected ErrVoucherMissingCredit, got %v", err)
		}
	})

	t.Run("missing debit side", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "").
			AddCredit(2, 100.00, "")
		if err := d.Validate(tolerance); !errors.Is(err, ErrVoucherMissingDebit) {
			t.Fatalf("expected ErrVoucherMissingDebit, got %v", err)
		}
	})

	t.Run("line touching both sides", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "")
		d.lines = append(d.lines, VoucherLine{AccountID: 1, Debit: 10, Credit: 10})
		if err := d.Validate(tolerance); !errors.Is(err, ErrVoucherLineInvalid) {
			t.Fatalf("expected ErrVoucherLineInvalid, got %v", err)
		}
	})

	t.Run("line without account", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "").
			AddDebit(0, 10, "").
			AddCredit(2, 10, "")
		if err := d.Validate(tolerance); !errors.Is(err, ErrVoucherLineInvalid) {
			t.Fatalf("expected ErrVoucherLineInvalid, got %v", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		d := NewVoucherDraft("2026-08-01", "").
			AddDebit(1, -10, "").
			AddCredit(2, -10, "")
		if err := d.Validate(tolerance); !errors.Is(err, ErrVoucherLineInvalid) {
			t.Fatalf("expected ErrVoucherLineInvalid, got %v", err)
		}
	})
}

// addTestCredits spreads an amount across several credit lines.
func (d *VoucherDraft) addTestCredits(accountID int, amounts ...float64) *VoucherDraft {
	for _, a := range amounts {
		d.AddCredit(accountID, a, "")
	}
	return d
}

func TestCreateVoucherPostsOnce(t *testing.T) {
	var posts atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Vouchers", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		posts.Add(1)

		var body voucherCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode voucher body: %v", err)
		}
		if body.VoucherNumber != "V-001" {
			t.Errorf("voucherNumber = %q, want V-001", body.VoucherNumber)
		}
		if body.TotalAmount != 100.00 {
			t.Errorf("totalAmount = %v, want 100.00", body.TotalAmount)
		}
		if len(body.Lines) != 2 {
			t.Errorf("lines = %d, want 2", len(body.Lines))
		}
		writeJSON(w, `{"id":7,"voucherNumber":"V-001","status":"Pending"}`)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	draft := NewVoucherDraft("2026-08-01", "rent").
		AddDebit(10, 100.00, "rent expense").
		AddCredit(20, 100.00, "cash")

	v, err := eng.CreateVoucher(context.Background(), "V-001", draft)
	if err != nil {
		t.Fatalf("CreateVoucher failed: %v", err)
	}
	if v.ID != 7 {
		t.Fatalf("voucher id = %d, want 7", v.ID)
	}
	if got := posts.Load(); got != 1 {
		t.Fatalf("expected exactly 1 POST, got %d", got)
	}
	if got := eng.MetricsSnapshot().Counters[MetricVoucherCreated]; got != 1 {
		t.Fatalf("MetricVoucherCreated = %d, want 1", got)
	}
}

func TestCreateVoucherUnbalancedNeverReachesBackend(t *testing.T) {
	var hits atomic.Int64
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	})

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	draft := NewVoucherDraft("2026-08-01", "").
		AddDebit(10, 100.00, "").
		AddCredit(20, 50.00, "")

	_, err := eng.CreateVoucher(context.Background(), "V-002", draft)
	if !errors.Is(err, ErrVoucherUnbalanced) {
		t.Fatalf("expected ErrVoucherUnbalanced, got %v", err)
	}
	if got := hits.Load(); got != 0 {
		t.Fatalf("expected 0 backend calls, got %d", got)
	}
	if got := eng.MetricsSnapshot().Counters[MetricVoucherRejected]; got != 1 {
		t.Fatalf("MetricVoucherRejected = %d, want 1", got)
	}
}

func TestCreateVoucherDuplicateSubmissionRejected(t *testing.T) {
	eng, store := newTestEngine(t, http.NewServeMux())
	seedSession(t, store, "abc123")

	release, err := eng.guard.Acquire("voucher:create:V-003")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer release()

	draft := NewVoucherDraft("2026-08-01", "").
		AddDebit(10, 10, "").
		AddCredit(20, 10, "")

	_, err = eng.CreateVoucher(context.Background(), "V-003", draft)
	if !errors.Is(err, ErrRequestInFlight) {
		t.Fatalf("expected ErrRequestInFlight, got %v", err)
	}
}

func TestVoucherListUnauthorizedClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Vouchers", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "revoked")

	_, err := eng.Vouchers(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrSessionAbsent) {
		t.Fatalf("expected cleared session, got %v", err)
	}
}

func TestNewVoucherNumber(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Vouchers/GetNewVoucherNumber", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"voucherNumber":"V-042"}`)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	n, err := eng.NewVoucherNumber(context.Background())
	if err != nil {
		t.Fatalf("NewVoucherNumber failed: %v", err)
	}
	if n != "V-042" {
		t.Fatalf("voucher number = %q, want V-042", n)
	}
}
