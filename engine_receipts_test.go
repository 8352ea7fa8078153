package goLedger

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestReceiptPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7 receipt body")

	mux := http.NewServeMux()
	mux.HandleFunc("/api/Receipts/9/pdf", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	data, err := eng.ReceiptPDF(context.Background(), 9)
	if err != nil {
		t.Fatalf("ReceiptPDF failed: %v", err)
	}
	if !bytes.Equal(data, pdf) {
		t.Fatalf("PDF bytes altered in transit")
	}
	if got := eng.MetricsSnapshot().Counters[MetricPDFDownloaded]; got != 1 {
		t.Fatalf("MetricPDFDownloaded = %d, want 1", got)
	}
}

func TestReceiptPDFUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Receipts/9/pdf", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "revoked")

	_, err := eng.ReceiptPDF(context.Background(), 9)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, ErrSessionAbsent) {
		t.Fatalf("expected cleared session, got %v", err)
	}
}

func TestCreateReceipt(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Receipts", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"id":5,"receiptNumber":"R-005","payerName":"Acme Co","amount":1200}`)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	rec, err := eng.CreateReceipt(context.Background(), ReceiptInput{
		Date:      "2026-08-20",
		PayerName: "Acme Co",
		AccountID: 2,
		Amount:    1200,
		Method:    "bank",
	})
	if err != nil {
		t.Fatalf("CreateReceipt failed: %v", err)
	}
	if rec.ReceiptNumber != "R-005" {
		t.Fatalf("receipt number = %q, want R-005", rec.ReceiptNumber)
	}
}

func TestCreateReceiptRejectsInvalidInput(t *testing.T) {
	eng, store := newTestEngine(t, http.NewServeMux())
	seedSession(t, store, "abc123")

	_, err := eng.CreateReceipt(context.Background(), ReceiptInput{AccountID: 2, Amount: -5})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
