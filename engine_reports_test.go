package goLedger

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestReportForwardsFilter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Reports/TrialBalance", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("from") != "2026-01-01" || q.Get("to") != "2026-06-30" {
			t.Errorf("filter not forwarded: %v", q)
		}
		writeJSON(w, `{
			"lines":[{"accountCode":"1000","accountName":"Cash","debit":500,"credit":0,"balance":500}],
			"totals":{"totalDebit":500,"totalCredit":500,"netBalance":0}
		}`)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	rep, err := eng.Report(context.Background(), ReportTrialBalance, ReportFilter{
		From: "2026-01-01",
		To:   "2026-06-30",
	})
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if rep.Type != ReportTrialBalance {
		t.Fatalf("report type = %q, want TrialBalance", rep.Type)
	}
	if len(rep.Lines) != 1 || rep.Lines[0].AccountCode != "1000" {
		t.Fatalf("unexpected lines: %+v", rep.Lines)
	}
	if rep.Totals.TotalDebit != 500 {
		t.Fatalf("totals not decoded: %+v", rep.Totals)
	}
}

func TestReportRejectsUnknownType(t *testing.T) {
	eng, store := newTestEngine(t, http.NewServeMux())
	seedSession(t, store, "abc123")

	_, err := eng.Report(context.Background(), ReportType("CashFlow"), ReportFilter{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAccountLedgerFilterCarriesAccount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Reports/AccountLedger", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("accountId") != "12" {
			t.Errorf("accountId not forwarded: %v", r.URL.Query())
		}
		writeJSON(w, `{"lines":[],"totals":{}}`)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	if _, err := eng.Report(context.Background(), ReportAccountLedger, ReportFilter{AccountID: 12}); err != nil {
		t.Fatalf("Report failed: %v", err)
	}
}

func TestExportReportPDF(t *testing.T) {
	pdf := []byte("%PDF-1.7 trial balance")

	mux := http.NewServeMux()
	mux.HandleFunc("/api/Reports/ExportPDF/TrialBalance", requireBearer(t, "abc123", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	}))

	eng, store := newTestEngine(t, mux)
	seedSession(t, store, "abc123")

	data, err := eng.ExportReportPDF(context.Background(), ReportTrialBalance, ReportFilter{})
	if err != nil {
		t.Fatalf("ExportReportPDF failed: %v", err)
	}
	if !bytes.Equal(data, pdf) {
		t.Fatal("PDF bytes altered in transit")
	}
}
