package goLedger

import (
	"context"
	"fmt"
	"net/url"
)

// ReportType names a backend report.
type ReportType string

const (
	// ReportGeneralLedger is an exported constant or variable used by the client engine.
	ReportGeneralLedger ReportType = "GeneralLedger"
	// ReportTrialBalance is an exported constant or variable used by the client engine.
	ReportTrialBalance ReportType = "TrialBalance"
	// ReportIncomeStatement is an exported constant or variable used by the client engine.
	ReportIncomeStatement ReportType = "IncomeStatement"
	// ReportProfitLoss is an exported constant or variable used by the client engine.
	ReportProfitLoss ReportType = "ProfitLoss"
	// ReportBalanceSheet is an exported constant or variable used by the client engine.
	ReportBalanceSheet ReportType = "BalanceSheet"
	// ReportAccountLedger is an exported constant or variable used by the client engine.
	ReportAccountLedger ReportType = "AccountLedger"
)

func (t ReportType) valid() bool {
	switch t {
	case ReportGeneralLedger, ReportTrialBalance, ReportIncomeStatement,
		ReportProfitLoss, ReportBalanceSheet, ReportAccountLedger:
		return true
	default:
		return false
	}
}

// ReportFilter narrows a report to a date range and, for account ledgers, one
// account.
type ReportFilter struct {
	From      string
	To        string
	AccountID int
}

func (f ReportFilter) query() url.Values {
	q := url.Values{}
	if f.From != "" {
		q.Set("from", f.From)
	}
	if f.To != "" {
		q.Set("to", f.To)
	}
	if f.AccountID > 0 {
		q.Set("accountId", fmt.Sprintf("%d", f.AccountID))
	}
	return q
}

// Report describes the report operation and its observable behavior.
//
// Report fetches one report with its lines and totals. An unknown report type is
// rejected locally.
func (e *Engine) Report(ctx context.Context, t ReportType, filter ReportFilter) (*Report, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if !t.valid() {
		return nil, fmt.Errorf("%w: unknown report type %q", ErrInvalidInput, t)
	}

	var out Report
	if err := e.getJSON(ctx, "/api/Reports/"+string(t), filter.query(), &out); err != nil {
		return nil, err
	}
	out.Type = t
	return &out, nil
}

// ExportReportPDF describes the export report PDF operation and its observable behavior.
//
// ExportReportPDF downloads the PDF rendering of a report.
func (e *Engine) ExportReportPDF(ctx context.Context, t ReportType, filter ReportFilter) ([]byte, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if !t.valid() {
		return nil, fmt.Errorf("%w: unknown report type %q", ErrInvalidInput, t)
	}

	data, err := e.getBlob(ctx, "/api/Reports/ExportPDF/"+string(t), filter.query())
	if err != nil {
		return nil, err
	}
	e.metricInc(MetricPDFDownloaded)
	e.emitAudit(ctx, auditEventPDFDownloaded, true, "", nil, func() map[string]string {
		return map[string]string{"report_type": string(t)}
	})
	return data, nil
}
