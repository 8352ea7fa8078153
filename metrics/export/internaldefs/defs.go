package internaldefs

import (
	goledger "github.com/MrEthical07/goLedger"
)

// CounterDef defines a public type used by goLedger APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goledger.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goLedger APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goledger.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the client engine.
var CounterDefs = []CounterDef{
	{ID: goledger.MetricLoginSuccess, Name: "goledger_login_success_total", Help: "Successful login attempts."},
	{ID: goledger.MetricLoginFailure, Name: "goledger_login_failure_total", Help: "Failed login attempts."},
	{ID: goledger.MetricRegisterSuccess, Name: "goledger_register_success_total", Help: "Successful account registrations."},
	{ID: goledger.MetricRegisterFailure, Name: "goledger_register_failure_total", Help: "Failed account registrations."},
	{ID: goledger.MetricLogout, Name: "goledger_logout_total", Help: "Logout operations."},
	{ID: goledger.MetricValidateSuccess, Name: "goledger_validate_success_total", Help: "Successful session validations."},
	{ID: goledger.MetricValidateFailure, Name: "goledger_validate_failure_total", Help: "Failed session validations."},
	{ID: goledger.MetricSessionCleared, Name: "goledger_session_cleared_total", Help: "Sessions cleared after authentication failures."},
	{ID: goledger.MetricRequestIssued, Name: "goledger_request_issued_total", Help: "Requests handed to the pipeline."},
	{ID: goledger.MetricUnauthorizedResponse, Name: "goledger_unauthorized_response_total", Help: "Requests resolved as unauthorized."},
	{ID: goledger.MetricTransportError, Name: "goledger_transport_error_total", Help: "Network-layer request failures."},
	{ID: goledger.MetricVoucherCreated, Name: "goledger_voucher_created_total", Help: "Vouchers accepted by the backend."},
	{ID: goledger.MetricVoucherRejected, Name: "goledger_voucher_rejected_total", Help: "Voucher drafts rejected by local double-entry validation."},
	{ID: goledger.MetricDuplicateSubmission, Name: "goledger_duplicate_submission_total", Help: "Mutations rejected because an identical one was in flight."},
	{ID: goledger.MetricPDFDownloaded, Name: "goledger_pdf_downloaded_total", Help: "Receipt and report PDF downloads."},
	{ID: goledger.MetricDashboardRefresh, Name: "goledger_dashboard_refresh_total", Help: "Successful dashboard refreshes."},
}

// HistogramDefs is an exported constant or variable used by the client engine.
var HistogramDefs = []HistogramDef{
	{ID: goledger.MetricRequestLatency, Name: "goledger_request_latency_seconds", Help: "Request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the client engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the client engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
