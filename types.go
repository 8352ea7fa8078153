package goLedger

import (
	"github.com/MrEthical07/goLedger/session"
)

// UserProfile is re-exported for callers that only import goLedger.
type UserProfile = session.UserProfile

// Session is re-exported for callers that only import goLedger.
type Session = session.Session

/*
====================================
AUTH PAYLOADS
====================================
*/

// RegisterRequest defines a public type used by goLedger APIs.
//
// RegisterRequest instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the backend's auth envelope for login and register.
type authResponse struct {
	Success   bool                 `json:"success"`
	SessionID string               `json:"sessionId"`
	Message   string               `json:"message"`
	User      *session.UserProfile `json:"user"`
}

/*
====================================
LEDGER ENTITIES
====================================
*/

// Account defines a public type used by goLedger APIs.
//
// Account instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Account struct {
	ID       int     `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	GLCode   string  `json:"glCode"`
	Balance  float64 `json:"balance"`
	IsActive bool    `json:"isActive"`
}

// GLMapping associates an account type with its general-ledger code range.
type GLMapping struct {
	ID          int    `json:"id"`
	AccountType string `json:"accountType"`
	GLCode      string `json:"glCode"`
	Description string `json:"description"`
}

// VoucherLine is one side of a double-entry posting. Exactly one of Debit or
// Credit is expected to be non-zero.
type VoucherLine struct {
	AccountID int     `json:"accountId"`
	Narration string  `json:"narration"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
}

// Voucher defines a public type used by goLedger APIs.
//
// Voucher instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Voucher struct {
	ID            int           `json:"id"`
	VoucherNumber string        `json:"voucherNumber"`
	Date          string        `json:"date"`
	Narration     string        `json:"narration"`
	TotalAmount   float64       `json:"totalAmount"`
	Status        string        `json:"status"`
	Lines         []VoucherLine `json:"lines"`
}

// Payment defines a public type used by goLedger APIs.
//
// Payment instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Payment struct {
	ID            int     `json:"id"`
	PaymentNumber string  `json:"paymentNumber"`
	Date          string  `json:"date"`
	PayeeName     string  `json:"payeeName"`
	AccountID     int     `json:"accountId"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Reference     string  `json:"reference"`
	Narration     string  `json:"narration"`
}

// Receipt defines a public type used by goLedger APIs.
//
// Receipt instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Receipt struct {
	ID            int     `json:"id"`
	ReceiptNumber string  `json:"receiptNumber"`
	Date          string  `json:"date"`
	PayerName     string  `json:"payerName"`
	AccountID     int     `json:"accountId"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Reference     string  `json:"reference"`
	Narration     string  `json:"narration"`
}

/*
====================================
REPORTS
====================================
*/

// ReportLine defines a public type used by goLedger APIs.
//
// ReportLine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ReportLine struct {
	AccountCode string  `json:"accountCode"`
	AccountName string  `json:"accountName"`
	Date        string  `json:"date"`
	Narration   string  `json:"narration"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Balance     float64 `json:"balance"`
}

// ReportTotals defines a public type used by goLedger APIs.
//
// ReportTotals instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ReportTotals struct {
	TotalDebit  float64 `json:"totalDebit"`
	TotalCredit float64 `json:"totalCredit"`
	NetBalance  float64 `json:"netBalance"`
}

// Report defines a public type used by goLedger APIs.
//
// Report instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Report struct {
	Type   ReportType   `json:"type"`
	From   string       `json:"from"`
	To     string       `json:"to"`
	Lines  []ReportLine `json:"lines"`
	Totals ReportTotals `json:"totals"`
}

/*
====================================
SEARCH
====================================
*/

// SearchQuery defines a public type used by goLedger APIs.
//
// SearchQuery instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SearchQuery struct {
	// Term matches against numbers, names, and narrations.
	Term string
	// Kind narrows results: "voucher", "payment", "receipt", "account", or empty
	// for all.
	Kind string
	From string
	To   string
}

// SearchResult defines a public type used by goLedger APIs.
//
// SearchResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SearchResult struct {
	Kind      string  `json:"kind"`
	ID        int     `json:"id"`
	Number    string  `json:"number"`
	Date      string  `json:"date"`
	Title     string  `json:"title"`
	Narration string  `json:"narration"`
	Amount    float64 `json:"amount"`
}

/*
====================================
DASHBOARD
====================================
*/

// DashboardSummary aggregates the figures shown on the landing screen. It is
// assembled client-side from the pending-voucher and profit-loss endpoints.
type DashboardSummary struct {
	PendingVouchers int       `json:"pendingVouchers"`
	TotalIncome     float64   `json:"totalIncome"`
	TotalExpense    float64   `json:"totalExpense"`
	NetProfit       float64   `json:"netProfit"`
	RecentVouchers  []Voucher `json:"recentVouchers"`
	// RefreshedAt is a unix timestamp of the last successful refresh.
	RefreshedAt int64 `json:"refreshedAt"`
}
