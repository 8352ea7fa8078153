// Package goLedger provides the client engine for a small-business accounting
// backend: session storage, a fail-closed session gate, an authenticated request
// pipeline, and typed operation sets for every screen of the application (chart of
// accounts, vouchers, payments, receipts, reports, dashboard, search).
//
// The package is designed for concurrent callers: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goLedger is the public surface. It exposes [Engine], [Builder], [Config], and value
// types (VoucherDraft, Navigation, MetricsSnapshot, etc.). Session persistence lives
// in session/, the request pipeline in transport/, and duplicate-submission guarding
// under internal/.
//
// # What this package must NOT do
//
//   - Interpret the session token. It is opaque end to end; the backend alone decides
//     validity.
//   - Retry failed requests. Every recoverable failure requires a caller-initiated
//     re-attempt.
//   - Navigate. Route decisions are returned as [Navigation] values for the embedding
//     application to act on.
//
// # Failure contract
//
// Authentication failure always resolves to a cleared session and an unauthorized
// result, never an inline business error. Business rejections surface as [*APIError]
// with the session untouched; network failures as [*TransportError], also with the
// session untouched. Validation of a stored session is fail-closed: any non-success
// outcome, including a transport blip, clears the session.
package goLedger
