// Package transport implements the authenticated request pipeline between the
// goLedger engine and the accounting REST backend.
//
// # Responsibilities
//
// The [Pipeline] attaches the bearer token (and the redundant SessionId cookie) to
// every authenticated request, applies the content-type rule (JSON unless the body is
// multipart form data), and normalizes the authentication outcome: a 401 clears the
// stored session exactly once and surfaces [OutcomeUnauthorized]; every other status
// passes through untouched because business-level interpretation belongs to the
// caller.
//
// # Error taxonomy
//
// Authentication failure is an outcome, not an error. Network-layer failures return a
// typed [*TransportError] and never touch the session — a disconnected user is
// actionable by the caller, not a security event. Undecodable response bodies return
// [ErrMalformedResponse] from [DecodeJSON].
//
// # What this package must NOT do
//
//   - Retry requests. Every recoverable failure requires a caller-initiated
//     re-attempt.
//   - Decide navigation. Unauthorized is reported as a value; routing is the
//     engine's gate.
//   - Import goLedger (no upward imports).
package transport
