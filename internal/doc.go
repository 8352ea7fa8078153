// Package internal contains helper packages that are intentionally private to goLedger.
//
// # Sub-packages
//
//   - audit — async event dispatch (Dispatcher + Sink implementations)
//   - inflight — keyed duplicate-submission guards for mutating operations
//
// # What this package must NOT do
//
//   - Export types that appear in the public goLedger API.
//   - Be imported by any package outside the goLedger module.
package internal
