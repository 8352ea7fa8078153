// Package session provides client-held session persistence and versioned JSON session
// encoding for the goLedger engine.
//
// # Encoding
//
// Sessions are stored as a small versioned JSON envelope (schema versions v1–v2) with
// forward migration on read. v1 carried the user profile as a nested serialized JSON
// string (the shape the browser front end kept in local storage); v2 embeds it as a
// proper object. The encoder is append-only: new versions add fields but never
// reinterpret old ones.
//
// # Backends
//
// Three [Store] backends are provided: [FileStore] (one file on disk, the default for
// interactive use), [RedisStore] (shared store for fleets and CI runners), and
// [MemStore] (in-process, for tests and embedders). All three hold exactly one session
// and report corrupt data by wiping it and returning [ErrCorrupt] — a stored session is
// fully present or absent, never partial.
//
// # Architecture boundaries
//
// This package owns the [Session] model, the codec, and the stores. It does NOT talk to
// the accounting backend, interpret tokens, or decide navigation — those
// responsibilities belong to the Engine and the transport pipeline.
//
// # What this package must NOT do
//
//   - Import goLedger or transport (no upward imports).
//   - Issue network calls to the accounting API.
//   - Inspect the token contents: the token is opaque end to end.
package session
