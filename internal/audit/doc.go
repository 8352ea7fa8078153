// Package audit implements asynchronous audit event dispatching for the client
// engine. Events describe observable client actions (login, logout, session
// cleared, voucher rejected) and are forwarded to a pluggable sink without
// blocking the calling operation.
package audit
