package goLedger

import (
	"errors"
	"fmt"

	"github.com/MrEthical07/goLedger/internal/inflight"
	"github.com/MrEthical07/goLedger/session"
	"github.com/MrEthical07/goLedger/transport"
)

var (
	// ErrUnauthorized is an exported constant or variable used by the client engine.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is an exported constant or variable used by the client engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRegistrationRejected is an exported constant or variable used by the client engine.
	ErrRegistrationRejected = errors.New("registration rejected")
	// ErrSessionAbsent is an exported constant or variable used by the client engine.
	ErrSessionAbsent = session.ErrAbsent
	// ErrSessionCorrupt is an exported constant or variable used by the client engine.
	ErrSessionCorrupt = session.ErrCorrupt
	// ErrMalformedResponse is an exported constant or variable used by the client engine.
	ErrMalformedResponse = transport.ErrMalformedResponse
	// ErrRequestInFlight is an exported constant or variable used by the client engine.
	ErrRequestInFlight = inflight.ErrInFlight
	// ErrVoucherUnbalanced is an exported constant or variable used by the client engine.
	ErrVoucherUnbalanced = errors.New("voucher debits and credits do not balance")
	// ErrVoucherMissingDebit is an exported constant or variable used by the client engine.
	ErrVoucherMissingDebit = errors.New("voucher has no debit lines")
	// ErrVoucherMissingCredit is an exported constant or variable used by the client engine.
	ErrVoucherMissingCredit = errors.New("voucher has no credit lines")
	// ErrVoucherLineInvalid is an exported constant or variable used by the client engine.
	ErrVoucherLineInvalid = errors.New("voucher line invalid")
	// ErrInvalidInput is an exported constant or variable used by the client engine.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEngineNotReady is an exported constant or variable used by the client engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// TransportError is re-exported for callers that only import goLedger.
type TransportError = transport.TransportError

// APIError carries a business-level rejection: a well-formed authenticated request
// the backend answered with a non-2xx status other than 401. The session is untouched.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}
