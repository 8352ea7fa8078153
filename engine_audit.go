package goLedger

import (
	"context"
	"errors"
)

const (
	auditEventLoginSuccess     = "login_success"
	auditEventLoginFailure     = "login_failure"
	auditEventRegisterSuccess  = "register_success"
	auditEventRegisterFailure  = "register_failure"
	auditEventLogout           = "logout"
	auditEventValidateSuccess  = "validate_success"
	auditEventValidateFailure  = "validate_failure"
	auditEventSessionCleared   = "session_cleared"
	auditEventVoucherCreated   = "voucher_created"
	auditEventVoucherRejected  = "voucher_rejected"
	auditEventVoucherDeleted   = "voucher_deleted"
	auditEventPaymentCreated   = "payment_created"
	auditEventReceiptCreated   = "receipt_created"
	auditEventPDFDownloaded    = "pdf_downloaded"
	auditEventDashboardRefresh = "dashboard_refresh"
)

// AuditErrorCode defines a public type used by goLedger APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrUnauthorized       AuditErrorCode = "unauthorized"
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrRegistration       AuditErrorCode = "registration_rejected"
	auditErrSessionAbsent      AuditErrorCode = "session_absent"
	auditErrSessionCorrupt     AuditErrorCode = "session_corrupt"
	auditErrMalformedResponse  AuditErrorCode = "malformed_response"
	auditErrVoucherUnbalanced  AuditErrorCode = "voucher_unbalanced"
	auditErrVoucherIncomplete  AuditErrorCode = "voucher_incomplete"
	auditErrDuplicateSubmit    AuditErrorCode = "duplicate_submission"
	auditErrTransport          AuditErrorCode = "transport_failure"
	auditErrBackendRejected    AuditErrorCode = "backend_rejected"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	username string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	// The dispatcher stamps the timestamp at acceptance.
	event := AuditEvent{
		EventType: eventType,
		Username:  username,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	var (
		apiErr       *APIError
		transportErr *TransportError
	)
	switch {
	case errors.Is(err, ErrUnauthorized):
		return auditErrUnauthorized
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrRegistrationRejected):
		return auditErrRegistration
	case errors.Is(err, ErrSessionAbsent):
		return auditErrSessionAbsent
	case errors.Is(err, ErrSessionCorrupt):
		return auditErrSessionCorrupt
	case errors.Is(err, ErrMalformedResponse):
		return auditErrMalformedResponse
	case errors.Is(err, ErrVoucherUnbalanced):
		return auditErrVoucherUnbalanced
	case errors.Is(err, ErrVoucherMissingDebit),
		errors.Is(err, ErrVoucherMissingCredit),
		errors.Is(err, ErrVoucherLineInvalid):
		return auditErrVoucherIncomplete
	case errors.Is(err, ErrRequestInFlight):
		return auditErrDuplicateSubmit
	case errors.As(err, &transportErr):
		return auditErrTransport
	case errors.As(err, &apiErr):
		return auditErrBackendRejected
	default:
		return auditErrInternal
	}
}
