package goLedger

import (
	"context"
	"fmt"
)

// PaymentInput carries the writable fields of a payment.
type PaymentInput struct {
	Date      string  `json:"date"`
	PayeeName string  `json:"payeeName"`
	AccountID int     `json:"accountId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference"`
	Narration string  `json:"narration"`
}

func (in PaymentInput) validate() error {
	if in.AccountID <= 0 {
		return fmt.Errorf("%w: payment has no account", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	return nil
}

// Payments describes the payments operation and its observable behavior.
//
// Payments returns all recorded payments.
func (e *Engine) Payments(ctx context.Context) ([]Payment, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out []Payment
	if err := e.getJSON(ctx, "/api/Payments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Payment describes the payment operation and its observable behavior.
func (e *Engine) Payment(ctx context.Context, id int) (*Payment, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out Payment
	if err := e.getJSON(ctx, fmt.Sprintf("/api/Payments/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewPaymentNumber asks the backend for the next sequential payment number.
func (e *Engine) NewPaymentNumber(ctx context.Context) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	var out struct {
		PaymentNumber string `json:"paymentNumber"`
	}
	if err := e.getJSON(ctx, "/api/Payments/GetNewPaymentNumber", nil, &out); err != nil {
		return "", err
	}
	return out.PaymentNumber, nil
}

// CreatePayment describes the create payment operation and its observable behavior.
//
// CreatePayment validates the input locally before any network call.
func (e *Engine) CreatePayment(ctx context.Context, in PaymentInput) (*Payment, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	release, err := e.guard.Acquire(fmt.Sprintf("payment:create:%d:%s", in.AccountID, in.Reference))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	var out Payment
	if err := e.postJSON(ctx, "/api/Payments", in, &out); err != nil {
		return nil, err
	}
	e.emitAudit(ctx, auditEventPaymentCreated, true, "", nil, func() map[string]string {
		return map[string]string{"payment_number": out.PaymentNumber}
	})
	return &out, nil
}

// UpdatePayment describes the update payment operation and its observable behavior.
func (e *Engine) UpdatePayment(ctx context.Context, id int, in PaymentInput) (*Payment, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	release, err := e.guard.Acquire(fmt.Sprintf("payment:update:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	var out Payment
	if err := e.putJSON(ctx, fmt.Sprintf("/api/Payments/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeletePayment describes the delete payment operation and its observable behavior.
func (e *Engine) DeletePayment(ctx context.Context, id int) error {
	if e == nil {
		return ErrEngineNotReady
	}

	release, err := e.guard.Acquire(fmt.Sprintf("payment:delete:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return err
	}
	defer release()

	return e.deleteJSON(ctx, fmt.Sprintf("/api/Payments/%d", id))
}
