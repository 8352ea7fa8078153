package goLedger

import (
	"context"
	"fmt"
)

// ReceiptInput carries the writable fields of a receipt.
type ReceiptInput struct {
	Date      string  `json:"date"`
	PayerName string  `json:"payerName"`
	AccountID int     `json:"accountId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference"`
	Narration string  `json:"narration"`
}

func (in ReceiptInput) validate() error {
	if in.AccountID <= 0 {
		return fmt.Errorf("%w: receipt has no account", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return fmt.Errorf("%w: receipt amount must be positive", ErrInvalidInput)
	}
	return nil
}

// Receipts describes the receipts operation and its observable behavior.
//
// Receipts returns all recorded receipts.
func (e *Engine) Receipts(ctx context.Context) ([]Receipt, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out []Receipt
	if err := e.getJSON(ctx, "/api/Receipts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Receipt describes the receipt operation and its observable behavior.
func (e *Engine) Receipt(ctx context.Context, id int) (*Receipt, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out Receipt
	if err := e.getJSON(ctx, fmt.Sprintf("/api/Receipts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewReceiptNumber asks the backend for the next sequential receipt number.
func (e *Engine) NewReceiptNumber(ctx context.Context) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	var out struct {
		ReceiptNumber string `json:"receiptNumber"`
	}
	if err := e.getJSON(ctx, "/api/Receipts/GetNewReceiptNumber", nil, &out); err != nil {
		return "", err
	}
	return out.ReceiptNumber, nil
}

// CreateReceipt describes the create receipt operation and its observable behavior.
//
// CreateReceipt validates the input locally before any network call.
func (e *Engine) CreateReceipt(ctx context.Context, in ReceiptInput) (*Receipt, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	release, err := e.guard.Acquire(fmt.Sprintf("receipt:create:%d:%s", in.AccountID, in.Reference))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	var out Receipt
	if err := e.postJSON(ctx, "/api/Receipts", in, &out); err != nil {
		return nil, err
	}
	e.emitAudit(ctx, auditEventReceiptCreated, true, "", nil, func() map[string]string {
		return map[string]string{"receipt_number": out.ReceiptNumber}
	})
	return &out, nil
}

// UpdateReceipt describes the update receipt operation and its observable behavior.
func (e *Engine) UpdateReceipt(ctx context.Context, id int, in ReceiptInput) (*Receipt, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	release, err := e.guard.Acquire(fmt.Sprintf("receipt:update:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	var out Receipt
	if err := e.putJSON(ctx, fmt.Sprintf("/api/Receipts/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteReceipt describes the delete receipt operation and its observable behavior.
func (e *Engine) DeleteReceipt(ctx context.Context, id int) error {
	if e == nil {
		return ErrEngineNotReady
	}

	release, err := e.guard.Acquire(fmt.Sprintf("receipt:delete:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return err
	}
	defer release()

	return e.deleteJSON(ctx, fmt.Sprintf("/api/Receipts/%d", id))
}

// ReceiptPDF describes the receipt PDF operation and its observable behavior.
//
// ReceiptPDF downloads the printable PDF for one receipt. The bytes are returned
// untouched for the caller to persist or stream.
func (e *Engine) ReceiptPDF(ctx context.Context, id int) ([]byte, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	data, err := e.getBlob(ctx, fmt.Sprintf("/api/Receipts/%d/pdf", id), nil)
	if err != nil {
		return nil, err
	}
	e.metricInc(MetricPDFDownloaded)
	e.emitAudit(ctx, auditEventPDFDownloaded, true, "", nil, func() map[string]string {
		return map[string]string{"receipt_id": fmt.Sprintf("%d", id)}
	})
	return data, nil
}
