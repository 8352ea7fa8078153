package goLedger

import (
	"context"
	"fmt"
)

type voucherCreateRequest struct {
	VoucherNumber string        `json:"voucherNumber"`
	Date          string        `json:"date"`
	Narration     string        `json:"narration"`
	TotalAmount   float64       `json:"totalAmount"`
	Lines         []VoucherLine `json:"lines"`
}

// Vouchers describes the vouchers operation and its observable behavior.
//
// Vouchers returns all journal vouchers.
func (e *Engine) Vouchers(ctx context.Context) ([]Voucher, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out []Voucher
	if err := e.getJSON(ctx, "/api/Vouchers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Voucher describes the voucher operation and its observable behavior.
//
// Voucher returns one voucher by id, including its lines.
func (e *Engine) Voucher(ctx context.Context, id int) (*Voucher, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out Voucher
	if err := e.getJSON(ctx, fmt.Sprintf("/api/Vouchers/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingVouchers returns vouchers awaiting approval.
func (e *Engine) PendingVouchers(ctx context.Context) ([]Voucher, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out []Voucher
	if err := e.getJSON(ctx, "/api/Vouchers/Pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewVoucherNumber asks the backend for the next sequential voucher number.
func (e *Engine) NewVoucherNumber(ctx context.Context) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	var out struct {
		VoucherNumber string `json:"voucherNumber"`
	}
	if err := e.getJSON(ctx, "/api/Vouchers/GetNewVoucherNumber", nil, &out); err != nil {
		return "", err
	}
	return out.VoucherNumber, nil
}

// CreateVoucher describes the create voucher operation and its observable behavior.
//
// CreateVoucher validates the draft's double-entry rules locally before any network
// call; an unbalanced or incomplete draft never reaches the backend. An overlapping
// submission with the same voucher number is rejected with [ErrRequestInFlight].
func (e *Engine) CreateVoucher(ctx context.Context, voucherNumber string, draft *VoucherDraft) (*Voucher, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	if err := draft.Validate(e.config.Voucher.BalanceTolerance); err != nil {
		e.metricInc(MetricVoucherRejected)
		e.emitAudit(ctx, auditEventVoucherRejected, false, "", err, func() map[string]string {
			return map[string]string{"voucher_number": voucherNumber}
		})
		return nil, err
	}

	release, err := e.guard.Acquire("voucher:create:" + voucherNumber)
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	debit, _ := draft.Totals()
	req := voucherCreateRequest{
		VoucherNumber: voucherNumber,
		Date:          draft.Date,
		Narration:     draft.Narration,
		TotalAmount:   debit,
		Lines:         draft.Lines(),
	}

	var out Voucher
	if err := e.postJSON(ctx, "/api/Vouchers", req, &out); err != nil {
		return nil, err
	}

	e.metricInc(MetricVoucherCreated)
	e.emitAudit(ctx, auditEventVoucherCreated, true, "", nil, func() map[string]string {
		return map[string]string{"voucher_number": voucherNumber}
	})
	return &out, nil
}

// UpdateVoucher describes the update voucher operation and its observable behavior.
//
// UpdateVoucher re-validates the draft under the same rules as creation.
func (e *Engine) UpdateVoucher(ctx context.Context, id int, draft *VoucherDraft) (*Voucher, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	if err := draft.Validate(e.config.Voucher.BalanceTolerance); err != nil {
		e.metricInc(MetricVoucherRejected)
		e.emitAudit(ctx, auditEventVoucherRejected, false, "", err, nil)
		return nil, err
	}

	release, err := e.guard.Acquire(fmt.Sprintf("voucher:update:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	debit, _ := draft.Totals()
	req := voucherCreateRequest{
		Date:        draft.Date,
		Narration:   draft.Narration,
		TotalAmount: debit,
		Lines:       draft.Lines(),
	}

	var out Voucher
	if err := e.putJSON(ctx, fmt.Sprintf("/api/Vouchers/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteVoucher describes the delete voucher operation and its observable behavior.
func (e *Engine) DeleteVoucher(ctx context.Context, id int) error {
	if e == nil {
		return ErrEngineNotReady
	}

	release, err := e.guard.Acquire(fmt.Sprintf("voucher:delete:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return err
	}
	defer release()

	if err := e.deleteJSON(ctx, fmt.Sprintf("/api/Vouchers/%d", id)); err != nil {
		return err
	}
	e.emitAudit(ctx, auditEventVoucherDeleted, true, "", nil, func() map[string]string {
		return map[string]string{"voucher_id": fmt.Sprintf("%d", id)}
	})
	return nil
}
