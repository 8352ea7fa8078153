package goLedger

import (
	"fmt"
	"math"
)

// VoucherDraft accumulates journal lines before submission. A draft is not safe for
// concurrent use; build it on one goroutine and hand it to [Engine.CreateVoucher].
type VoucherDraft struct {
	Date      string
	Narration string
	lines     []VoucherLine
}

// NewVoucherDraft describes the new voucher draft operation and its observable behavior.
func NewVoucherDraft(date, narration string) *VoucherDraft {
	return &VoucherDraft{
		Date:      date,
		Narration: narration,
	}
}

// AddDebit appends a debit line.
func (d *VoucherDraft) AddDebit(accountID int, amount float64, narration string) *VoucherDraft {
	d.lines = append(d.lines, VoucherLine{
		AccountID: accountID,
		Narration: narration,
		Debit:     amount,
	})
	return d
}

// AddCredit appends a credit line.
func (d *VoucherDraft) AddCredit(accountID int, amount float64, narration string) *VoucherDraft {
	d.lines = append(d.lines, VoucherLine{
		AccountID: accountID,
		Narration: narration,
		Credit:    amount,
	})
	return d
}

// SetLine replaces the line at index i. Out-of-range indexes are ignored.
func (d *VoucherDraft) SetLine(i int, line VoucherLine) {
	if i < 0 || i >= len(d.lines) {
		return
	}
	d.lines[i] = line
}

// RemoveLine deletes the line at index i. Out-of-range indexes are ignored.
func (d *VoucherDraft) RemoveLine(i int) {
	if i < 0 || i >= len(d.lines) {
		return
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
}

// Lines returns a copy of the accumulated lines.
func (d *VoucherDraft) Lines() []VoucherLine {
	out := make([]VoucherLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Totals returns the summed debit and credit sides.
func (d *VoucherDraft) Totals() (debit, credit float64) {
	for _, l := range d.lines {
		debit += l.Debit
		credit += l.Credit
	}
	return debit, credit
}

// Validate describes the validate operation and its observable behavior.
//
// Validate enforces the double-entry rules: at least one debit and one credit line,
// every line touching exactly one side with a positive amount and a real account,
// and total debits equal to total credits within tolerance. tolerance absorbs
// floating-point accumulation, not bookkeeping slack.
func (d *VoucherDraft) Validate(tolerance float64) error {
	var hasDebit, hasCredit bool

	for i, l := range d.lines {
		if l.AccountID <= 0 {
			return fmt.Errorf("%w: line %d has no account", ErrVoucherLineInvalid, i)
		}
		debitSet := l.Debit != 0
		creditSet := l.Credit != 0
		if debitSet == creditSet {
			return fmt.Errorf("%w: line %d must set exactly one of debit or credit", ErrVoucherLineInvalid, i)
		}
		if l.Debit < 0 || l.Credit < 0 {
			return fmt.Errorf("%w: line %d has a negative amount", ErrVoucherLineInvalid, i)
		}
		if debitSet {
			hasDebit = true
		} else {
			hasCredit = true
		}
	}

	if !hasDebit {
		return ErrVoucherMissingDebit
	}
	if !hasCredit {
		return ErrVoucherMissingCredit
	}

	debit, credit := d.Totals()
	if math.Abs(debit-credit) > tolerance {
		return fmt.Errorf("%w: debits %.2f, credits %.2f", ErrVoucherUnbalanced, debit, credit)
	}
	return nil
}
