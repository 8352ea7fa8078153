package goLedger

import (
	"context"
	"fmt"
	"net/url"
)

// AccountInput carries the writable fields of an account.
type AccountInput struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	GLCode   string `json:"glCode"`
	IsActive bool   `json:"isActive"`
}

// Accounts describes the accounts operation and its observable behavior.
//
// Accounts returns the chart of accounts.
func (e *Engine) Accounts(ctx context.Context) ([]Account, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out []Account
	if err := e.getJSON(ctx, "/api/ChartOfAccounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Account describes the account operation and its observable behavior.
//
// Account returns one account by id.
func (e *Engine) Account(ctx context.Context, id int) (*Account, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out Account
	if err := e.getJSON(ctx, fmt.Sprintf("/api/ChartOfAccounts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAccount describes the create account operation and its observable behavior.
//
// CreateAccount rejects an overlapping duplicate submission with
// [ErrRequestInFlight] before any network call.
func (e *Engine) CreateAccount(ctx context.Context, in AccountInput) (*Account, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	release, err := e.guard.Acquire("account:create:" + in.Code)
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	var out Account
	if err := e.postJSON(ctx, "/api/ChartOfAccounts", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAccount describes the update account operation and its observable behavior.
func (e *Engine) UpdateAccount(ctx context.Context, id int, in AccountInput) (*Account, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	release, err := e.guard.Acquire(fmt.Sprintf("account:update:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	var out Account
	if err := e.putJSON(ctx, fmt.Sprintf("/api/ChartOfAccounts/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount describes the delete account operation and its observable behavior.
func (e *Engine) DeleteAccount(ctx context.Context, id int) error {
	if e == nil {
		return ErrEngineNotReady
	}
	release, err := e.guard.Acquire(fmt.Sprintf("account:delete:%d", id))
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return err
	}
	defer release()

	return e.deleteJSON(ctx, fmt.Sprintf("/api/ChartOfAccounts/%d", id))
}

// GLMappings describes the gl mappings operation and its observable behavior.
//
// GLMappings returns the account-type to general-ledger code mapping used to derive
// GL codes for new accounts.
func (e *Engine) GLMappings(ctx context.Context) ([]GLMapping, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	var out []GLMapping
	if err := e.getJSON(ctx, "/api/GLMappings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveGLMapping describes the save gl mapping operation and its observable behavior.
//
// SaveGLMapping creates or replaces the GL code mapping for one account type.
func (e *Engine) SaveGLMapping(ctx context.Context, in GLMapping) (*GLMapping, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	if in.AccountType == "" || in.GLCode == "" {
		return nil, fmt.Errorf("%w: account type and gl code are required", ErrInvalidInput)
	}
	release, err := e.guard.Acquire("glmapping:save:" + in.AccountType)
	if err != nil {
		e.metricInc(MetricDuplicateSubmission)
		return nil, err
	}
	defer release()

	var out GLMapping
	if err := e.postJSON(ctx, "/api/GLMappings", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActiveAccounts returns accounts filtered to those usable on new postings.
func (e *Engine) ActiveAccounts(ctx context.Context) ([]Account, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	q := url.Values{}
	q.Set("active", "true")
	var out []Account
	if err := e.getJSON(ctx, "/api/ChartOfAccounts", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
