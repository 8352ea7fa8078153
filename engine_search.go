package goLedger

import (
	"context"
	"net/url"
	"strings"
)

// Search describes the search operation and its observable behavior.
//
// Search queries vouchers, payments, receipts, and accounts by number, name, or
// narration. An empty term returns an empty result set without a network call.
func (e *Engine) Search(ctx context.Context, q SearchQuery) ([]SearchResult, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	term := strings.TrimSpace(q.Term)
	if term == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", term)
	if q.Kind != "" {
		params.Set("kind", q.Kind)
	}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}

	var out []SearchResult
	if err := e.getJSON(ctx, "/api/Search", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}
