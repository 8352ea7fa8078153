package goLedger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	internalaudit "github.com/MrEthical07/goLedger/internal/audit"
	"github.com/MrEthical07/goLedger/internal/inflight"
	"github.com/MrEthical07/goLedger/session"
	"github.com/MrEthical07/goLedger/transport"
)

// Engine is the runtime core of goLedger. It owns the session store, the request
// pipeline, metrics, and audit dispatching, and exposes one method set per screen of
// the accounting application.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	store    session.Store
	pipeline *transport.Pipeline
	metrics  *Metrics
	audit    *internalaudit.Dispatcher
	logger   zerolog.Logger
	guard    *inflight.Guard

	dashKick    chan struct{}
	done        chan struct{}
	refreshWG   sync.WaitGroup
	refresherOn atomic.Bool
	closeOnce   sync.Once
}

// Close describes the close operation and its observable behavior.
//
// Close stops the dashboard refresher and drains the audit dispatcher. It is
// idempotent.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.closeOnce.Do(func() {
		close(e.done)
		e.refreshWG.Wait()
		e.audit.Close()
	})
}

// AuditDropped describes the audit dropped operation and its observable behavior.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metrics snapshot operation and its observable behavior.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

/*
====================================
AUTH OPERATIONS
====================================
*/

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login describes the login operation and its observable behavior.
//
// Login authenticates against the backend and persists the resulting session. A
// backend rejection maps to [ErrInvalidCredentials]; only a fully stored session
// reports success.
func (e *Engine) Login(ctx context.Context, username, password string) (*UserProfile, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/login",
		Body:   loginRequest{Username: username, Password: password},
		Public: true,
	})
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, err, nil)
		return nil, err
	}

	var auth authResponse
	if decodeErr := transport.DecodeJSON(resp, &auth); decodeErr != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, decodeErr, nil)
		return nil, decodeErr
	}

	if resp.Status != http.StatusOK || !auth.Success || auth.SessionID == "" || auth.User == nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"status": fmt.Sprintf("%d", resp.Status)}
		})
		if auth.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, auth.Message)
		}
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	sess := &session.Session{
		Token:     auth.SessionID,
		User:      *auth.User,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(e.config.Session.Lifetime).Unix(),
	}
	if err := e.store.Save(ctx, sess); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, err, nil)
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, username, nil, nil)
	e.logger.Info().Str("username", username).Msg("login succeeded")

	profile := *auth.User
	return &profile, nil
}

// Register describes the register operation and its observable behavior.
//
// Register creates a new account. It does not log the user in; callers route to the
// login screen on success. A backend rejection maps to [ErrRegistrationRejected].
func (e *Engine) Register(ctx context.Context, req RegisterRequest) error {
	if e == nil {
		return ErrEngineNotReady
	}

	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Body:   req,
		Public: true,
	})
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, err, nil)
		return err
	}

	var auth authResponse
	if decodeErr := transport.DecodeJSON(resp, &auth); decodeErr != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, decodeErr, nil)
		return decodeErr
	}

	if resp.Status < 200 || resp.Status > 299 || !auth.Success {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, req.Username, ErrRegistrationRejected, nil)
		if auth.Message != "" {
			return fmt.Errorf("%w: %s", ErrRegistrationRejected, auth.Message)
		}
		return ErrRegistrationRejected
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, req.Username, nil, nil)
	return nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout notifies the backend on a best-effort basis and always clears the local
// session. A transport failure during notification does not keep the session alive.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	_, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   "/api/auth/logout",
	})
	if err != nil {
		e.logger.Warn().Err(err).Msg("logout notification failed, clearing locally")
	}

	if clearErr := e.store.Clear(ctx); clearErr != nil {
		return clearErr
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, "", nil, nil)
	return nil
}

// Validate describes the validate operation and its observable behavior.
//
// Validate asks the backend whether the stored session is still good and refreshes
// the stored profile from the response. It is fail-closed: any outcome other than a
// confirmed success, including a transport failure, clears the session and reports
// [ErrUnauthorized].
func (e *Engine) Validate(ctx context.Context) (*UserProfile, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   "/api/auth/validate",
	})
	if err != nil {
		// Fail closed: an unreachable backend is indistinguishable from a
		// revoked session for gating purposes.
		_ = e.store.Clear(ctx)
		e.metricInc(MetricValidateFailure)
		e.metricInc(MetricSessionCleared)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", err, nil)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if resp.Outcome == transport.OutcomeUnauthorized {
		e.metricInc(MetricValidateFailure)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", ErrUnauthorized, nil)
		return nil, ErrUnauthorized
	}
	if resp.Status < 200 || resp.Status > 299 {
		_ = e.store.Clear(ctx)
		e.metricInc(MetricValidateFailure)
		e.metricInc(MetricSessionCleared)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", ErrUnauthorized, nil)
		return nil, ErrUnauthorized
	}

	var payload struct {
		Success bool                 `json:"success"`
		User    *session.UserProfile `json:"user"`
	}
	if decodeErr := transport.DecodeJSON(resp, &payload); decodeErr != nil || !payload.Success || payload.User == nil {
		_ = e.store.Clear(ctx)
		e.metricInc(MetricValidateFailure)
		e.metricInc(MetricSessionCleared)
		e.emitAudit(ctx, auditEventValidateFailure, false, "", ErrMalformedResponse, nil)
		return nil, ErrUnauthorized
	}

	// Refresh the stored profile so later reads see backend-side edits.
	if sess, loadErr := e.store.Load(ctx); loadErr == nil {
		sess.User = *payload.User
		_ = e.store.Save(ctx, sess)
	}

	e.metricInc(MetricValidateSuccess)
	e.emitAudit(ctx, auditEventValidateSuccess, true, payload.User.Username, nil, nil)

	profile := *payload.User
	return &profile, nil
}

// IsAuthenticated reports whether the stored session is still accepted by the
// backend. An absent or expired session answers false locally with no network call.
// Otherwise the session is validated fail-closed, so a false answer may have cleared
// the session as a side effect.
func (e *Engine) IsAuthenticated(ctx context.Context) bool {
	if e == nil {
		return false
	}
	if !e.hasStoredSession(ctx) {
		return false
	}
	_, err := e.Validate(ctx)
	return err == nil
}

// hasStoredSession is the local half of the gate: a complete, unexpired session
// exists in the store.
func (e *Engine) hasStoredSession(ctx context.Context) bool {
	sess, err := e.store.Load(ctx)
	if err != nil {
		return false
	}
	return !sess.Expired(time.Now())
}

// Session returns the stored session, or [ErrSessionAbsent] when none exists.
func (e *Engine) Session(ctx context.Context) (*Session, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}
	return e.store.Load(ctx)
}

/*
====================================
REQUEST HELPERS
====================================
*/

func (e *Engine) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
	return e.finishJSON(resp, err, out)
}

func (e *Engine) postJSON(ctx context.Context, path string, body, out any) error {
	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	return e.finishJSON(resp, err, out)
}

func (e *Engine) putJSON(ctx context.Context, path string, body, out any) error {
	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
	return e.finishJSON(resp, err, out)
}

func (e *Engine) deleteJSON(ctx context.Context, path string) error {
	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodDelete,
		Path:   path,
	})
	return e.finishJSON(resp, err, nil)
}

// getBlob fetches a binary response (PDF exports) without JSON decoding.
func (e *Engine) getBlob(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := e.pipeline.Do(ctx, transport.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
	if err != nil {
		return nil, err
	}
	if resp.Outcome == transport.OutcomeUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, apiError(resp)
	}
	return resp.Body, nil
}

func (e *Engine) finishJSON(resp *transport.Response, err error, out any) error {
	if err != nil {
		return err
	}
	if resp.Outcome == transport.OutcomeUnauthorized {
		return ErrUnauthorized
	}
	if resp.Status < 200 || resp.Status > 299 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	return transport.DecodeJSON(resp, out)
}

func apiError(resp *transport.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil || payload.Message == "" {
		payload.Message = strings.TrimSpace(string(resp.Body))
		if len(payload.Message) > 200 {
			payload.Message = payload.Message[:200]
		}
	}
	return &APIError{Status: resp.Status, Message: payload.Message}
}
