package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/MrEthical07/goLedger/session"
)

// ErrMalformedResponse is returned by [DecodeJSON] when a response body cannot be
// decoded into the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// TransportError wraps a network-layer failure (DNS, connection, read). It is
// propagated to the caller rather than swallowed and never clears the session.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Outcome classifies the authentication result of a pipeline call.
type Outcome uint8

const (
	// OutcomeAuthorized means the request reached the backend with valid
	// credentials as far as the pipeline is concerned; the HTTP status may still
	// carry a business-level error.
	OutcomeAuthorized Outcome = iota
	// OutcomeUnauthorized means no usable session existed or the backend rejected
	// the token. Recovery (session clear) has already happened; the caller decides
	// navigation.
	OutcomeUnauthorized
)

// Request is a one-shot value object describing a single backend call. It has no
// identity beyond its single use.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-marshaled when non-nil and Multipart is nil.
	Body any
	// Multipart, when set, produces a multipart/form-data body and suppresses the
	// JSON content-type.
	Multipart *MultipartBody

	// Headers are caller-supplied and preserved, except that the pipeline's own
	// Authorization header always wins.
	Headers http.Header

	// Public requests skip session loading and bearer injection (login,
	// registration). A 401 on a public request passes through as a plain status.
	Public bool
}

// MultipartBody describes a multipart form payload with at most one file part.
type MultipartBody struct {
	Fields    map[string]string
	FileField string
	FileName  string
	File      []byte
}

// Response carries the pipeline outcome plus the untouched HTTP result.
type Response struct {
	Outcome Outcome
	Status  int
	Header  http.Header
	Body    []byte
}

// Config configures a [Pipeline].
type Config struct {
	BaseURL    string
	UserAgent  string
	CookieName string // redundant session cookie, default "SessionId"
}

// Hooks are optional pipeline observability callbacks, wired by the engine.
type Hooks struct {
	OnRequest        func()
	OnUnauthorized   func()
	OnTransportError func()
	OnSessionCleared func()
	ObserveLatency   func(time.Duration)
}

// Pipeline defines a public type used by goLedger APIs.
//
// Pipeline instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Pipeline struct {
	cfg    Config
	base   *url.URL
	client *http.Client
	store  session.Store
	logger zerolog.Logger
	hooks  Hooks

	// generation guards the 401 clear: concurrent calls issued under the same
	// generation clear the session at most once between logins.
	generation atomic.Uint64
}

// New describes the new operation and its observable behavior.
//
// New may return an error when the base URL cannot be parsed. The returned Pipeline
// can be used concurrently.
func New(cfg Config, client *http.Client, store session.Store, logger zerolog.Logger, hooks Hooks) (*Pipeline, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("base URL must be absolute")
	}
	if store == nil {
		return nil, errors.New("session store required")
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "SessionId"
	}

	return &Pipeline{
		cfg:    cfg,
		base:   base,
		client: client,
		store:  store,
		logger: logger,
		hooks:  hooks,
	}, nil
}

// Do describes the do operation and its observable behavior.
//
// Do returns (*Response, nil) for every completed HTTP exchange, including business
// errors; the only error return is a [*TransportError] for network-layer failures.
// An absent session on a non-public request short-circuits to OutcomeUnauthorized
// with no network call.
func (p *Pipeline) Do(ctx context.Context, req Request) (*Response, error) {
	if p.hooks.OnRequest != nil {
		p.hooks.OnRequest()
	}

	var token string
	gen := p.generation.Load()
	if !req.Public {
		sess, err := p.store.Load(ctx)
		if err != nil {
			// Absent, corrupt (already wiped by the store), or unreachable
			// store: recovery is already initiated, report unauthorized.
			p.unauthorized()
			return &Response{Outcome: OutcomeUnauthorized}, nil
		}
		token = sess.Token
	}

	httpReq, err := p.buildHTTPRequest(ctx, req, token)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		if p.hooks.OnTransportError != nil {
			p.hooks.OnTransportError()
		}
		p.logger.Warn().
			Str("method", req.Method).
			Str("path", req.Path).
			Err(err).
			Msg("transport failure")
		return nil, &TransportError{Op: req.Method, URL: httpReq.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if p.hooks.OnTransportError != nil {
			p.hooks.OnTransportError()
		}
		return nil, &TransportError{Op: req.Method, URL: httpReq.URL.String(), Err: err}
	}

	elapsed := time.Since(start)
	if p.hooks.ObserveLatency != nil {
		p.hooks.ObserveLatency(elapsed)
	}
	p.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request complete")

	if resp.StatusCode == http.StatusUnauthorized && !req.Public {
		p.clearOnce(ctx, gen)
		p.unauthorized()
		return &Response{Outcome: OutcomeUnauthorized, Status: resp.StatusCode}, nil
	}

	return &Response{
		Outcome: OutcomeAuthorized,
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Body:    body,
	}, nil
}

func (p *Pipeline) buildHTTPRequest(ctx context.Context, req Request, token string) (*http.Request, error) {
	u := *p.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Multipart != nil:
		buf, ct, err := encodeMultipart(req.Multipart)
		if err != nil {
			return nil, err
		}
		body = buf
		contentType = ct
	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	default:
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, err
	}

	for k, vs := range req.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Content-Type", contentType)
	if p.cfg.UserAgent != "" {
		httpReq.Header.Set("User-Agent", p.cfg.UserAgent)
	}

	rid := requestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}
	httpReq.Header.Set("X-Request-ID", rid)
	if key := idempotencyKeyFromContext(ctx); key != "" {
		httpReq.Header.Set("X-Idempotency-Key", key)
	}

	if token != "" {
		// The pipeline's authorization always wins over caller headers.
		httpReq.Header.Set("Authorization", "Bearer "+token)
		httpReq.AddCookie(&http.Cookie{Name: p.cfg.CookieName, Value: token})
	}

	return httpReq, nil
}

func encodeMultipart(m *MultipartBody) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if m.FileField != "" {
		part, err := w.CreateFormFile(m.FileField, m.FileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(m.File); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

func (p *Pipeline) clearOnce(ctx context.Context, gen uint64) {
	if p.generation.CompareAndSwap(gen, gen+1) {
		_ = p.store.Clear(ctx)
		if p.hooks.OnSessionCleared != nil {
			p.hooks.OnSessionCleared()
		}
		p.logger.Info().Msg("session cleared after unauthorized response")
	}
}

func (p *Pipeline) unauthorized() {
	if p.hooks.OnUnauthorized != nil {
		p.hooks.OnUnauthorized()
	}
}

// Generation exposes the current clear-generation counter. Test hook.
func (p *Pipeline) Generation() uint64 {
	return p.generation.Load()
}

// DecodeJSON decodes a completed response body at the schema boundary. Failures are
// reported as [ErrMalformedResponse] instead of propagating undefined fields into the
// caller.
func DecodeJSON(resp *Response, v any) error {
	if resp == nil {
		return ErrMalformedResponse
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return errors.Join(ErrMalformedResponse, err)
	}
	return nil
}
