package goLedger

import (
	"context"
	"strings"
)

// Navigation is the typed result of a gate decision. The engine never navigates
// itself; the embedding application acts on the returned value.
type Navigation uint8

const (
	// NavigateStay means the requested route may be shown.
	NavigateStay Navigation = iota
	// NavigateLogin means no valid session exists and the login route should be
	// shown instead.
	NavigateLogin
	// NavigateLanding means a valid session exists and a public route (login,
	// register) should yield to the landing route.
	NavigateLanding
)

func (n Navigation) String() string {
	switch n {
	case NavigateStay:
		return "stay"
	case NavigateLogin:
		return "login"
	case NavigateLanding:
		return "landing"
	default:
		return "unknown"
	}
}

// ResolveRoute describes the resolve route operation and its observable behavior.
//
// ResolveRoute gates access to a route. Public routes yield NavigateLanding when a
// validated session exists. Protected routes yield NavigateLogin when no session is
// stored (decided locally, with no network call) or when backend validation fails;
// validation failure has already cleared the session by the time the decision is
// returned.
func (e *Engine) ResolveRoute(ctx context.Context, route string) (Navigation, error) {
	if e == nil {
		return NavigateLogin, ErrEngineNotReady
	}

	name := normalizeRoute(route)

	if e.isPublicRoute(name) {
		if !e.hasStoredSession(ctx) {
			return NavigateStay, nil
		}
		if _, err := e.Validate(ctx); err != nil {
			// Stale session cleared by Validate; the public route stands.
			return NavigateStay, nil
		}
		return NavigateLanding, nil
	}

	// Absent session is decided locally: a protected route must not trigger a
	// network round trip just to learn there is nothing to validate.
	if !e.hasStoredSession(ctx) {
		return NavigateLogin, nil
	}

	if _, err := e.Validate(ctx); err != nil {
		return NavigateLogin, nil
	}
	return NavigateStay, nil
}

// LoginRoute returns the configured login route name.
func (e *Engine) LoginRoute() string {
	return e.config.Gate.LoginRoute
}

// LandingRoute returns the configured landing route name.
func (e *Engine) LandingRoute() string {
	return e.config.Gate.LandingRoute
}

func (e *Engine) isPublicRoute(name string) bool {
	for _, r := range e.config.Gate.PublicRoutes {
		if normalizeRoute(r) == name {
			return true
		}
	}
	return false
}

// normalizeRoute reduces "/Login.html", "login.html", and "login" to the same name.
func normalizeRoute(route string) string {
	name := strings.ToLower(strings.Trim(route, "/"))
	name = strings.TrimSuffix(name, ".html")
	if name == "" || name == "index" {
		return "login"
	}
	return name
}
