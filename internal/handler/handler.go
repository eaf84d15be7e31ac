// Package handler contains the HTTP handlers for the challenge and
// statistics APIs. Handlers decode and validate request payloads, enforce
// the caller-identity rules, call into the services and translate domain
// errors into user-facing responses.
package handler

import (
	"net/http"

	"github.com/StavLobel/whats-the-chance-game/internal/identity"
	"github.com/StavLobel/whats-the-chance-game/internal/logger"
)

// CallerID returns the authenticated user's ID from the request context.
// The auth middleware guarantees an identity on protected routes; a missing
// one means the route was wired without the middleware, which is a bug.
func CallerID(r *http.Request) (string, bool) {
	ident, ok := identity.FromContext(r.Context())
	if !ok || ident.UID == "" {
		return "", false
	}
	return ident.UID, true
}

// requireCaller extracts the authenticated user or writes a 401 and
// returns false.
func requireCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := CallerID(r)
	if !ok {
		logger.FromContext(r.Context()).Error("No identity on authenticated route")
		respondError(w, http.StatusUnauthorized, ErrMsgNotAuthenticated)
		return "", false
	}
	return uid, true
}

// requireSelf enforces that the caller is acting on their own resources.
// Writes a 403 with the route-specific denial message and returns false
// when the path user differs from the authenticated user.
func requireSelf(w http.ResponseWriter, r *http.Request, pathUserID, denialMsg string) (string, bool) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return "", false
	}
	if caller != pathUserID {
		logger.FromContext(r.Context()).Warn("Cross-user access denied",
			"caller", caller, "target", pathUserID)
		respondError(w, http.StatusForbidden, denialMsg)
		return "", false
	}
	return caller, true
}
