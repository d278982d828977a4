// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package session

import (
	"net/http"
	"time"

	"github.com/leminhkhoa/shelfwise/internal/platform/constants"
	requestutil "github.com/leminhkhoa/shelfwise/internal/platform/request"
	"github.com/leminhkhoa/shelfwise/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for session issuance and teardown.
// Its endpoints live at the root of the path space (POST /jwt, POST /logout),
// so the api package registers them directly instead of mounting a subrouter.
//
// # Cookie Policy
//
// The session JWT travels in an HttpOnly cookie so browser scripts can
// never read it. In production the cookie is Secure with SameSite=None
// (the frontend is served from a different origin); elsewhere it is
// SameSite=Strict over plain HTTP for local development.
type Handler struct {
	service    *Service
	production bool
}

// NewHandler constructs a new session [Handler].
func NewHandler(service *Service, production bool) *Handler {
	return &Handler{service: service, production: production}
}

// # Request Payloads

// tokenRequest defines the inbound JSON schema for session issuance.
type tokenRequest struct {
	Email string `json:"email"`
}

// # Session Endpoints

/*
POST /jwt.

Description: Issues a signed session token for the posted email and sets
it as the session cookie. The email is taken at face value; the signature
binds later requests to this issuance, it does not vouch for the identity.

Request (Body):
  - tokenRequest: JSON object ({ email: string })

Response:
  - 200: { success: true }: Cookie set
  - 400: 400: ErrInvalidJSON/Validation: Missing or malformed email
*/
func (handler *Handler) IssueToken(writer http.ResponseWriter, request *http.Request) {
	// Strict JSON decoding
	var input tokenRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	token, err := handler.service.IssueSession(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Session Cookie Delivery
	http.SetCookie(writer, handler.sessionCookie(token, time.Now().Add(constants.SessionTokenTTL), 0))

	// Structured API Response
	respond.JSON(writer, http.StatusOK, map[string]bool{constants.FieldSuccess: true})
}

/*
POST /logout.

Description: Clears the session cookie and removes the audit entry for the
presented token. The token itself remains cryptographically valid until it
expires; logout is a client-side and bookkeeping operation.

Response:
  - 200: { success: true }: Cookie cleared
*/
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	// Best-effort audit cleanup for the presented token
	if claims := requestutil.Claims(request); claims != nil {
		handler.service.EndSession(request.Context(), claims.ID)
	}

	// Expire the cookie immediately
	http.SetCookie(writer, handler.sessionCookie("", time.Time{}, -1))

	// Structured API Response
	respond.JSON(writer, http.StatusOK, map[string]bool{constants.FieldSuccess: true})
}

// # Helpers

// sessionCookie builds the session cookie with the environment's security
// attributes applied.
func (handler *Handler) sessionCookie(value string, expires time.Time, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   maxAge,
	}
	if !expires.IsZero() {
		cookie.Expires = expires
	}

	// Cross-origin frontends need SameSite=None, which browsers only honor
	// over HTTPS. Local development runs plain HTTP.
	if handler.production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteStrictMode
	}

	return cookie
}
