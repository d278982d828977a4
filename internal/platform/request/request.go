// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leminhkhoa/shelfwise/internal/platform/apperr"
	"github.com/leminhkhoa/shelfwise/internal/platform/ctxutil"
	"github.com/leminhkhoa/shelfwise/internal/platform/sec"
	"github.com/leminhkhoa/shelfwise/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter (UUID/Slug) from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query retrieves a named query-string parameter from the request.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
Claims extracts the authenticated session claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.SessionClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the session claims.

Returns:
  - *sec.SessionClaims: The authenticated session claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.SessionClaims, error) {

	// Get session claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Not authenticated")
	}

	return claims, nil
}

/*
RequireSelf ensures the authenticated identity matches the identity named in
the request (the `email` query parameter).

This is the single authorization check shared by every handler that accepts a
caller-supplied email, so the comparison is never duplicated per handler.

Returns:
  - *sec.SessionClaims: The verified session claims
  - error: apperr.Unauthorized if anonymous, apperr.Forbidden on mismatch
*/
func RequireSelf(request *http.Request, requestedEmail string) (*sec.SessionClaims, error) {

	// The gate must have run first
	claims, err := RequiredClaims(request)
	if err != nil {
		return nil, err
	}

	// Coarse authorization: the caller may only act as themselves
	if requestedEmail != claims.Email {
		return nil, apperr.Forbidden("Forbidden")
	}

	return claims, nil
}
