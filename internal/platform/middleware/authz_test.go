// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leminhkhoa/shelfwise/internal/platform/constants"
	"github.com/leminhkhoa/shelfwise/internal/platform/ctxutil"
	"github.com/leminhkhoa/shelfwise/internal/platform/middleware"
	"github.com/leminhkhoa/shelfwise/internal/platform/sec"
)

// stubVerifier returns canned claims or a canned error.
type stubVerifier struct {
	claims *sec.SessionClaims
	err    error
}

func (s *stubVerifier) VerifyToken(string) (*sec.SessionClaims, error) {
	return s.claims, s.err
}

/*
TestAuthenticate_NoCookie verifies that a request with no session cookie
proceeds anonymously: the verifier is never called and no claims appear in
the context.
*/
func TestAuthenticate_NoCookie(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("must not be called")}

	nextCalled := false
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		nextCalled = true
		assert.Nil(t, ctxutil.GetAuthUser(request.Context()))
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/books", nil)

	middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestAuthenticate_InvalidToken verifies that a present-but-invalid cookie
terminates the request with 401 before any handler runs.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("bad signature")}

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for an invalid token")
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "garbage"})

	middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_ValidToken verifies that valid cookie claims reach the
downstream handler through the context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	verifier := &stubVerifier{claims: &sec.SessionClaims{Email: "reader@shelfwise.app"}}

	var seenEmail string
	next := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if claims := middleware.GetUser(request.Context()); claims != nil {
			seenEmail = claims.Email
		}
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/books", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "valid-token"})

	middleware.Authenticate(verifier)(next).ServeHTTP(recorder, request)

	assert.Equal(t, "reader@shelfwise.app", seenEmail)
}

/*
TestRequireAuth_Anonymous verifies the gate rejects anonymous requests with
401 before the protected handler (and any store behind it) is reached.
*/
func TestRequireAuth_Anonymous(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("protected handler must not run without a session")
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/borrow", nil)

	middleware.RequireAuth(next).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRequireAuth_Authenticated verifies the gate passes requests that carry
session claims.
*/
func TestRequireAuth_Authenticated(t *testing.T) {
	nextCalled := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/borrow", nil)
	ctx := ctxutil.WithAuthUser(request.Context(), &sec.SessionClaims{Email: "reader@shelfwise.app"})

	middleware.RequireAuth(next).ServeHTTP(recorder, request.WithContext(ctx))

	assert.True(t, nextCalled)
}
