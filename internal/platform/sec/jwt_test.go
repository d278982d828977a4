// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leminhkhoa/shelfwise/internal/platform/constants"
	"github.com/leminhkhoa/shelfwise/internal/platform/sec"
)

/*
TestTokenService_IssueAndVerify checks the full round-trip: an issued token
verifies under the same key and yields the identity it was issued for.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service, err := sec.NewTokenService("test-signing-secret", constants.AuthIssuer)
	require.NoError(t, err)

	token, issued, err := service.IssueToken("reader@shelfwise.app", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotNil(t, issued)
	assert.NotEmpty(t, issued.ID, "token must carry a jti for the audit ledger")

	verified, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reader@shelfwise.app", verified.Email)
	assert.Equal(t, constants.AuthIssuer, verified.Issuer)
	assert.Equal(t, issued.ID, verified.ID)
}

/*
TestTokenService_RejectsExpired checks that a token past its lifetime fails
verification.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service, err := sec.NewTokenService("test-signing-secret", constants.AuthIssuer)
	require.NoError(t, err)

	token, _, err := service.IssueToken("reader@shelfwise.app", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsWrongKey checks that a token signed under a different
secret never verifies.
*/
func TestTokenService_RejectsWrongKey(t *testing.T) {
	issuer, err := sec.NewTokenService("secret-one", constants.AuthIssuer)
	require.NoError(t, err)
	verifier, err := sec.NewTokenService("secret-two", constants.AuthIssuer)
	require.NoError(t, err)

	token, _, err := issuer.IssueToken("reader@shelfwise.app", time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsTampered checks that modifying the payload breaks the
signature.
*/
func TestTokenService_RejectsTampered(t *testing.T) {
	service, err := sec.NewTokenService("test-signing-secret", constants.AuthIssuer)
	require.NoError(t, err)

	token, _, err := service.IssueToken("reader@shelfwise.app", time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"
	_, err = service.VerifyToken(tampered)
	assert.Error(t, err)
}

/*
TestNewTokenService_EmptySecret checks that construction refuses an empty key.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", constants.AuthIssuer)
	assert.Error(t, err)
}
