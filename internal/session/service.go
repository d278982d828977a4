// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

/*
Package session implements cookie-based session issuance and teardown.

A session is a signed JWT carried in an HttpOnly cookie. The identity in
the token is whatever email the client posted: there is no password or
credential check, the signature only proves the token came from this
server. Verification is stateless; the Redis audit ledger tracks issued
tokens for operational visibility but is never consulted on requests.

Architecture:

  - Service: Issues tokens via [sec.TokenService] and keeps the audit ledger.
  - Repository: Redis audit entries keyed by the token's jti (store_redis.go).
  - Handler: Cookie read/write HTTP layer (http.go).
*/
package session

import (
	"context"
	"log/slog"

	"github.com/leminhkhoa/shelfwise/internal/platform/constants"
	"github.com/leminhkhoa/shelfwise/internal/platform/sec"
	"github.com/leminhkhoa/shelfwise/internal/platform/validate"
)

// Service implements session issuance and teardown.
type Service struct {
	tokens *sec.TokenService
	audit  AuditRepository
	logger *slog.Logger
}

// NewService constructs a new session [Service] with its dependencies.
func NewService(tokens *sec.TokenService, audit AuditRepository, logger *slog.Logger) *Service {
	return &Service{
		tokens: tokens,
		audit:  audit,
		logger: logger,
	}
}

/*
IssueSession creates a signed session token for the posted email.

Description: The email is signed as-is; no account lookup happens. The
audit entry is best-effort: a Redis outage must not block logins, so a
failed write is logged and swallowed.

Returns:
  - string: The signed JWT to place in the session cookie
  - error: Validation or signing failures
*/
func (service *Service) IssueSession(context context.Context, email string) (string, error) {
	validator := &validate.Validator{}
	if err := validator.Required("email", email).Email("email", email).Err(); err != nil {
		return "", err
	}

	token, claims, err := service.tokens.IssueToken(email, constants.SessionTokenTTL)
	if err != nil {
		return "", err
	}

	if err := service.audit.Record(context, claims.ID, email, constants.SessionTokenTTL); err != nil {
		service.logger.WarnContext(context, "session_audit_record_failed",
			slog.String("error", err.Error()),
		)
	}

	service.logger.InfoContext(context, "session_issued",
		slog.String("jti", claims.ID),
	)

	return token, nil
}

// EndSession removes the audit entry for a token at logout.
//
// Best-effort: the token itself stays verifiable until it expires, so a
// failed delete only degrades bookkeeping, never security.
func (service *Service) EndSession(context context.Context, tokenID string) {
	if tokenID == "" {
		return
	}
	if err := service.audit.Delete(context, tokenID); err != nil {
		service.logger.WarnContext(context, "session_audit_delete_failed",
			slog.String("error", err.Error()),
		)
	}
}
