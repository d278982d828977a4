// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package session

import (
	"context"
	"time"
)

// AuditRepository records which session tokens have been issued.
//
// The ledger is bookkeeping only: token verification is stateless and never
// consults it, so an entry's absence does not invalidate a token. Entries
// expire on their own after the token lifetime.
type AuditRepository interface {
	// Record stores an issued token's jti with the borrower's email.
	Record(ctx context.Context, tokenID, email string, ttl time.Duration) error

	// Delete removes an entry at logout.
	Delete(ctx context.Context, tokenID string) error
}
