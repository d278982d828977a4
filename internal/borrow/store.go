// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package borrow

import "context"

// LoanRepository defines persistence operations for the lending ledger.
//
// Borrow and Return are transactional: each runs its reads and writes inside
// one database transaction so the stock level and the ledger can never drift
// apart under concurrent requests.
type LoanRepository interface {
	// Borrow atomically records a loan and decrements the book's stock.
	// The loan's ID, Email, BookID, BorrowerName and dates must be set by
	// the caller; book metadata is snapshotted from the catalog row inside
	// the transaction. maxActive caps concurrent loans per email.
	//
	// Only OutcomeSuccess mutates state. All other outcomes roll back and
	// return a nil error; storage failures return a non-nil error.
	Borrow(ctx context.Context, loan *Loan, maxActive int) (*BorrowResult, error)

	// Return deletes a loan by id and increments the named book's stock by
	// one. The two steps are independent: a missing loan id reports a zero
	// deleted count while the increment still applies.
	Return(ctx context.Context, loanID, bookID string) (*ReturnResult, error)

	// ListByEmail returns the user's active loans, newest first.
	ListByEmail(ctx context.Context, email string) ([]*Loan, error)
}
