// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package borrow

import "time"

// Loan is one active borrow record in the lending ledger.
//
// Book metadata (name, photo, category) is snapshotted onto the loan at
// borrow time so the ledger stays readable even if the catalog entry is
// later edited.
type Loan struct {
	ID           string    `json:"id"`
	BookID       string    `json:"book_id"`
	Email        string    `json:"email"`
	BorrowerName string    `json:"borrower_name"`
	BookName     string    `json:"book_name"`
	PhotoURL     string    `json:"photo"`
	CategoryName string    `json:"category"`
	BorrowedOn   time.Time `json:"borrowed_on"`
	DueOn        time.Time `json:"due_on"`
	CreatedAt    time.Time `json:"created_at"`
}

// Outcome is the typed result of a borrow attempt.
//
// Every attempt resolves to exactly one outcome; callers branch on the value
// instead of parsing response prose.
type Outcome string

const (
	// OutcomeSuccess: the loan was recorded and the stock decremented.
	OutcomeSuccess Outcome = "success"

	// OutcomeDuplicateBorrow: this user already holds this book. Nothing changed.
	OutcomeDuplicateBorrow Outcome = "duplicate_borrow"

	// OutcomeLimitReached: the user already holds the maximum number of
	// active loans. Nothing changed.
	OutcomeLimitReached Outcome = "limit_reached"

	// OutcomeOutOfStock: the book exists but has zero copies on the shelf.
	// Nothing changed.
	OutcomeOutOfStock Outcome = "out_of_stock"
)

// BorrowResult reports what a borrow attempt did.
type BorrowResult struct {
	Outcome Outcome `json:"outcome"`

	// Loan is the created record. Nil unless Outcome is OutcomeSuccess.
	Loan *Loan `json:"loan,omitempty"`

	// RemainingQuantity is the book's stock level after the decrement.
	// Only meaningful when Outcome is OutcomeSuccess.
	RemainingQuantity int `json:"remaining_quantity"`
}

// ReturnResult reports what a return did.
//
// The loan deletion and the quantity increment are independent steps: the
// increment targets whatever book id the caller named, whether or not the
// deleted loan referenced it.
type ReturnResult struct {
	DeletedCount int64 `json:"deleted_count"`
	NewQuantity  int   `json:"new_quantity"`
}
