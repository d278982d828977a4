// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

/*
Package borrow implements the lending workflow: borrowing a book, returning
it, and listing a user's active loans.

Borrowing enforces two business rules before stock moves:

  - A user may hold at most one copy of any given book.
  - A user may hold at most [constants.MaxActiveLoans] books at once.

Both rules, plus the stock decrement, resolve inside a single database
transaction so concurrent requests cannot double-lend a last copy.

Architecture:

  - Service: Validates input, stamps loan identity, records outcome metrics.
  - Repository: Transactional PostgreSQL ledger (store_postgres.go).
  - Handler: Session-protected HTTP delivery layer (http.go).
*/
package borrow

import (
	"context"
	"log/slog"
	"time"

	"github.com/leminhkhoa/shelfwise/internal/metrics"
	"github.com/leminhkhoa/shelfwise/internal/platform/constants"
	"github.com/leminhkhoa/shelfwise/internal/platform/validate"
	"github.com/leminhkhoa/shelfwise/pkg/uuid"
)

// Service implements lending use cases.
type Service struct {
	loans    LoanRepository
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewService constructs a new lending [Service] with its dependencies.
func NewService(loans LoanRepository, recorder metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{
		loans:    loans,
		recorder: recorder,
		logger:   logger,
	}
}

// BorrowInput holds the caller-supplied part of a borrow request.
// Email always comes from the verified session, never from the body.
type BorrowInput struct {
	BorrowerName string
	BorrowedOn   time.Time
	DueOn        time.Time
}

/*
BorrowBook attempts to lend one copy of a book to the authenticated user.

Description: Dates default when absent (borrowed today, due after
[constants.DefaultLoanPeriod]). The repository resolves the attempt to a
typed [Outcome] inside one transaction; the service records the outcome
metric and logs rejected attempts.

Parameters:
  - context: context.Context
  - bookID: string (Catalog UUID of the book to borrow)
  - email: string (Verified session identity)
  - input: BorrowInput

Returns:
  - *BorrowResult: Typed outcome; only OutcomeSuccess carries a loan
  - error: Validation failures, apperr.NotFound, or storage errors
*/
func (service *Service) BorrowBook(context context.Context, bookID, email string, input BorrowInput) (*BorrowResult, error) {
	validator := &validate.Validator{}
	validator.UUID("id", bookID).
		Email("email", email).
		Required("name", input.BorrowerName)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	borrowedOn := input.BorrowedOn
	if borrowedOn.IsZero() {
		borrowedOn = time.Now()
	}
	dueOn := input.DueOn
	if dueOn.IsZero() {
		dueOn = borrowedOn.Add(constants.DefaultLoanPeriod)
	}

	loan := &Loan{
		ID:           uuid.New(),
		BookID:       bookID,
		Email:        email,
		BorrowerName: input.BorrowerName,
		BorrowedOn:   borrowedOn,
		DueOn:        dueOn,
	}

	result, err := service.loans.Borrow(context, loan, constants.MaxActiveLoans)
	if err != nil {
		return nil, err
	}

	service.recorder.RecordBorrowOutcome(string(result.Outcome))

	if result.Outcome != OutcomeSuccess {
		service.logger.InfoContext(context, "borrow_rejected",
			slog.String("outcome", string(result.Outcome)),
			slog.String("book_id", bookID),
		)
	}

	return result, nil
}

/*
ReturnBook removes a loan from the ledger and restocks the named book.

Description: The two effects stay independent: the book id comes from the
request, not from the deleted loan record.

Returns:
  - *ReturnResult: Deleted loan count and the book's new stock level
  - error: Validation failures, apperr.NotFound, or storage errors
*/
func (service *Service) ReturnBook(context context.Context, loanID, bookID string) (*ReturnResult, error) {
	validator := &validate.Validator{}
	validator.UUID("id", loanID).UUID("book", bookID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	result, err := service.loans.Return(context, loanID, bookID)
	if err != nil {
		return nil, err
	}

	service.recorder.RecordReturn()

	return result, nil
}

// ListLoans returns the authenticated user's active loans.
func (service *Service) ListLoans(context context.Context, email string) ([]*Loan, error) {
	validator := &validate.Validator{}
	if err := validator.Email("email", email).Err(); err != nil {
		return nil, err
	}

	return service.loans.ListByEmail(context, email)
}
