// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

// Storage layer for the lending ledger, backed by PostgreSQL.
//
// # Concurrency
//
// The borrow transaction is the only writer of both the ledger and the stock
// column. Three mechanisms keep concurrent borrows consistent:
//
//  1. A transaction-scoped advisory lock on the user's email serializes
//     concurrent borrows by the same user, so the active-loan count cannot
//     miss an insert from a parallel transaction. Row locks alone cannot do
//     this: FOR UPDATE gives no phantom protection under READ COMMITTED, and
//     a first-time borrower has no rows to lock at all.
//  2. The stock decrement is conditional (quantity > 0), so a lost race can
//     never drive quantity negative.
//  3. The UNIQUE (bookid, email) constraint backstops the duplicate probe:
//     two simultaneous first-time borrows resolve to one loan.

package borrow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leminhkhoa/shelfwise/internal/platform/apperr"
	"github.com/leminhkhoa/shelfwise/internal/platform/database/schema"
	"github.com/leminhkhoa/shelfwise/internal/platform/dberr"
)

// PostgresLoanRepository implements the LoanRepository interface using pgx.
type PostgresLoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new PostgreSQL implementation of the LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *PostgresLoanRepository {
	return &PostgresLoanRepository{pool: pool}
}

/*
Borrow atomically records a loan and decrements the book's stock.

Description: Runs the full borrow decision inside one transaction. The
checks run in order (duplicate, limit, stock) and only a fully successful
pass commits; every rejected outcome rolls back with zero mutations.

Parameters:
  - context: context.Context
  - loan: *Loan (ID, BookID, Email, BorrowerName, BorrowedOn, DueOn set by the service)
  - maxActive: int (Per-user concurrent loan cap)

Returns:
  - *BorrowResult: Typed outcome plus the committed loan on success
  - error: apperr.NotFound for an unknown book, otherwise storage errors
*/
func (repository *PostgresLoanRepository) Borrow(context context.Context, loan *Loan, maxActive int) (*BorrowResult, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_borrow_tx")
	}
	defer transaction.Rollback(context)

	// ── 1. Per-User Serialization ─────────────────────────────────────────
	// Advisory lock on the email, released at commit or rollback. Every
	// check below sees the committed state of any earlier borrow by the
	// same user.
	if _, err := transaction.Exec(context,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, loan.Email,
	); err != nil {
		return nil, dberr.Wrap(err, "borrow_lock_user")
	}

	// ── 2. Duplicate Probe ────────────────────────────────────────────────
	// One active loan per (book, user). The unique constraint in step 5 is
	// the backstop for the race this probe cannot see.
	var alreadyHeld bool
	err = transaction.QueryRow(context,
		`SELECT EXISTS (SELECT 1 FROM lending.loan WHERE bookid = $1 AND email = $2)`,
		loan.BookID, loan.Email,
	).Scan(&alreadyHeld)
	if err != nil {
		return nil, dberr.Wrap(err, "borrow_duplicate_probe")
	}
	if alreadyHeld {
		return &BorrowResult{Outcome: OutcomeDuplicateBorrow}, nil
	}

	// ── 3. Active-Loan Limit ──────────────────────────────────────────────
	// Safe as a plain count: the advisory lock in step 1 means no other
	// transaction can insert a loan for this email until we finish.
	var activeLoans int
	err = transaction.QueryRow(context,
		`SELECT count(*) FROM lending.loan WHERE email = $1`,
		loan.Email,
	).Scan(&activeLoans)
	if err != nil {
		return nil, dberr.Wrap(err, "borrow_count_loans")
	}

	if activeLoans >= maxActive {
		return &BorrowResult{Outcome: OutcomeLimitReached}, nil
	}

	// ── 4. Conditional Stock Decrement ────────────────────────────────────
	// The quantity > 0 guard means a sold-out book yields zero rows instead
	// of a negative count. Book metadata rides back for the loan snapshot.
	var remaining int
	err = transaction.QueryRow(context,
		`UPDATE catalog.book
		 SET quantity = quantity - 1, updatedat = now()
		 WHERE id = $1 AND quantity > 0
		 RETURNING quantity, name, photourl, categoryname`,
		loan.BookID,
	).Scan(&remaining, &loan.BookName, &loan.PhotoURL, &loan.CategoryName)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Zero rows: either the book does not exist, or it is out of stock.
			var bookExists bool
			if probeErr := transaction.QueryRow(context,
				`SELECT EXISTS (SELECT 1 FROM catalog.book WHERE id = $1)`,
				loan.BookID,
			).Scan(&bookExists); probeErr != nil {
				return nil, dberr.Wrap(probeErr, "borrow_book_probe")
			}
			if !bookExists {
				return nil, apperr.NotFound("Book")
			}
			return &BorrowResult{Outcome: OutcomeOutOfStock}, nil
		}
		return nil, dberr.Wrap(err, "borrow_decrement_stock")
	}

	// ── 5. Ledger Insert ──────────────────────────────────────────────────
	loan.CreatedAt = time.Now()
	tag, err := transaction.Exec(context,
		`INSERT INTO lending.loan (
			id, bookid, email, borrowername, bookname, photourl, categoryname, borrowedon, dueon, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (bookid, email) DO NOTHING`,
		loan.ID,
		loan.BookID,
		loan.Email,
		loan.BorrowerName,
		loan.BookName,
		loan.PhotoURL,
		loan.CategoryName,
		loan.BorrowedOn,
		loan.DueOn,
		loan.CreatedAt,
	)
	if err != nil {
		// Second net behind ON CONFLICT: a unique violation surfacing as an
		// error is still a concurrent duplicate, not a server fault.
		if dberr.IsUniqueViolation(err) {
			return &BorrowResult{Outcome: OutcomeDuplicateBorrow}, nil
		}
		return nil, dberr.Wrap(err, "borrow_insert_loan")
	}
	if tag.RowsAffected() == 0 {
		// A concurrent borrow won the constraint. Roll back the decrement.
		return &BorrowResult{Outcome: OutcomeDuplicateBorrow}, nil
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_borrow_tx")
	}

	return &BorrowResult{
		Outcome:           OutcomeSuccess,
		Loan:              loan,
		RemainingQuantity: remaining,
	}, nil
}

/*
Return deletes a loan by id and restocks the named book.

Description: Both steps run in one transaction but are deliberately
independent of each other: the increment targets whatever book id the
caller supplied, and a missing loan id reports a zero deleted count while
the increment still applies.

Returns:
  - *ReturnResult: Deleted loan count and the book's new stock level
  - error: apperr.NotFound for an unknown book id, otherwise storage errors
*/
func (repository *PostgresLoanRepository) Return(context context.Context, loanID, bookID string) (*ReturnResult, error) {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_return_tx")
	}
	defer transaction.Rollback(context)

	tag, err := transaction.Exec(context,
		`DELETE FROM lending.loan WHERE id = $1`, loanID)
	if err != nil {
		return nil, dberr.Wrap(err, "return_delete_loan")
	}

	var quantity int
	err = transaction.QueryRow(context,
		`UPDATE catalog.book
		 SET quantity = quantity + 1, updatedat = now()
		 WHERE id = $1
		 RETURNING quantity`,
		bookID,
	).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "return_increment_stock")
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_return_tx")
	}

	return &ReturnResult{
		DeletedCount: tag.RowsAffected(),
		NewQuantity:  quantity,
	}, nil
}

/*
ListByEmail retrieves the user's active loans, newest first.

Returns:
  - []*Loan: Active loans (possibly empty)
  - error: Query or scan failures
*/
func (repository *PostgresLoanRepository) ListByEmail(context context.Context, email string) ([]*Loan, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		schema.RefLoan.ID, schema.RefLoan.BookID, schema.RefLoan.Email,
		schema.RefLoan.BorrowerName, schema.RefLoan.BookName, schema.RefLoan.PhotoURL,
		schema.RefLoan.CategoryName, schema.RefLoan.BorrowedOn, schema.RefLoan.DueOn,
		schema.RefLoan.CreatedAt,
		schema.RefLoan.Table,
		schema.RefLoan.Email,
		schema.RefLoan.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, email)
	if err != nil {
		return nil, dberr.Wrap(err, "list_loans_by_email")
	}
	defer rows.Close()

	loans := make([]*Loan, 0)
	for rows.Next() {
		loan := &Loan{}
		if err := rows.Scan(
			&loan.ID,
			&loan.BookID,
			&loan.Email,
			&loan.BorrowerName,
			&loan.BookName,
			&loan.PhotoURL,
			&loan.CategoryName,
			&loan.BorrowedOn,
			&loan.DueOn,
			&loan.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_loan")
		}
		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_loans")
	}

	return loans, nil
}
