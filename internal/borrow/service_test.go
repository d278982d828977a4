// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package borrow_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leminhkhoa/shelfwise/internal/borrow"
	"github.com/leminhkhoa/shelfwise/internal/metrics"
	"github.com/leminhkhoa/shelfwise/internal/platform/apperr"
	"github.com/leminhkhoa/shelfwise/pkg/uuid"
)

// fakeLedger is an in-memory LoanRepository mirroring the transactional
// semantics of the PostgreSQL implementation: duplicate probe, active-loan
// cap, conditional decrement. The mutex mirrors the per-user advisory lock,
// so concurrent borrows serialize the way the real transaction does.
type fakeLedger struct {
	mu    sync.Mutex
	stock map[string]int // book id -> quantity
	names map[string]string
	loans map[string]*borrow.Loan // loan id -> loan
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		stock: make(map[string]int),
		names: make(map[string]string),
		loans: make(map[string]*borrow.Loan),
	}
}

func (f *fakeLedger) addBook(id, name string, quantity int) {
	f.stock[id] = quantity
	f.names[id] = name
}

func (f *fakeLedger) Borrow(_ context.Context, loan *borrow.Loan, maxActive int) (*borrow.BorrowResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	active := 0
	for _, existing := range f.loans {
		if existing.Email == loan.Email {
			if existing.BookID == loan.BookID {
				return &borrow.BorrowResult{Outcome: borrow.OutcomeDuplicateBorrow}, nil
			}
			active++
		}
	}
	if active >= maxActive {
		return &borrow.BorrowResult{Outcome: borrow.OutcomeLimitReached}, nil
	}

	quantity, exists := f.stock[loan.BookID]
	if !exists {
		return nil, apperr.NotFound("Book")
	}
	if quantity == 0 {
		return &borrow.BorrowResult{Outcome: borrow.OutcomeOutOfStock}, nil
	}

	f.stock[loan.BookID] = quantity - 1
	loan.BookName = f.names[loan.BookID]
	f.loans[loan.ID] = loan

	return &borrow.BorrowResult{
		Outcome:           borrow.OutcomeSuccess,
		Loan:              loan,
		RemainingQuantity: quantity - 1,
	}, nil
}

func (f *fakeLedger) Return(_ context.Context, loanID, bookID string) (*borrow.ReturnResult, error) {
	var deleted int64
	if _, exists := f.loans[loanID]; exists {
		delete(f.loans, loanID)
		deleted = 1
	}

	quantity, exists := f.stock[bookID]
	if !exists {
		return nil, apperr.NotFound("Book")
	}
	f.stock[bookID] = quantity + 1

	return &borrow.ReturnResult{DeletedCount: deleted, NewQuantity: quantity + 1}, nil
}

func (f *fakeLedger) ListByEmail(_ context.Context, email string) ([]*borrow.Loan, error) {
	result := make([]*borrow.Loan, 0)
	for _, loan := range f.loans {
		if loan.Email == email {
			result = append(result, loan)
		}
	}
	return result, nil
}

func newService(ledger *fakeLedger) *borrow.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return borrow.NewService(ledger, metrics.Nop{}, logger)
}

/*
TestBorrow_Success checks the happy path: loan recorded, stock decremented,
and the due date defaulted from the borrow date.
*/
func TestBorrow_Success(t *testing.T) {
	ledger := newFakeLedger()
	bookID := uuid.New()
	ledger.addBook(bookID, "The Dispossessed", 5)

	service := newService(ledger)

	result, err := service.BorrowBook(context.Background(), bookID, "a@x.com", borrow.BorrowInput{
		BorrowerName: "Reader A",
	})
	require.NoError(t, err)

	assert.Equal(t, borrow.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 4, result.RemainingQuantity)
	require.NotNil(t, result.Loan)
	assert.Equal(t, "a@x.com", result.Loan.Email)
	assert.Equal(t, "The Dispossessed", result.Loan.BookName)
	assert.NotEmpty(t, result.Loan.ID)

	// Default due window is applied from the borrow date.
	expectedDue := result.Loan.BorrowedOn.Add(14 * 24 * time.Hour)
	assert.WithinDuration(t, expectedDue, result.Loan.DueOn, time.Second)
}

/*
TestBorrow_Duplicate checks that a second borrow of the same book by the same
user is rejected with no further mutation: one loan, one decrement.
*/
func TestBorrow_Duplicate(t *testing.T) {
	ledger := newFakeLedger()
	bookID := uuid.New()
	ledger.addBook(bookID, "Dune", 5)

	service := newService(ledger)

	first, err := service.BorrowBook(context.Background(), bookID, "a@x.com", borrow.BorrowInput{BorrowerName: "Reader A"})
	require.NoError(t, err)
	require.Equal(t, borrow.OutcomeSuccess, first.Outcome)

	second, err := service.BorrowBook(context.Background(), bookID, "a@x.com", borrow.BorrowInput{BorrowerName: "Reader A"})
	require.NoError(t, err)

	assert.Equal(t, borrow.OutcomeDuplicateBorrow, second.Outcome)
	assert.Nil(t, second.Loan)
	assert.Equal(t, 4, ledger.stock[bookID], "duplicate must not decrement again")
	assert.Len(t, ledger.loans, 1, "duplicate must not add a second loan")
}

/*
TestBorrow_LimitReached checks that a user holding three books cannot borrow
a fourth, regardless of which book it is, with no mutation.
*/
func TestBorrow_LimitReached(t *testing.T) {
	ledger := newFakeLedger()
	service := newService(ledger)

	for i := 0; i < 3; i++ {
		bookID := uuid.New()
		ledger.addBook(bookID, "Book", 2)
		result, err := service.BorrowBook(context.Background(), bookID, "a@x.com", borrow.BorrowInput{BorrowerName: "Reader A"})
		require.NoError(t, err)
		require.Equal(t, borrow.OutcomeSuccess, result.Outcome)
	}

	fourthID := uuid.New()
	ledger.addBook(fourthID, "Fourth Book", 2)

	result, err := service.BorrowBook(context.Background(), fourthID, "a@x.com", borrow.BorrowInput{BorrowerName: "Reader A"})
	require.NoError(t, err)

	assert.Equal(t, borrow.OutcomeLimitReached, result.Outcome)
	assert.Equal(t, 2, ledger.stock[fourthID], "rejected borrow must not touch stock")
	assert.Len(t, ledger.loans, 3)
}

/*
TestBorrow_ConcurrentLimit checks that simultaneous borrows by one user
cannot breach the active-loan cap: the repository contract serializes
borrows per email, so exactly three of six parallel requests succeed.
*/
func TestBorrow_ConcurrentLimit(t *testing.T) {
	ledger := newFakeLedger()
	service := newService(ledger)
	email := "a@x.com"

	bookIDs := make([]string, 6)
	for i := range bookIDs {
		bookIDs[i] = uuid.New()
		ledger.addBook(bookIDs[i], "Book", 2)
	}

	outcomes := make(chan borrow.Outcome, len(bookIDs))
	var wg sync.WaitGroup
	for _, id := range bookIDs {
		wg.Add(1)
		go func(bookID string) {
			defer wg.Done()
			result, err := service.BorrowBook(context.Background(), bookID, email, borrow.BorrowInput{BorrowerName: "A"})
			if !assert.NoError(t, err) {
				return
			}
			outcomes <- result.Outcome
		}(id)
	}
	wg.Wait()
	close(outcomes)

	successes, rejections := 0, 0
	for outcome := range outcomes {
		switch outcome {
		case borrow.OutcomeSuccess:
			successes++
		case borrow.OutcomeLimitReached:
			rejections++
		default:
			t.Fatalf("unexpected outcome %q", outcome)
		}
	}

	assert.Equal(t, 3, successes)
	assert.Equal(t, 3, rejections)
	assert.Len(t, ledger.loans, 3, "the cap holds under concurrency")
}

/*
TestBorrow_FullScenario walks the canonical user journey: B1 5→4, B1 again
rejected at 4, then B2 and B3, then B4 hits the limit with B4's stock
unchanged.
*/
func TestBorrow_FullScenario(t *testing.T) {
	ledger := newFakeLedger()
	service := newService(ledger)
	email := "a@x.com"

	b1, b2, b3, b4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	ledger.addBook(b1, "B1", 5)
	ledger.addBook(b2, "B2", 5)
	ledger.addBook(b3, "B3", 5)
	ledger.addBook(b4, "B4", 5)

	// B1: 5 -> 4
	result, err := service.BorrowBook(context.Background(), b1, email, borrow.BorrowInput{BorrowerName: "A"})
	require.NoError(t, err)
	assert.Equal(t, borrow.OutcomeSuccess, result.Outcome)
	assert.Equal(t, 4, ledger.stock[b1])

	// B1 again: rejected, still 4
	result, err = service.BorrowBook(context.Background(), b1, email, borrow.BorrowInput{BorrowerName: "A"})
	require.NoError(t, err)
	assert.Equal(t, borrow.OutcomeDuplicateBorrow, result.Outcome)
	assert.Equal(t, 4, ledger.stock[b1])

	// B2, B3: success
	for _, id := range []string{b2, b3} {
		result, err = service.BorrowBook(context.Background(), id, email, borrow.BorrowInput{BorrowerName: "A"})
		require.NoError(t, err)
		assert.Equal(t, borrow.OutcomeSuccess, result.Outcome)
	}

	// B4: limit reached, stock untouched
	result, err = service.BorrowBook(context.Background(), b4, email, borrow.BorrowInput{BorrowerName: "A"})
	require.NoError(t, err)
	assert.Equal(t, borrow.OutcomeLimitReached, result.Outcome)
	assert.Equal(t, 5, ledger.stock[b4])
}

/*
TestBorrow_OutOfStock checks that a zero-quantity book is rejected with the
typed outcome rather than going negative.
*/
func TestBorrow_OutOfStock(t *testing.T) {
	ledger := newFakeLedger()
	bookID := uuid.New()
	ledger.addBook(bookID, "Rare Book", 0)

	service := newService(ledger)

	result, err := service.BorrowBook(context.Background(), bookID, "a@x.com", borrow.BorrowInput{BorrowerName: "A"})
	require.NoError(t, err)

	assert.Equal(t, borrow.OutcomeOutOfStock, result.Outcome)
	assert.Equal(t, 0, ledger.stock[bookID])
}

/*
TestBorrow_UnknownBook checks that borrowing a nonexistent book surfaces a
404-class error, not an outcome.
*/
func TestBorrow_UnknownBook(t *testing.T) {
	service := newService(newFakeLedger())

	_, err := service.BorrowBook(context.Background(), uuid.New(), "a@x.com", borrow.BorrowInput{BorrowerName: "A"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestBorrow_Validation checks the input rules: book id must be a UUID, the
email must be well formed, and the borrower name is required.
*/
func TestBorrow_Validation(t *testing.T) {
	service := newService(newFakeLedger())

	tests := []struct {
		name   string
		bookID string
		email  string
		input  borrow.BorrowInput
	}{
		{"bad_book_id", "not-a-uuid", "a@x.com", borrow.BorrowInput{BorrowerName: "A"}},
		{"bad_email", uuid.New(), "not-an-email", borrow.BorrowInput{BorrowerName: "A"}},
		{"missing_name", uuid.New(), "a@x.com", borrow.BorrowInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.BorrowBook(context.Background(), tt.bookID, tt.email, tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestReturn_IndependentEffects checks that returning removes the named loan and
increments the named book by exactly one, even when the loan referenced a
different book.
*/
func TestReturn_IndependentEffects(t *testing.T) {
	ledger := newFakeLedger()
	service := newService(ledger)

	borrowedID := uuid.New()
	otherID := uuid.New()
	ledger.addBook(borrowedID, "Borrowed Book", 5)
	ledger.addBook(otherID, "Other Book", 5)

	result, err := service.BorrowBook(context.Background(), borrowedID, "a@x.com", borrow.BorrowInput{BorrowerName: "A"})
	require.NoError(t, err)
	require.Equal(t, borrow.OutcomeSuccess, result.Outcome)
	require.Equal(t, 4, ledger.stock[borrowedID])

	// Return the loan but name the OTHER book for restocking.
	returned, err := service.ReturnBook(context.Background(), result.Loan.ID, otherID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), returned.DeletedCount)
	assert.Equal(t, 6, returned.NewQuantity)
	assert.Equal(t, 4, ledger.stock[borrowedID], "the borrowed book is not restocked")
	assert.Equal(t, 6, ledger.stock[otherID])
	assert.Empty(t, ledger.loans)
}

/*
TestReturn_MissingLoan checks that an unknown loan id reports zero deletions
while the increment still applies.
*/
func TestReturn_MissingLoan(t *testing.T) {
	ledger := newFakeLedger()
	service := newService(ledger)

	bookID := uuid.New()
	ledger.addBook(bookID, "Book", 5)

	returned, err := service.ReturnBook(context.Background(), uuid.New(), bookID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), returned.DeletedCount)
	assert.Equal(t, 6, returned.NewQuantity)
}

/*
TestListLoans checks that only the requested user's loans come back.
*/
func TestListLoans(t *testing.T) {
	ledger := newFakeLedger()
	service := newService(ledger)

	mine, theirs := uuid.New(), uuid.New()
	ledger.addBook(mine, "Mine", 3)
	ledger.addBook(theirs, "Theirs", 3)

	_, err := service.BorrowBook(context.Background(), mine, "a@x.com", borrow.BorrowInput{BorrowerName: "A"})
	require.NoError(t, err)
	_, err = service.BorrowBook(context.Background(), theirs, "b@x.com", borrow.BorrowInput{BorrowerName: "B"})
	require.NoError(t, err)

	loans, err := service.ListLoans(context.Background(), "a@x.com")
	require.NoError(t, err)

	require.Len(t, loans, 1)
	assert.Equal(t, mine, loans[0].BookID)
}
