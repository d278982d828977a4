// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package borrow

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leminhkhoa/shelfwise/internal/platform/apperr"
	"github.com/leminhkhoa/shelfwise/internal/platform/middleware"
	requestutil "github.com/leminhkhoa/shelfwise/internal/platform/request"
	"github.com/leminhkhoa/shelfwise/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the lending workflow.
type Handler struct {
	service *Service
}

// NewHandler constructs a new lending [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the lending endpoints.
//
// # Routing Strategy
//
// Every lending operation requires a verified session. The borrower's
// identity is always the session email; clients cannot lend or list on
// behalf of another user.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listLoans)
	router.Post("/{id}", handler.borrowBook)
	router.Delete("/{id}", handler.returnBook)

	return router
}

// # Request Payloads

// borrowRequest defines the inbound JSON schema for a borrow attempt.
// Dates accept RFC 3339 or plain YYYY-MM-DD; absent dates use defaults.
type borrowRequest struct {
	Name       string `json:"name"`
	BorrowedOn string `json:"borrowed_on"`
	DueOn      string `json:"due_on"`
}

// # Lending Endpoints

/*
GET /borrow.

Description: Lists the authenticated user's active loans. An optional email
query parameter is accepted for client symmetry but must match the session.

Response:
  - 200: []Loan: Active loans, newest first
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Email does not match the session
*/
func (handler *Handler) listLoans(writer http.ResponseWriter, request *http.Request) {
	// Identity comes from the session, never the query string
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// A caller-supplied email must still match the session
	if requested := requestutil.Query(request, "email"); requested != "" {
		if _, err := requestutil.RequireSelf(request, requested); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	// Domain Logic Execution
	loans, err := handler.service.ListLoans(request.Context(), claims.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, loans)
}

/*
POST /borrow/{id}.

Description: Attempts to borrow one copy of the book named by {id} for the
authenticated user. The attempt resolves to a typed outcome.

Request (Body):
  - borrowRequest: JSON object (name, borrowed_on, due_on)

Response:
  - 201: BorrowResult: Loan recorded, stock decremented
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 404: 404: ErrNotFound: Book not found
  - 409: 409: ErrConflict: User already holds this book
  - 422: 422: Unprocessable: Loan limit reached, or book out of stock
*/
func (handler *Handler) borrowBook(writer http.ResponseWriter, request *http.Request) {
	// Identity comes from the session, never the body
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Extract book ID from URL
	bookID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input borrowRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	result, err := handler.service.BorrowBook(request.Context(), bookID, claims.Email, BorrowInput{
		BorrowerName: input.Name,
		BorrowedOn:   parseDate(input.BorrowedOn),
		DueOn:        parseDate(input.DueOn),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Outcome Mapping
	switch result.Outcome {
	case OutcomeSuccess:
		respond.Created(writer, result)
	case OutcomeDuplicateBorrow:
		respond.Error(writer, request, apperr.Conflict("You have already borrowed this book"))
	case OutcomeLimitReached:
		respond.Error(writer, request, apperr.Unprocessable("Borrow limit reached (3 active loans)"))
	case OutcomeOutOfStock:
		respond.Error(writer, request, apperr.Unprocessable("Book is out of stock"))
	}
}

/*
DELETE /borrow/{id}?book=...

Description: Returns a borrowed book. {id} names the loan record to delete;
the book query parameter names the catalog entry to restock. The two
effects are independent.

Response:
  - 200: ReturnResult: Deleted loan count and new stock level
  - 400: 400: Validation: Malformed loan or book UUID
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 404: 404: ErrNotFound: Book not found
*/
func (handler *Handler) returnBook(writer http.ResponseWriter, request *http.Request) {
	// Extract loan ID from URL and book ID from query
	loanID := requestutil.Param(request, "id")
	bookID := requestutil.Query(request, "book")

	// Domain Logic Execution
	result, err := handler.service.ReturnBook(request.Context(), loanID, bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, result)
}

// # Helpers

// parseDate accepts RFC 3339 or YYYY-MM-DD. Unparseable or empty input
// yields the zero time, which the service replaces with defaults.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed
	}
	return time.Time{}
}
