// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leminhkhoa/shelfwise/internal/platform/middleware"
	requestutil "github.com/leminhkhoa/shelfwise/internal/platform/request"
	"github.com/leminhkhoa/shelfwise/internal/platform/respond"
	"github.com/leminhkhoa/shelfwise/pkg/pointer"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog browsing and management.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog domain's endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): Single-book lookup and category browsing.
//   - Management (Protected): Listing and mutating the catalog requires a
//     verified session whose identity matches the email named in the request.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/book/{id}", handler.getBook)
	router.Get("/category/{category}", handler.listBooksByCategory)
	router.Get("/categories", handler.listCategories)

	// ## Catalog Management (Session Protected)
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/books", handler.listBooks)
		protected.Post("/books", handler.createBook)
		protected.Patch("/book/{id}", handler.updateBook)
	})

	return router
}

// # Request Payloads

// bookRequest defines the inbound JSON schema for catalog writes.
// Pointer fields let the PATCH endpoint distinguish "absent" from "zero".
type bookRequest struct {
	Name     *string  `json:"name"`
	Photo    *string  `json:"photo"`
	Author   *string  `json:"author"`
	Category *string  `json:"category"`
	Rating   *float64 `json:"rating"`
	Quantity *int     `json:"quantity"`
}

// # Catalog Endpoints

/*
GET /books?email=...

Description: Retrieves the full catalog for an authenticated member. The
email query parameter must match the session identity.

Response:
  - 200: []Book: Complete catalog listing
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Email does not match the session
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	// Coarse authorization: the caller may only browse as themselves
	if _, err := requestutil.RequireSelf(request, requestutil.Query(request, "email")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	books, err := handler.service.ListBooks(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, books)
}

/*
POST /books?email=...

Description: Adds a new book to the catalog.

Request (Body):
  - bookRequest: JSON object (name, photo, author, category, rating, quantity)

Response:
  - 201: Book: Created catalog entry
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Email does not match the session
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	// Coarse authorization: the caller may only act as themselves
	if _, err := requestutil.RequireSelf(request, requestutil.Query(request, "email")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Strict JSON decoding
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Map DTO to Domain Input
	createInput := CreateBookInput{
		Name:         pointer.Val(input.Name),
		PhotoURL:     pointer.Val(input.Photo),
		AuthorName:   pointer.Val(input.Author),
		CategoryName: pointer.Val(input.Category),
		Rating:       pointer.Val(input.Rating),
		Quantity:     pointer.Val(input.Quantity),
	}

	// Domain Logic Execution
	book, err := handler.service.CreateBook(request.Context(), createInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Created(writer, book)
}

/*
GET /book/{id}.

Description: Retrieves one catalog entry by its UUID. Public.

Response:
  - 200: Book: Success
  - 400: 400: Validation: Malformed UUID
  - 404: 404: ErrNotFound: Book not found
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	// Extract ID from URL
	bookID := requestutil.Param(request, "id")

	// Domain Logic Execution
	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, book)
}

/*
PATCH /book/{id}?email=...

Description: Applies partial updates to one catalog entry. Clients provide
only the fields that need to change; stock quantity is not accepted here.

Response:
  - 200: Book: Updated catalog entry
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 403: 403: ErrForbidden: Email does not match the session
  - 404: 404: ErrNotFound: Book not found
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	// Coarse authorization: the caller may only act as themselves
	if _, err := requestutil.RequireSelf(request, requestutil.Query(request, "email")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Extract ID from URL
	bookID := requestutil.Param(request, "id")

	// Strict JSON decoding
	var input bookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Domain Logic Execution
	book, err := handler.service.UpdateBook(request.Context(), bookID, UpdateBookInput{
		Name:         input.Name,
		PhotoURL:     input.Photo,
		AuthorName:   input.Author,
		CategoryName: input.Category,
		Rating:       input.Rating,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, book)
}

// # Category Endpoints

/*
GET /category/{category}.

Description: Lists all books filed under a category. The path segment may be
the category's display name or its URL slug. Public.

Response:
  - 200: []Book: Matching books (empty list for unknown labels)
*/
func (handler *Handler) listBooksByCategory(writer http.ResponseWriter, request *http.Request) {
	// Extract category label from URL
	categoryLabel := requestutil.Param(request, "category")

	// Domain Logic Execution
	books, err := handler.service.ListBooksByCategory(request.Context(), categoryLabel)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, books)
}

/*
GET /categories.

Description: Lists every category label. Public.

Response:
  - 200: []Category: All category labels
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}
