// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

/*
Package catalog implements the book catalog and category listing.

It covers catalog CRUD (insert, list, fetch, partial update) and the two
category read paths. Stock quantity is not mutable here: only the lending
workflow moves stock, inside its own transactions.

Architecture:

  - Service: Validates input and orchestrates repository calls.
  - Repository: Abstracted interfaces for PostgreSQL storage.
  - Handler: Thin HTTP delivery layer (http.go).
*/
package catalog

import (
	"context"
	"log/slog"

	"github.com/leminhkhoa/shelfwise/internal/platform/apperr"
	"github.com/leminhkhoa/shelfwise/internal/platform/validate"
	"github.com/leminhkhoa/shelfwise/pkg/slug"
	"github.com/leminhkhoa/shelfwise/pkg/uuid"
)

// Service implements catalog use cases.
type Service struct {
	books      BookRepository
	categories CategoryRepository
	logger     *slog.Logger
}

// NewService constructs a new catalog [Service] with its repository dependencies.
func NewService(books BookRepository, categories CategoryRepository, logger *slog.Logger) *Service {
	return &Service{
		books:      books,
		categories: categories,
		logger:     logger,
	}
}

// # Catalog Writes

// CreateBookInput holds the data required to add a book to the catalog.
type CreateBookInput struct {
	Name         string
	PhotoURL     string
	AuthorName   string
	CategoryName string
	Rating       float64
	Quantity     int
}

/*
CreateBook validates and persists a brand new catalog entry.

Parameters:
  - context: context.Context
  - input: CreateBookInput

Returns:
  - *Book: Created entity with its server-generated id
  - error: Validation or storage errors
*/
func (service *Service) CreateBook(context context.Context, input CreateBookInput) (*Book, error) {
	validator := &validate.Validator{}
	validator.Required("name", input.Name).
		MaxLen("name", input.Name, 200).
		Required("author", input.AuthorName).
		Required("category", input.CategoryName).
		RangeFloat("rating", input.Rating, 0, 10).
		Min("quantity", input.Quantity, 0)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Time-sortable ID to prevent PG index fragmentation.
	book := &Book{
		ID:           uuid.New(),
		Name:         input.Name,
		PhotoURL:     input.PhotoURL,
		AuthorName:   input.AuthorName,
		CategoryName: input.CategoryName,
		Rating:       input.Rating,
		Quantity:     input.Quantity,
	}

	if err := service.books.Insert(context, book); err != nil {
		return nil, err
	}

	return book, nil
}

// UpdateBookInput carries the partial field set of a catalog update request.
type UpdateBookInput struct {
	Name         *string
	PhotoURL     *string
	AuthorName   *string
	CategoryName *string
	Rating       *float64
}

/*
UpdateBook applies a partial update to one catalog entry.

Description: Only the supplied fields change; stock quantity is not
updatable here. An unknown id yields apperr.NotFound rather than a silent
zero-row report.

Returns:
  - *Book: The entry after the update
  - error: Validation failures, apperr.NotFound, or storage errors
*/
func (service *Service) UpdateBook(context context.Context, id string, input UpdateBookInput) (*Book, error) {
	validator := &validate.Validator{}
	validator.UUID("id", id)

	if input.Name != nil {
		validator.Required("name", *input.Name).MaxLen("name", *input.Name, 200)
	}
	if input.AuthorName != nil {
		validator.Required("author", *input.AuthorName)
	}
	if input.CategoryName != nil {
		validator.Required("category", *input.CategoryName)
	}
	if input.Rating != nil {
		validator.RangeFloat("rating", *input.Rating, 0, 10)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	modified, err := service.books.UpdateByID(context, id, BookUpdate{
		Name:         input.Name,
		PhotoURL:     input.PhotoURL,
		AuthorName:   input.AuthorName,
		CategoryName: input.CategoryName,
		Rating:       input.Rating,
	})
	if err != nil {
		return nil, err
	}

	if modified == 0 {
		return nil, apperr.NotFound("Book")
	}

	return service.books.GetByID(context, id)
}

// # Catalog Reads

// ListBooks returns the full catalog.
func (service *Service) ListBooks(context context.Context) ([]*Book, error) {
	return service.books.ListAll(context)
}

// GetBook returns a single catalog entry by id.
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	validator := &validate.Validator{}
	if err := validator.UUID("id", id).Err(); err != nil {
		return nil, err
	}

	return service.books.GetByID(context, id)
}

/*
ListBooksByCategory returns all books filed under a category.

Description: The path parameter may be the category's display name or its
URL slug. Exact name match is tried first; an empty result falls back to
slug resolution so both "Science Fiction" and "science-fiction" work.
*/
func (service *Service) ListBooksByCategory(context context.Context, nameOrSlug string) ([]*Book, error) {
	books, err := service.books.ListByCategory(context, nameOrSlug)
	if err != nil {
		return nil, err
	}
	if len(books) > 0 {
		return books, nil
	}

	// Fall back to slug resolution.
	category, err := service.categories.GetBySlug(context, slug.From(nameOrSlug))
	if err != nil {
		// Unknown label: an empty list, not an error (public discovery route).
		if apperr.As(err) != nil && apperr.As(err).HTTPStatus == 404 {
			return books, nil
		}
		return nil, err
	}

	return service.books.ListByCategory(context, category.Name)
}

// ListCategories returns every category label.
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.categories.ListAll(context)
}
