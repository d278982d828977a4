// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package catalog

import "context"

// BookRepository defines persistence operations for the book catalog.
type BookRepository interface {
	// Insert persists a new book record.
	Insert(ctx context.Context, book *Book) error

	// ListAll returns every book in the catalog.
	ListAll(ctx context.Context) ([]*Book, error)

	// GetByID returns one book, or apperr.NotFound if the id is unknown.
	GetByID(ctx context.Context, id string) (*Book, error)

	// UpdateByID applies the non-nil fields of update and reports how many
	// rows were modified (0 when the id does not exist).
	UpdateByID(ctx context.Context, id string, update BookUpdate) (int64, error)

	// ListByCategory returns all books filed under the exact category name.
	ListByCategory(ctx context.Context, categoryName string) ([]*Book, error)
}

// CategoryRepository defines read access to the category labels.
type CategoryRepository interface {
	// ListAll returns every category label.
	ListAll(ctx context.Context) ([]*Category, error)

	// GetBySlug resolves a URL slug back to its category.
	GetBySlug(ctx context.Context, slug string) (*Category, error)
}
