// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

// Storage layer for the book catalog, backed by PostgreSQL.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leminhkhoa/shelfwise/internal/platform/apperr"
	"github.com/leminhkhoa/shelfwise/internal/platform/database/schema"
	"github.com/leminhkhoa/shelfwise/internal/platform/dberr"
)

// # Book Repository

// PostgresBookRepository implements the BookRepository interface using pgx.
type PostgresBookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new PostgreSQL implementation of the BookRepository.
func NewBookRepository(pool *pgxpool.Pool) *PostgresBookRepository {
	return &PostgresBookRepository{pool: pool}
}

/*
Insert persists a new book record into the catalog.book table.

Parameters:
  - context: context.Context
  - book: *Book (Entity to persist; ID and timestamps already stamped)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresBookRepository) Insert(context context.Context, book *Book) error {
	const query = `
		INSERT INTO catalog.book (
			id, name, photourl, authorname, categoryname, rating, quantity, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		book.ID,
		book.Name,
		book.PhotoURL,
		book.AuthorName,
		book.CategoryName,
		book.Rating,
		book.Quantity,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "insert_book")
	}

	return nil
}

/*
ListAll retrieves every book in the catalog, newest first.

Returns:
  - []*Book: All catalog entries
  - error: Query or scan failures
*/
func (repository *PostgresBookRepository) ListAll(context context.Context) ([]*Book, error) {
	const query = `
		SELECT id, name, photourl, authorname, categoryname, rating, quantity, createdat, updatedat
		FROM catalog.book
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	return scanBooks(rows)
}

/*
GetByID retrieves a single book record by its UUID.

Returns:
  - *Book: Hydrated catalog entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresBookRepository) GetByID(context context.Context, id string) (*Book, error) {
	const query = `
		SELECT id, name, photourl, authorname, categoryname, rating, quantity, createdat, updatedat
		FROM catalog.book
		WHERE id = $1`

	book := &Book{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&book.ID,
		&book.Name,
		&book.PhotoURL,
		&book.AuthorName,
		&book.CategoryName,
		&book.Rating,
		&book.Quantity,
		&book.CreatedAt,
		&book.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, dberr.Wrap(err, "get_book_by_id")
	}

	return book, nil
}

/*
UpdateByID applies the non-nil fields of update to one book record.

Description: Builds the SET clause dynamically so untouched columns keep
their value. Quantity is never updatable through this path.

Returns:
  - int64: Number of rows modified (0 when the id does not exist)
  - error: Query failures
*/
func (repository *PostgresBookRepository) UpdateByID(context context.Context, id string, update BookUpdate) (int64, error) {
	setClauses := make([]string, 0, 6)
	arguments := make([]any, 0, 7)

	appendSet := func(column string, value any) {
		arguments = append(arguments, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(arguments)))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.PhotoURL != nil {
		appendSet("photourl", *update.PhotoURL)
	}
	if update.AuthorName != nil {
		appendSet("authorname", *update.AuthorName)
	}
	if update.CategoryName != nil {
		appendSet("categoryname", *update.CategoryName)
	}
	if update.Rating != nil {
		appendSet("rating", *update.Rating)
	}

	if len(setClauses) == 0 {
		return 0, nil
	}

	appendSet("updatedat", time.Now())
	arguments = append(arguments, id)

	query := fmt.Sprintf(`UPDATE catalog.book SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), len(arguments))

	tag, err := repository.pool.Exec(context, query, arguments...)
	if err != nil {
		return 0, dberr.Wrap(err, "update_book")
	}

	return tag.RowsAffected(), nil
}

/*
ListByCategory retrieves all books filed under the exact category name.

Returns:
  - []*Book: Matching catalog entries (possibly empty)
  - error: Query or scan failures
*/
func (repository *PostgresBookRepository) ListByCategory(context context.Context, categoryName string) ([]*Book, error) {
	const query = `
		SELECT id, name, photourl, authorname, categoryname, rating, quantity, createdat, updatedat
		FROM catalog.book
		WHERE categoryname = $1
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, categoryName)
	if err != nil {
		return nil, dberr.Wrap(err, "list_books_by_category")
	}
	defer rows.Close()

	return scanBooks(rows)
}

// scanBooks drains rows into hydrated Book entities.
func scanBooks(rows pgx.Rows) ([]*Book, error) {
	books := make([]*Book, 0)

	for rows.Next() {
		book := &Book{}
		if err := rows.Scan(
			&book.ID,
			&book.Name,
			&book.PhotoURL,
			&book.AuthorName,
			&book.CategoryName,
			&book.Rating,
			&book.Quantity,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_books")
	}

	return books, nil
}

// # Category Repository

// PostgresCategoryRepository implements the CategoryRepository interface using pgx.
type PostgresCategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new PostgreSQL implementation of the CategoryRepository.
func NewCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (repository *PostgresCategoryRepository) ListAll(context context.Context) ([]*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Slug,
		schema.RefCategory.Table, schema.RefCategory.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	categories := make([]*Category, 0)
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate_categories")
	}

	return categories, nil
}

func (repository *PostgresCategoryRepository) GetBySlug(context context.Context, slug string) (*Category, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.RefCategory.ID, schema.RefCategory.Name, schema.RefCategory.Slug,
		schema.RefCategory.Table, schema.RefCategory.Slug)

	category := &Category{}
	err := repository.db.QueryRow(context, query, slug).Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, dberr.Wrap(err, "get_category_by_slug")
	}

	return category, nil
}
