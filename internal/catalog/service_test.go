// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leminhkhoa/shelfwise/internal/catalog"
	"github.com/leminhkhoa/shelfwise/internal/platform/apperr"
	"github.com/leminhkhoa/shelfwise/pkg/pointer"
	"github.com/leminhkhoa/shelfwise/pkg/uuid"
)

// fakeBookRepository is an in-memory BookRepository.
type fakeBookRepository struct {
	books map[string]*catalog.Book
}

func newFakeBookRepository() *fakeBookRepository {
	return &fakeBookRepository{books: make(map[string]*catalog.Book)}
}

func (f *fakeBookRepository) Insert(_ context.Context, book *catalog.Book) error {
	copied := *book
	f.books[book.ID] = &copied
	return nil
}

func (f *fakeBookRepository) ListAll(_ context.Context) ([]*catalog.Book, error) {
	result := make([]*catalog.Book, 0, len(f.books))
	for _, book := range f.books {
		result = append(result, book)
	}
	return result, nil
}

func (f *fakeBookRepository) GetByID(_ context.Context, id string) (*catalog.Book, error) {
	book, exists := f.books[id]
	if !exists {
		return nil, apperr.NotFound("Book")
	}
	return book, nil
}

func (f *fakeBookRepository) UpdateByID(_ context.Context, id string, update catalog.BookUpdate) (int64, error) {
	book, exists := f.books[id]
	if !exists {
		return 0, nil
	}
	if update.Name != nil {
		book.Name = *update.Name
	}
	if update.PhotoURL != nil {
		book.PhotoURL = *update.PhotoURL
	}
	if update.AuthorName != nil {
		book.AuthorName = *update.AuthorName
	}
	if update.CategoryName != nil {
		book.CategoryName = *update.CategoryName
	}
	if update.Rating != nil {
		book.Rating = *update.Rating
	}
	return 1, nil
}

func (f *fakeBookRepository) ListByCategory(_ context.Context, categoryName string) ([]*catalog.Book, error) {
	result := make([]*catalog.Book, 0)
	for _, book := range f.books {
		if book.CategoryName == categoryName {
			result = append(result, book)
		}
	}
	return result, nil
}

// fakeCategoryRepository is an in-memory CategoryRepository keyed by slug.
type fakeCategoryRepository struct {
	categories map[string]*catalog.Category
}

func (f *fakeCategoryRepository) ListAll(_ context.Context) ([]*catalog.Category, error) {
	result := make([]*catalog.Category, 0, len(f.categories))
	for _, category := range f.categories {
		result = append(result, category)
	}
	return result, nil
}

func (f *fakeCategoryRepository) GetBySlug(_ context.Context, slug string) (*catalog.Category, error) {
	category, exists := f.categories[slug]
	if !exists {
		return nil, apperr.NotFound("Category")
	}
	return category, nil
}

func newService(books catalog.BookRepository, categories catalog.CategoryRepository) *catalog.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(books, categories, logger)
}

/*
TestCreateBook_RoundTrip checks that an inserted book comes back from GetBook
with every field intact.
*/
func TestCreateBook_RoundTrip(t *testing.T) {
	repo := newFakeBookRepository()
	service := newService(repo, &fakeCategoryRepository{})

	created, err := service.CreateBook(context.Background(), catalog.CreateBookInput{
		Name:         "The Left Hand of Darkness",
		PhotoURL:     "https://img.example/lhod.jpg",
		AuthorName:   "Ursula K. Le Guin",
		CategoryName: "Sci-Fi",
		Rating:       4.8,
		Quantity:     5,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID, "service must stamp a server-generated id")

	fetched, err := service.GetBook(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "The Left Hand of Darkness", fetched.Name)
	assert.Equal(t, "https://img.example/lhod.jpg", fetched.PhotoURL)
	assert.Equal(t, "Ursula K. Le Guin", fetched.AuthorName)
	assert.Equal(t, "Sci-Fi", fetched.CategoryName)
	assert.Equal(t, 4.8, fetched.Rating)
	assert.Equal(t, 5, fetched.Quantity)
}

/*
TestCreateBook_Validation checks the field rules on creation.
*/
func TestCreateBook_Validation(t *testing.T) {
	service := newService(newFakeBookRepository(), &fakeCategoryRepository{})

	tests := []struct {
		name  string
		input catalog.CreateBookInput
	}{
		{"missing_name", catalog.CreateBookInput{AuthorName: "A", CategoryName: "C"}},
		{"missing_author", catalog.CreateBookInput{Name: "N", CategoryName: "C"}},
		{"rating_out_of_range", catalog.CreateBookInput{Name: "N", AuthorName: "A", CategoryName: "C", Rating: 11}},
		{"negative_quantity", catalog.CreateBookInput{Name: "N", AuthorName: "A", CategoryName: "C", Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateBook(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestGetBook_InvalidID checks that a malformed id fails validation before the
repository is consulted.
*/
func TestGetBook_InvalidID(t *testing.T) {
	service := newService(newFakeBookRepository(), &fakeCategoryRepository{})

	_, err := service.GetBook(context.Background(), "64f1b2c3d4e5f6a7b8c9d0e1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestUpdateBook checks partial updates: provided fields change, absent fields
survive, and an unknown id maps to 404.
*/
func TestUpdateBook(t *testing.T) {
	repo := newFakeBookRepository()
	service := newService(repo, &fakeCategoryRepository{})

	created, err := service.CreateBook(context.Background(), catalog.CreateBookInput{
		Name:         "Original Title",
		AuthorName:   "Original Author",
		CategoryName: "Fiction",
		Rating:       3,
		Quantity:     7,
	})
	require.NoError(t, err)

	updated, err := service.UpdateBook(context.Background(), created.ID, catalog.UpdateBookInput{
		Name:   pointer.To("Revised Title"),
		Rating: pointer.To(4.5),
	})
	require.NoError(t, err)

	assert.Equal(t, "Revised Title", updated.Name)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, "Original Author", updated.AuthorName, "absent fields stay untouched")
	assert.Equal(t, 7, updated.Quantity, "quantity is never updatable here")

	// Unknown id
	_, err = service.UpdateBook(context.Background(), uuid.New(), catalog.UpdateBookInput{Name: pointer.To("Revised Title")})
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestListBooksByCategory checks both lookup paths: exact display name and the
slug fallback.
*/
func TestListBooksByCategory(t *testing.T) {
	repo := newFakeBookRepository()
	categories := &fakeCategoryRepository{categories: map[string]*catalog.Category{
		"sci-fi": {ID: 1, Name: "Sci-Fi", Slug: "sci-fi"},
	}}
	service := newService(repo, categories)

	_, err := service.CreateBook(context.Background(), catalog.CreateBookInput{
		Name:         "Dune",
		AuthorName:   "Frank Herbert",
		CategoryName: "Sci-Fi",
		Quantity:     3,
	})
	require.NoError(t, err)

	// Exact name match
	books, err := service.ListBooksByCategory(context.Background(), "Sci-Fi")
	require.NoError(t, err)
	require.Len(t, books, 1)

	// Slug fallback resolves to the display name
	books, err = service.ListBooksByCategory(context.Background(), "sci-fi")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)

	// Unknown label: empty list, not an error
	books, err = service.ListBooksByCategory(context.Background(), "Cooking")
	require.NoError(t, err)
	assert.Empty(t, books)
}
