// Copyright (c) 2026 Shelfwise. All rights reserved.
// Author: le.minhkhoa.dev@gmail.com

package catalog

import "time"

// Book represents a single catalog entry and its available stock.
//
// Quantity is the count of physical copies currently on the shelf. It is
// mutated by the borrow/return workflow and must never go negative; the
// database enforces this with a CHECK constraint and the workflow only
// performs conditional decrements.
type Book struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photo"`
	AuthorName   string    `json:"author"`
	CategoryName string    `json:"category"`
	Rating       float64   `json:"rating"`
	Quantity     int       `json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Category is a read-only name label books are filed under.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// BookUpdate carries the partial field set accepted by the update operation.
//
// Nil pointers mean "leave unchanged". Quantity is deliberately absent:
// stock levels change only through the borrow/return workflow.
type BookUpdate struct {
	Name         *string
	PhotoURL     *string
	AuthorName   *string
	CategoryName *string
	Rating       *float64
}
