// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package note manages each user's private collection of notes.

Every read and write is scoped to the caller's identity. A note that does not
exist and a note owned by someone else are reported identically, as not found.

# Core Responsibility

  - Entity: [Note] and its partial-update [Patch].
  - Storage: [Repository] with PostgreSQL and in-memory implementations.
  - Service: Validation and ownership scoping.
  - Handler: The /api/notes endpoints.
*/
package note

import "time"

// # Core Entities

// Note is a titled text owned by exactly one user. Ownership never changes.
type Note struct {
	ID        string    `json:"id"` // UUIDv7
	OwnerID   string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateInput holds the fields accepted when creating a note.
type CreateInput struct {
	Title   string
	Content string
}

// Patch is a partial update. A nil field keeps its stored value; a non-nil
// field replaces it, including with the empty string.
type Patch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// # Field Identifiers

const (
	FieldTitle   = "title"
	FieldContent = "content"
)

// MaxTitleLength matches the notes.title column.
const MaxTitleLength = 255
