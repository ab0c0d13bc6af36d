// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"

	"github.com/taibuivan/stickynote/internal/platform/apperr"
)

// # Note Data Access

// Repository defines the data access contract for notes.
//
// Every method that addresses a single note takes both its id and the owner's
// id and matches them in one predicate. There is no way to reach a note
// through this interface without naming its owner.
type Repository interface {

	/*
		Create inserts a new note. The store sets CreatedAt and UpdatedAt.

		Parameters:
		  - ctx: context.Context
		  - note: *Note (ID and OwnerID already set)

		Returns:
		  - error: Persistence failures
	*/
	Create(ctx context.Context, note *Note) error

	/*
		FindByIDAndOwner returns the note with the given id owned by ownerID.

		Returns:
		  - *Note: Hydrated entity
		  - error: apperr.NotFound when absent or owned by someone else
	*/
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*Note, error)

	/*
		ListByOwner returns every note owned by ownerID, newest first.

		Returns:
		  - []*Note: Possibly empty, never nil
		  - error: Retrieval failures
	*/
	ListByOwner(ctx context.Context, ownerID string) ([]*Note, error)

	/*
		UpdateByIDAndOwner applies patch to the matching note in a single
		atomic step and returns the stored result.

		Returns:
		  - *Note: Updated entity
		  - error: apperr.NotFound when absent or owned by someone else
	*/
	UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch Patch) (*Note, error)

	/*
		DeleteByIDAndOwner removes the matching note.

		Returns:
		  - error: apperr.NotFound when no row was deleted
	*/
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
}

// errNoteNotFound is the single signal for "absent" and "not yours".
func errNoteNotFound() *apperr.AppError { return apperr.NotFound("Note") }
