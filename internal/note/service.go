// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/stickynote/internal/platform/sec"
	"github.com/taibuivan/stickynote/internal/platform/validate"
	"github.com/taibuivan/stickynote/pkg/uuid"
)

// # Service Implementation

// Service implements the ownership-scoped note use cases.
//
// Every method takes the caller's [sec.Identity] and passes its UserID to the
// repository as the owner. No method accepts an owner id from the payload.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new note [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
List returns the caller's notes, newest first.

Returns:
  - []*Note: Possibly empty list
  - error: Internal on storage failure
*/
func (service *Service) List(ctx context.Context, owner sec.Identity) ([]*Note, error) {
	return service.repository.ListByOwner(ctx, owner.UserID)
}

/*
Get returns one of the caller's notes.

Returns:
  - *Note: The note
  - error: NotFound when absent, owned by someone else, or id is not a UUID
*/
func (service *Service) Get(ctx context.Context, owner sec.Identity, id string) (*Note, error) {
	noteID, ok := uuid.Canonical(id)
	if !ok {
		return nil, errNoteNotFound()
	}
	return service.repository.FindByIDAndOwner(ctx, noteID, owner.UserID)
}

/*
Create validates and stores a new note owned by the caller.

Returns:
  - *Note: Created entity with server-assigned id and timestamps
  - error: ValidationError or Internal
*/
func (service *Service) Create(ctx context.Context, owner sec.Identity, input CreateInput) (*Note, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, MaxTitleLength).
		NoNullBytes(FieldTitle, input.Title).
		NoNullBytes(FieldContent, input.Content)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	note := &Note{
		ID:      uuid.New(),
		OwnerID: owner.UserID,
		Title:   input.Title,
		Content: input.Content,
	}

	if err := service.repository.Create(ctx, note); err != nil {
		return nil, err
	}

	service.logger.Info("note_created",
		slog.String("note_id", note.ID),
		slog.String("user_id", owner.UserID),
	)

	return note, nil
}

/*
Update applies a partial update to one of the caller's notes.

A supplied title must still be non-empty; a supplied empty content clears it.

Returns:
  - *Note: Updated entity
  - error: NotFound, ValidationError or Internal
*/
func (service *Service) Update(ctx context.Context, owner sec.Identity, id string, patch Patch) (*Note, error) {
	noteID, ok := uuid.Canonical(id)
	if !ok {
		return nil, errNoteNotFound()
	}

	validator := &validate.Validator{}
	if patch.Title != nil {
		validator.Custom(FieldTitle, strings.TrimSpace(*patch.Title) == "", "This field cannot be empty").
			MaxLen(FieldTitle, *patch.Title, MaxTitleLength).
			NoNullBytes(FieldTitle, *patch.Title)
	}
	if patch.Content != nil {
		validator.NoNullBytes(FieldContent, *patch.Content)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repository.UpdateByIDAndOwner(ctx, noteID, owner.UserID, patch)
}

/*
Delete removes one of the caller's notes. Deleting it again is NotFound.

Returns:
  - error: NotFound or Internal
*/
func (service *Service) Delete(ctx context.Context, owner sec.Identity, id string) error {
	noteID, ok := uuid.Canonical(id)
	if !ok {
		return errNoteNotFound()
	}

	if err := service.repository.DeleteByIDAndOwner(ctx, noteID, owner.UserID); err != nil {
		return err
	}

	service.logger.Info("note_deleted",
		slog.String("note_id", noteID),
		slog.String("user_id", owner.UserID),
	)

	return nil
}
