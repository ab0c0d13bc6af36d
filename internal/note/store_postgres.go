// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"context"

	"github.com/taibuivan/stickynote/internal/platform/dberr"
	"github.com/taibuivan/stickynote/internal/platform/postgres"
)

// # Repository Implementation

// PostgresRepository implements [Repository] on the notes table.
type PostgresRepository struct {
	db postgres.Querier
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const noteColumns = `id, ownerid, title, content, createdat, updatedat`

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*Note, error) {
	note := &Note{}
	err := row.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return note, nil
}

/*
Create inserts a new note record.

Parameters:
  - ctx: context.Context
  - note: *Note

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(ctx context.Context, note *Note) error {
	const query = `
		INSERT INTO notes (id, ownerid, title, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING createdat, updatedat`

	err := repository.db.QueryRow(ctx, query,
		note.ID, note.OwnerID, note.Title, note.Content,
	).Scan(&note.CreatedAt, &note.UpdatedAt)

	return dberr.Wrap(err, "note_create", nil, nil)
}

/*
FindByIDAndOwner retrieves a single note scoped to its owner.

Parameters:
  - ctx: context.Context
  - id: string
  - ownerID: string

Returns:
  - *Note: Hydrated entity
  - error: apperr.NotFound or apperr.Internal
*/
func (repository *PostgresRepository) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*Note, error) {
	const query = `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND ownerid = $2`

	note, err := scanNote(repository.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, "note_find", errNoteNotFound(), nil)
	}
	return note, nil
}

/*
ListByOwner retrieves all notes for an owner, newest first.

Parameters:
  - ctx: context.Context
  - ownerID: string

Returns:
  - []*Note: Possibly empty list
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Note, error) {
	const query = `SELECT ` + noteColumns + ` FROM notes WHERE ownerid = $1 ORDER BY createdat DESC, id DESC`

	rows, err := repository.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "note_list", nil, nil)
	}
	defer rows.Close()

	notes := []*Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "note_list_scan", nil, nil)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "note_list_rows", nil, nil)
	}

	return notes, nil
}

/*
UpdateByIDAndOwner applies a partial update in one statement.

A NULL parameter keeps the column's current value, so lookup, merge and write
happen atomically under the row lock taken by UPDATE.

Parameters:
  - ctx: context.Context
  - id: string
  - ownerID: string
  - patch: Patch

Returns:
  - *Note: Updated entity
  - error: apperr.NotFound or apperr.Internal
*/
func (repository *PostgresRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch Patch) (*Note, error) {
	const query = `
		UPDATE notes
		SET title = COALESCE($3, title),
		    content = COALESCE($4, content),
		    updatedat = NOW()
		WHERE id = $1 AND ownerid = $2
		RETURNING ` + noteColumns

	note, err := scanNote(repository.db.QueryRow(ctx, query, id, ownerID, patch.Title, patch.Content))
	if err != nil {
		return nil, dberr.Wrap(err, "note_update", errNoteNotFound(), nil)
	}
	return note, nil
}

/*
DeleteByIDAndOwner removes a note scoped to its owner.

Parameters:
  - ctx: context.Context
  - id: string
  - ownerID: string

Returns:
  - error: apperr.NotFound when nothing matched, apperr.Internal otherwise
*/
func (repository *PostgresRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM notes WHERE id = $1 AND ownerid = $2`

	result, err := repository.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, "note_delete", nil, nil)
	}

	if result.RowsAffected() == 0 {
		return errNoteNotFound()
	}

	return nil
}
