// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/stickynote/internal/platform/dberr"
	"github.com/taibuivan/stickynote/internal/platform/postgres"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on the users table.
type PostgresUserRepository struct {
	db postgres.Querier
}

// NewPostgresUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewPostgresUserRepository(db postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

/*
Create inserts a new row into users.

There is no existence check beforehand; the UNIQUE constraint on username
decides, and a violation (SQLSTATE 23505) is reported as a conflict.

Parameters:
  - ctx: context.Context
  - user: *User (Entity to persist; timestamps are filled in)

Returns:
  - error: apperr.Conflict or apperr.Internal
*/
func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	const query = `
		INSERT INTO users (id, username, passwordhash, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := repository.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return dberr.Wrap(err, "auth_user_create", nil, errUsernameTaken())
}

/*
FindByUsername retrieves a user by exact username.

Parameters:
  - ctx: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or apperr.Internal
*/
func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, passwordhash, createdat, updatedat
		FROM users
		WHERE username = $1`

	user := &User{}
	err := repository.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "auth_user_find_by_username", errUserNotFound(), nil)
	}

	return user, nil
}
