// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stickynote/internal/auth"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

/*
TestPostgresUserRepository_Create covers the insert and its error classification.
*/
func TestPostgresUserRepository_Create(t *testing.T) {
	tests := []struct {
		name       string
		dbErr      error
		wantStatus int
	}{
		{"inserted", nil, 0},
		{"username_taken", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, http.StatusConflict},
		{"connection_lost", errors.New("conn closed"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			repository := auth.NewPostgresUserRepository(mock)

			expectation := mock.ExpectExec(`INSERT INTO users`).
				WithArgs("user-1", "alice", "digest", pgxmock.AnyArg(), pgxmock.AnyArg())
			if tt.dbErr != nil {
				expectation.WillReturnError(tt.dbErr)
			} else {
				expectation.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			user := &auth.User{ID: "user-1", Username: "alice", PasswordHash: "digest"}
			err := repository.Create(context.Background(), user)

			if tt.wantStatus == 0 {
				require.NoError(t, err)
				assert.False(t, user.CreatedAt.IsZero())
				return
			}
			assert.Equal(t, tt.wantStatus, statusOf(t, err))
		})
	}
}

/*
TestPostgresUserRepository_FindByUsername covers hydration and the not-found mapping.
*/
func TestPostgresUserRepository_FindByUsername(t *testing.T) {
	columns := []string{"id", "username", "passwordhash", "createdat", "updatedat"}
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`SELECT id, username, passwordhash, createdat, updatedat\s+FROM users\s+WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(mock.NewRows(columns).AddRow("user-1", "alice", "digest", createdAt, createdAt))

		user, err := auth.NewPostgresUserRepository(mock).FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, &auth.User{ID: "user-1", Username: "alice", PasswordHash: "digest", CreatedAt: createdAt, UpdatedAt: createdAt}, user)
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`FROM users`).WithArgs("bob").WillReturnError(pgx.ErrNoRows)

		_, err := auth.NewPostgresUserRepository(mock).FindByUsername(context.Background(), "bob")
		assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	})
}
