// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/stickynote/internal/platform/apperr"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		Create persists a brand-new user account.

		Uniqueness of the username is enforced here, atomically with the
		insert. Two concurrent registrations of the same name yield exactly
		one success.

		Parameters:
		  - ctx: context.Context
		  - user: *User (ID and PasswordHash already set)

		Returns:
		  - error: apperr.Conflict on a taken username, apperr.Internal otherwise
	*/
	Create(ctx context.Context, user *User) error

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - ctx: context.Context
		  - username: string (exact, case-sensitive match)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when absent, apperr.Internal otherwise
	*/
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// Errors shared by every [UserRepository] implementation.
func errUsernameTaken() *apperr.AppError { return apperr.Conflict("Username is already taken") }
func errUserNotFound() *apperr.AppError  { return apperr.NotFound("User") }
