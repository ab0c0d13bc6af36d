// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/stickynote/internal/platform/apperr"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
//   - no rows            -> notFound (caller supplied, so messages stay resource-specific)
//   - unique violation   -> conflict (caller supplied)
//   - anything else      -> INTERNAL_ERROR carrying "action: cause" for the logs
//
// Either of notFound and conflict may be nil, in which case that class falls
// through to INTERNAL_ERROR.
func Wrap(err error, action string, notFound, conflict *apperr.AppError) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack.
	if appError := apperr.As(err); appError != nil {
		return appError
	}

	if notFound != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}

	if conflict != nil && IsUniqueViolation(err) {
		return conflict
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) && pgError.Code == pgUniqueViolation
}
