// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// TokenTTL is how long an issued token stays valid. There is no refresh
	// or revocation; a client logs in again once it expires.
	TokenTTL = 8 * time.Hour

	// MaxUsernameLength matches the users.username column.
	MaxUsernameLength = 255

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72
)
