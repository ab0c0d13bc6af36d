// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account registration and login.

It owns the user credential records and turns a successful registration or
login into a signed bearer token. Verifying that token on later requests is
the job of [middleware.Authenticate]; nothing in this package is consulted
per request.

# Architecture

  - Service: Orchestrates validation, hashing, persistence, and token issuance.
  - Repository: [UserRepository] with PostgreSQL and in-memory implementations.
  - Handler: The POST /register and POST /login endpoints.
*/
package auth

import (
	"time"

	"github.com/taibuivan/stickynote/internal/platform/sec"
)

// # Domain Entities

// User is a registered account. Usernames are unique and case-sensitive.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity returns the claims bound into this user's tokens.
func (user *User) Identity() sec.Identity {
	return sec.Identity{UserID: user.ID, Username: user.Username}
}

// Session is the credential handed back by Register and Login.
type Session struct {
	Token string `json:"token"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
)
