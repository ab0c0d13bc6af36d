// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/stickynote/internal/platform/apperr"
	"github.com/taibuivan/stickynote/internal/platform/sec"
	"github.com/taibuivan/stickynote/internal/platform/validate"
	"github.com/taibuivan/stickynote/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher hashes and checks passwords. [*sec.Hasher] satisfies it.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs tokens for an identity. [*sec.TokenService] satisfies it.
type TokenIssuer interface {
	Issue(identity sec.Identity, timeToLive time.Duration) (string, error)
}

// Service implements the registration and login use cases.
type Service struct {
	userRepository UserRepository
	hasher         PasswordHasher
	tokenIssuer    TokenIssuer
	logger         *slog.Logger

	// dummyDigest is verified against when the username is unknown, so a
	// failed login costs one bcrypt comparison either way.
	dummyDigest string
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, hasher PasswordHasher, tokenIssuer TokenIssuer, logger *slog.Logger) (*Service, error) {
	dummyDigest, err := hasher.Hash(uuid.New())
	if err != nil {
		return nil, fmt.Errorf("auth: failed to prepare dummy digest: %w", err)
	}

	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		tokenIssuer:    tokenIssuer,
		logger:         logger,
		dummyDigest:    dummyDigest,
	}, nil
}

// # Registration Flow

// RegisterInput holds the data required to create an account.
type RegisterInput struct {
	Username string
	Password string
}

/*
Register validates, hashes, and persists a new account, then issues its first token.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *Session: Bearer token for the new account
  - error: ValidationError, Conflict (username taken) or Internal
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		NoNullBytes(FieldUsername, input.Username).
		Present(FieldPassword, input.Password).
		MaxBytes(FieldPassword, input.Password, MaxPasswordBytes)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_register_hash: %w", err))
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: passwordHash,
	}

	// The store decides uniqueness atomically; there is no pre-check to race.
	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return service.issue(user)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

/*
Login checks a username and password and issues a fresh token.

An unknown username and a wrong password produce the same error.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *Session: Bearer token
  - error: ValidationError, Unauthorized or Internal
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Present(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(ctx, input.Username)
	if err != nil {
		appError := apperr.As(err)
		if appError == nil || appError.HTTPStatus != http.StatusNotFound {
			return nil, err
		}

		service.hasher.Verify(input.Password, service.dummyDigest)
		return nil, errInvalidCredentials()
	}

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, errInvalidCredentials()
	}

	return service.issue(user)
}

func (service *Service) issue(user *User) (*Session, error) {
	token, err := service.tokenIssuer.Issue(user.Identity(), TokenTTL)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth_issue_token: %w", err))
	}
	return &Session{Token: token}, nil
}

func errInvalidCredentials() *apperr.AppError {
	return apperr.Unauthorized("Invalid login credentials")
}
