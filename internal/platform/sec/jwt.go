// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. Both [Hasher] and [TokenService] are built once from
// configuration and injected through constructors; nothing here reads global
// state.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/stickynote/pkg/uuid"
)

// # Rejection Reasons

var (
	// ErrTokenMalformed is returned for anything that does not parse as a
	// complete token carrying our identity claims.
	ErrTokenMalformed = errors.New("sec: token malformed")

	// ErrTokenBadSignature is returned when the signature does not match the
	// claims under the server secret, or the algorithm is not HS256.
	ErrTokenBadSignature = errors.New("sec: token signature invalid")

	// ErrTokenExpired is returned when a correctly signed token is past its exp.
	ErrTokenExpired = errors.New("sec: token expired")
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// UserID and Username let [middleware.Authenticate] rebuild the caller's
// identity without a database round trip.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID   string `json:"uid"`
	Username string `json:"unm"`
}

// TokenService issues and verifies HS256 tokens with a process-wide secret.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// Option customizes a [TokenService].
type Option func(*TokenService)

// WithClock replaces the wall clock used for iat/exp and for verification.
func WithClock(now func() time.Time) Option {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret []byte, issuer string, options ...Option) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("sec: empty signing secret")
	}

	service := &TokenService{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}

	return service, nil
}

// Issue creates a signed token for identity that expires after timeToLive.
//
// Each token carries a unique jti, so two tokens issued for the same user in
// the same second still differ.
func (service *TokenService) Issue(identity Identity, timeToLive time.Duration) (string, error) {
	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   identity.UserID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID:   identity.UserID,
		Username: identity.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks structure, signature, then expiry, and returns the identity
// the token was issued for.
//
// Errors are always one of [ErrTokenMalformed], [ErrTokenBadSignature] or
// [ErrTokenExpired], wrapping the underlying parser error.
func (service *TokenService) Verify(tokenString string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)

	claims := &AuthClaims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return service.secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, fmt.Errorf("%w: %w", ErrTokenBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing uid claim", ErrTokenMalformed)
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
