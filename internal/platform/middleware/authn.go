// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/stickynote/internal/platform/apperr"
	"github.com/taibuivan/stickynote/internal/platform/constants"
	"github.com/taibuivan/stickynote/internal/platform/ctxutil"
	"github.com/taibuivan/stickynote/internal/platform/respond"
	"github.com/taibuivan/stickynote/internal/platform/sec"
)

// TokenVerifier turns a bearer credential into the identity it was issued for.
// [*sec.TokenService] satisfies it.
type TokenVerifier interface {
	Verify(token string) (*sec.Identity, error)
}

var (
	// ErrMissingCredential means the Authorization header is absent or is not
	// a well-formed bearer credential.
	ErrMissingCredential = errors.New("authn: missing bearer credential")

	// ErrInvalidCredential means the credential was present but did not verify.
	ErrInvalidCredential = errors.New("authn: invalid bearer credential")
)

// unauthorized is the only rejection a client ever sees from the gate.
func unauthorized() *apperr.AppError {
	return apperr.Unauthorized("Invalid or missing authentication token")
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header value. The scheme is case-insensitive.
func BearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constants.BearerScheme) {
		return "", ErrMissingCredential
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMissingCredential
	}

	return token, nil
}

// Authenticate rejects any request that does not carry a valid bearer token.
//
// # Flow
//  1. Extract the token from the Authorization header.
//  2. Verify it via [TokenVerifier]. No database lookup is made; a user
//     deleted after issuance stays trusted until the token expires.
//  3. Bind the resolved [*sec.Identity] to the request context.
//
// Missing and invalid credentials produce the same 401 body. The precise
// reason is logged at warn level only.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			// 1. Extraction
			token, err := BearerToken(request.Header.Get(constants.HeaderAuthorization))
			if err != nil {
				logger.WarnContext(request.Context(), "auth_rejected", slog.String("reason", err.Error()))
				respond.Error(writer, request, unauthorized())
				return
			}

			// 2. Verification
			identity, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(request.Context(), "auth_rejected",
					slog.String("reason", ErrInvalidCredential.Error()),
					slog.String("detail", err.Error()),
				)
				respond.Error(writer, request, unauthorized())
				return
			}

			// 3. Binding
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			trackIdentity(ctx, identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Log Correlation

type identityTrackerKey struct{}

// identityTracker lets [StructuredLogger], which wraps the router, learn the
// user bound by [Authenticate], which runs inside a route group.
type identityTracker struct {
	userID string
}

func withIdentityTracker(ctx context.Context, tracker *identityTracker) context.Context {
	return context.WithValue(ctx, identityTrackerKey{}, tracker)
}

func trackIdentity(ctx context.Context, identity *sec.Identity) {
	if tracker, ok := ctx.Value(identityTrackerKey{}).(*identityTracker); ok {
		tracker.userID = identity.UserID
	}
}
