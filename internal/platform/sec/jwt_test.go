// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stickynote/internal/platform/sec"
)

var (
	testSecret   = []byte("0123456789abcdef0123456789abcdef")
	testIdentity = sec.Identity{UserID: "0190c6a0-0000-7000-8000-000000000001", Username: "alice"}
)

// fakeClock is a settable time source shared by issuer and verifier.
type fakeClock struct{ current time.Time }

func (clock *fakeClock) now() time.Time { return clock.current }

func newService(t *testing.T, clock *fakeClock) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(testSecret, "stickynote", sec.WithClock(clock.now))
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip verifies that an issued token verifies to the same identity until expiry.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	service := newService(t, clock)

	token, err := service.Issue(testIdentity, 8*time.Hour)
	require.NoError(t, err)

	// 1. Just before the ttl elapses
	clock.current = clock.current.Add(8*time.Hour - time.Second)
	identity, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, *identity)

	// 2. After the ttl elapses
	clock.current = clock.current.Add(2 * time.Second)
	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestTokenService_UniquePerIssue verifies two tokens for the same user differ but both verify.
*/
func TestTokenService_UniquePerIssue(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	service := newService(t, clock)

	first, err := service.Issue(testIdentity, time.Hour)
	require.NoError(t, err)
	second, err := service.Issue(testIdentity, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, token := range []string{first, second} {
		identity, err := service.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, testIdentity.UserID, identity.UserID)
	}
}

/*
TestTokenService_TamperedSignature flips a single signature bit and expects BadSignature.
*/
func TestTokenService_TamperedSignature(t *testing.T) {
	service := newService(t, &fakeClock{current: time.Now()})

	token, err := service.Issue(testIdentity, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	signature[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(signature)

	_, err = service.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, sec.ErrTokenBadSignature)
}

/*
TestTokenService_TamperedClaims rewrites the payload and expects BadSignature.
*/
func TestTokenService_TamperedClaims(t *testing.T) {
	service := newService(t, &fakeClock{current: time.Now()})

	token, err := service.Issue(testIdentity, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	forged := strings.Replace(string(payload), `"unm":"alice"`, `"unm":"mallory"`, 1)
	require.NotEqual(t, string(payload), forged)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = service.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, sec.ErrTokenBadSignature)
}

/*
TestTokenService_RotatedSecret verifies a token signed with another secret is rejected.
*/
func TestTokenService_RotatedSecret(t *testing.T) {
	clock := &fakeClock{current: time.Now()}
	oldService, err := sec.NewTokenService([]byte("an-old-secret-that-was-rotated-out"), "stickynote", sec.WithClock(clock.now))
	require.NoError(t, err)

	token, err := oldService.Issue(testIdentity, time.Hour)
	require.NoError(t, err)

	_, err = newService(t, clock).Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenBadSignature)
}

/*
TestTokenService_Malformed covers inputs that never parse as a token.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newService(t, &fakeClock{current: time.Now()})

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"three_garbage_segments", "not.a.jwt"},
		{"two_segments", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
		})
	}
}

/*
TestTokenService_RejectsOtherAlgorithms verifies only HS256 is accepted.
*/
func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	service := newService(t, &fakeClock{current: time.Now()})

	claims := sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "stickynote",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: testIdentity.UserID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, sec.ErrTokenBadSignature)
}

/*
TestTokenService_RequiresClaims verifies correctly signed tokens still need exp and uid.
*/
func TestTokenService_RequiresClaims(t *testing.T) {
	service := newService(t, &fakeClock{current: time.Now()})

	tests := []struct {
		name   string
		claims sec.AuthClaims
	}{
		{"missing_exp", sec.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "stickynote"},
			UserID:           testIdentity.UserID,
		}},
		{"missing_uid", sec.AuthClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "stickynote",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString(testSecret)
			require.NoError(t, err)

			_, err = service.Verify(token)
			assert.ErrorIs(t, err, sec.ErrTokenMalformed)
		})
	}
}

/*
TestNewTokenService_EmptySecret verifies an empty secret is refused.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService(nil, "stickynote")
	assert.Error(t, err)
}
