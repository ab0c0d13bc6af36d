// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stickynote/internal/note"
	"github.com/taibuivan/stickynote/internal/platform/apperr"
	"github.com/taibuivan/stickynote/internal/platform/sec"
	"github.com/taibuivan/stickynote/pkg/uuid"
)

var (
	alice = sec.Identity{UserID: uuid.New(), Username: "alice"}
	bob   = sec.Identity{UserID: uuid.New(), Username: "bob"}
)

func newService(t *testing.T) (*note.Service, *note.MemoryRepository) {
	t.Helper()
	repository := note.NewMemoryRepository()
	return note.NewService(repository, slog.New(slog.NewJSONHandler(io.Discard, nil))), repository
}

func text(s string) *string { return &s }

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

/*
TestService_OwnershipIsolation verifies another user can neither see nor touch a note.
*/
func TestService_OwnershipIsolation(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, note.CreateInput{Title: "a"})
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, created.OwnerID)

	bobNotes, err := service.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobNotes)

	_, err = service.Get(ctx, bob, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = service.Update(ctx, bob, created.ID, note.Patch{Title: text("pwned")})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = service.Delete(ctx, bob, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	// Alice's note is untouched.
	stored, err := service.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Title)
}

/*
TestService_UniformNotFound verifies missing, foreign, and malformed ids produce the same error.
*/
func TestService_UniformNotFound(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	foreign, err := service.Create(ctx, bob, note.CreateInput{Title: "b"})
	require.NoError(t, err)

	ids := map[string]string{
		"missing":   uuid.New(),
		"foreign":   foreign.ID,
		"malformed": "not-a-uuid",
		"empty":     "",
	}

	var messages []string
	for name, id := range ids {
		t.Run(name, func(t *testing.T) {
			_, err := service.Get(ctx, alice, id)
			assert.Equal(t, http.StatusNotFound, statusOf(t, err))
			messages = append(messages, err.Error())
		})
	}

	for _, message := range messages {
		assert.Equal(t, messages[0], message)
	}
}

/*
TestService_PartialUpdate verifies omitted fields keep their value and supplied ones replace it.
*/
func TestService_PartialUpdate(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, note.CreateInput{Title: "groceries", Content: "milk"})
	require.NoError(t, err)

	// 1. Content only
	updated, err := service.Update(ctx, alice, created.ID, note.Patch{Content: text("X")})
	require.NoError(t, err)
	assert.Equal(t, "groceries", updated.Title)
	assert.Equal(t, "X", updated.Content)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	// 2. Title only
	updated, err = service.Update(ctx, alice, created.ID, note.Patch{Title: text("errands")})
	require.NoError(t, err)
	assert.Equal(t, "errands", updated.Title)
	assert.Equal(t, "X", updated.Content)

	// 3. Explicit empty content clears it
	updated, err = service.Update(ctx, alice, created.ID, note.Patch{Content: text("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Content)

	// 4. Empty patch changes nothing
	updated, err = service.Update(ctx, alice, created.ID, note.Patch{})
	require.NoError(t, err)
	assert.Equal(t, "errands", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

/*
TestService_Validation verifies bad titles are rejected and nothing is written.
*/
func TestService_Validation(t *testing.T) {
	service, repository := newService(t)
	ctx := context.Background()

	for _, title := range []string{"", "   ", strings.Repeat("t", note.MaxTitleLength+1)} {
		_, err := service.Create(ctx, alice, note.CreateInput{Title: title, Content: "body"})
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	}

	notes, err := repository.ListByOwner(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	created, err := service.Create(ctx, alice, note.CreateInput{Title: "kept"})
	require.NoError(t, err)
	assert.Equal(t, "", created.Content)

	_, err = service.Update(ctx, alice, created.ID, note.Patch{Title: text(" ")})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	stored, err := service.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", stored.Title)
}

/*
TestService_RejectsNullBytes verifies NUL in title or content is a ValidationError, not a storage failure.
*/
func TestService_RejectsNullBytes(t *testing.T) {
	service, repository := newService(t)
	ctx := context.Background()

	inputs := []note.CreateInput{
		{Title: "gro\x00ceries"},
		{Title: "groceries", Content: "milk\x00"},
	}
	for _, input := range inputs {
		_, err := service.Create(ctx, alice, input)
		assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
	}

	notes, err := repository.ListByOwner(ctx, alice.UserID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	created, err := service.Create(ctx, alice, note.CreateInput{Title: "kept", Content: "body"})
	require.NoError(t, err)

	for _, patch := range []note.Patch{{Title: text("\x00")}, {Content: text("a\x00b")}} {
		_, err := service.Update(ctx, alice, created.ID, patch)
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
		assert.Len(t, appError.Details, 1)
	}

	stored, err := service.Get(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "kept", stored.Title)
	assert.Equal(t, "body", stored.Content)
}

/*
TestService_UppercaseID verifies an id in any letter case reaches the same note.
*/
func TestService_UppercaseID(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, note.CreateInput{Title: "a"})
	require.NoError(t, err)
	upper := strings.ToUpper(created.ID)

	found, err := service.Get(ctx, alice, upper)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	updated, err := service.Update(ctx, alice, upper, note.Patch{Title: text("b")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "b", updated.Title)

	// Another owner still cannot reach it, whatever the case.
	_, err = service.Get(ctx, bob, upper)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	require.NoError(t, service.Delete(ctx, alice, upper))

	_, err = service.Get(ctx, alice, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

/*
TestService_DeleteTwice verifies a second delete of the same note is NotFound.
*/
func TestService_DeleteTwice(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, alice, note.CreateInput{Title: "a"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, alice, created.ID))

	err = service.Delete(ctx, alice, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	_, err = service.Get(ctx, alice, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

/*
TestService_ListNewestFirst verifies ordering and that an empty list is not nil.
*/
func TestService_ListNewestFirst(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	empty, err := service.List(ctx, alice)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		created, err := service.Create(ctx, alice, note.CreateInput{Title: title})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}

	notes, err := service.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{notes[0].ID, notes[1].ID, notes[2].ID})
}
