// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package note

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/stickynote/pkg/pointer"
)

// MemoryRepository is a process-local [Repository] used with
// STORAGE_DRIVER=memory and in tests. Data is lost on restart.
type MemoryRepository struct {
	mu    sync.RWMutex
	notes map[string]Note
}

// NewMemoryRepository creates an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{notes: make(map[string]Note)}
}

// Create implements [Repository].
func (repository *MemoryRepository) Create(_ context.Context, note *Note) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now
	repository.notes[note.ID] = *note

	return nil
}

// FindByIDAndOwner implements [Repository].
func (repository *MemoryRepository) FindByIDAndOwner(_ context.Context, id, ownerID string) (*Note, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	note, found := repository.notes[id]
	if !found || note.OwnerID != ownerID {
		return nil, errNoteNotFound()
	}

	return &note, nil
}

// ListByOwner implements [Repository].
func (repository *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Note, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	notes := []*Note{}
	for _, note := range repository.notes {
		if note.OwnerID == ownerID {
			notes = append(notes, &note)
		}
	}

	// Newest first; ids are time-ordered and break ties within a clock tick.
	slices.SortFunc(notes, func(a, b *Note) int {
		if order := b.CreatedAt.Compare(a.CreatedAt); order != 0 {
			return order
		}
		return cmp.Compare(b.ID, a.ID)
	})

	return notes, nil
}

// UpdateByIDAndOwner implements [Repository].
func (repository *MemoryRepository) UpdateByIDAndOwner(_ context.Context, id, ownerID string, patch Patch) (*Note, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	note, found := repository.notes[id]
	if !found || note.OwnerID != ownerID {
		return nil, errNoteNotFound()
	}

	note.Title = pointer.Fallback(patch.Title, note.Title)
	note.Content = pointer.Fallback(patch.Content, note.Content)
	note.UpdatedAt = time.Now().UTC()
	repository.notes[id] = note

	return &note, nil
}

// DeleteByIDAndOwner implements [Repository].
func (repository *MemoryRepository) DeleteByIDAndOwner(_ context.Context, id, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	note, found := repository.notes[id]
	if !found || note.OwnerID != ownerID {
		return errNoteNotFound()
	}

	delete(repository.notes, id)
	return nil
}
