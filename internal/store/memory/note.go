package memory

import (
	"context"
	"strings"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"
)

func noteKey(userID, date string) string {
	return userID + "|" + date
}

func (s *Store) GetNote(_ context.Context, userID, date string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[noteKey(userID, date)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &n, nil
}

// UpsertNote keeps the note id stable across updates of the same day.
func (s *Store) UpsertNote(_ context.Context, n model.Note) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(n.UserID) == "" {
		return model.Note{}, errWithCode("user_id_required")
	}

	key := noteKey(n.UserID, n.Date)
	if existing, ok := s.notes[key]; ok {
		n.ID = existing.ID
	} else {
		n.ID = newID()
	}
	n.UpdatedAt = s.now()
	s.notes[key] = n
	return n, nil
}
