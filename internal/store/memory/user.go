package memory

import (
	"context"
	"strings"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"
)

// CreateUser holds the store lock across the uniqueness scan and the insert,
// so two concurrent creates of one username cannot both succeed.
func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.TrimSpace(u.Username)
	if username == "" {
		return model.User{}, errWithCode("username_required")
	}

	for _, existing := range s.users {
		if existing.Username == username {
			return model.User{}, store.ErrConflict
		}
	}

	u.ID = newID()
	u.Username = username
	u.CreatedAt = s.now()
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users), nil
}

// DeleteAllUsers also drops every todo, expense and note, matching the
// cascading foreign keys of the postgres schema.
func (s *Store) DeleteAllUsers(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.users)
	s.users = make(map[string]model.User)
	s.todos = make(map[string]model.Todo)
	s.expenses = make(map[string]model.Expense)
	s.notes = make(map[string]model.Note)
	return n, nil
}
