package memory

import (
	"context"
	"strings"
	"time"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"
)

func (s *Store) CreateTodo(_ context.Context, t model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(t.UserID) == "" {
		return model.Todo{}, errWithCode("user_id_required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return model.Todo{}, errWithCode("title_required")
	}

	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	t.ID = newID()
	t.CreatedAt = s.now()
	s.todos[t.ID] = t
	return t, nil
}

func (s *Store) ListTodos(_ context.Context, userID, date string) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Todo, 0)
	for _, t := range s.todos {
		if t.UserID == userID && t.Date == date {
			out = append(out, t)
		}
	}
	sortByCreated(out, func(t model.Todo) time.Time { return t.CreatedAt })
	return out, nil
}

func (s *Store) UpdateTodo(_ context.Context, userID, id string, p model.TodoPatch) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return model.Todo{}, store.ErrNotFound
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			t.Description = nil
		} else {
			d := *p.Description
			t.Description = &d
		}
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}

	s.todos[id] = t
	return t, nil
}

func (s *Store) DeleteTodo(_ context.Context, userID, id string) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return model.Todo{}, store.ErrNotFound
	}
	delete(s.todos, id)
	return t, nil
}
