package memory

import (
	"context"
	"strings"
	"time"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"
)

func (s *Store) CreateExpense(_ context.Context, e model.Expense) (model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(e.UserID) == "" {
		return model.Expense{}, errWithCode("user_id_required")
	}
	if e.Amount <= 0 {
		return model.Expense{}, errWithCode("amount_must_be_positive")
	}

	e.ID = newID()
	e.CreatedAt = s.now()
	s.expenses[e.ID] = e
	return e, nil
}

func (s *Store) ListExpenses(_ context.Context, userID, date string) ([]model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID == userID && e.Date == date {
			out = append(out, e)
		}
	}
	sortByCreated(out, func(e model.Expense) time.Time { return e.CreatedAt })
	return out, nil
}

func (s *Store) DeleteExpense(_ context.Context, userID, id string) (model.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok || e.UserID != userID {
		return model.Expense{}, store.ErrNotFound
	}
	delete(s.expenses, id)
	return e, nil
}
