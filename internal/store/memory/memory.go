package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"daily-diary/server/internal/model"
	"daily-diary/server/internal/store"

	"github.com/google/uuid"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.Mutex

	users    map[string]model.User
	todos    map[string]model.Todo
	expenses map[string]model.Expense

	// keyed by noteKey(userID, date)
	notes map[string]model.Note

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]model.User),
		todos:    make(map[string]model.Todo),
		expenses: make(map[string]model.Expense),
		notes:    make(map[string]model.Note),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Ping(_ context.Context) error { return nil }

type errWithCode string

func (e errWithCode) Error() string { return string(e) }

func newID() string {
	return uuid.NewString()
}

func sortByCreated[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).Before(created(items[j]))
	})
}
