package store

import (
	"context"
	"errors"

	"daily-diary/server/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// UserStore is the credential store. CreateUser must enforce username
// uniqueness atomically and report a duplicate as ErrConflict.
type UserStore interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
	DeleteAllUsers(ctx context.Context) (int, error)
}

type TodoStore interface {
	CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error)
	ListTodos(ctx context.Context, userID, date string) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, userID, id string, p model.TodoPatch) (model.Todo, error)
	DeleteTodo(ctx context.Context, userID, id string) (model.Todo, error)
}

type ExpenseStore interface {
	CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error)
	ListExpenses(ctx context.Context, userID, date string) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) (model.Expense, error)
}

type NoteStore interface {
	GetNote(ctx context.Context, userID, date string) (*model.Note, error)
	UpsertNote(ctx context.Context, n model.Note) (model.Note, error)
}

type Store interface {
	UserStore
	TodoStore
	ExpenseStore
	NoteStore

	Ping(ctx context.Context) error
}
