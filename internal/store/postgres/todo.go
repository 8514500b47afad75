package postgres

import (
	"context"

	"daily-diary/server/internal/model"
)

const todoColumns = `id::text, user_id::text, title, description, date::text, status, priority, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (model.Todo, error) {
	var t model.Todo
	var priority string
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Date, &t.Status, &priority, &t.CreatedAt)
	t.Priority = model.Priority(priority)
	return t, err
}

func (s *Store) CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error) {
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	out, err := scanTodo(s.pool.QueryRow(ctx, `
		insert into public.todos (user_id, title, description, date, status, priority)
		values ($1::uuid, $2, $3, $4::date, $5, $6)
		returning `+todoColumns,
		t.UserID, t.Title, t.Description, t.Date, t.Status, string(t.Priority),
	))
	if err != nil {
		return model.Todo{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) ListTodos(ctx context.Context, userID, date string) ([]model.Todo, error) {
	rows, err := s.pool.Query(ctx, `
		select `+todoColumns+`
		from public.todos
		where user_id = $1::uuid and date = $2::date
		order by created_at asc
	`, userID, date)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	out := make([]model.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) UpdateTodo(ctx context.Context, userID, id string, p model.TodoPatch) (model.Todo, error) {
	var priority *string
	if p.Priority != nil {
		v := string(*p.Priority)
		priority = &v
	}

	out, err := scanTodo(s.pool.QueryRow(ctx, `
		update public.todos
		set title = coalesce($3, title),
		    description = case when $4::boolean then nullif($5, '') else description end,
		    status = coalesce($6, status),
		    priority = coalesce($7, priority)
		where id = $1::uuid and user_id = $2::uuid
		returning `+todoColumns,
		id, userID, p.Title, p.Description != nil, p.Description, p.Status, priority,
	))
	if err != nil {
		return model.Todo{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) DeleteTodo(ctx context.Context, userID, id string) (model.Todo, error) {
	out, err := scanTodo(s.pool.QueryRow(ctx, `
		delete from public.todos
		where id = $1::uuid and user_id = $2::uuid
		returning `+todoColumns,
		id, userID,
	))
	if err != nil {
		return model.Todo{}, mapPgErr(err)
	}
	return out, nil
}
