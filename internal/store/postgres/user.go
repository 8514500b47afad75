package postgres

import (
	"context"

	"daily-diary/server/internal/model"
)

// CreateUser relies on users_username_key to reject duplicates; a losing
// concurrent insert surfaces as store.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := s.pool.QueryRow(ctx, `
		insert into public.users (username, password_hash)
		values ($1, $2)
		returning id::text, username, password_hash, created_at
	`, u.Username, u.PasswordHash).Scan(
		&out.ID,
		&out.Username,
		&out.PasswordHash,
		&out.CreatedAt,
	)
	if err != nil {
		return model.User{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		select id::text, username, password_hash, created_at
		from public.users
		where username = $1
	`, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &u, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `select count(*) from public.users`).Scan(&n); err != nil {
		return 0, mapPgErr(err)
	}
	return n, nil
}

func (s *Store) DeleteAllUsers(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `delete from public.users`)
	if err != nil {
		return 0, mapPgErr(err)
	}
	return int(tag.RowsAffected()), nil
}
