package postgres

import (
	"context"

	"daily-diary/server/internal/model"
)

func (s *Store) GetNote(ctx context.Context, userID, date string) (*model.Note, error) {
	var n model.Note
	err := s.pool.QueryRow(ctx, `
		select id::text, user_id::text, date::text, content, updated_at
		from public.notes
		where user_id = $1::uuid and date = $2::date
	`, userID, date).Scan(&n.ID, &n.UserID, &n.Date, &n.Content, &n.UpdatedAt)
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &n, nil
}

// UpsertNote leans on notes_user_date_key so concurrent saves of one day
// collapse into a single row.
func (s *Store) UpsertNote(ctx context.Context, n model.Note) (model.Note, error) {
	var out model.Note
	err := s.pool.QueryRow(ctx, `
		insert into public.notes (user_id, date, content)
		values ($1::uuid, $2::date, $3)
		on conflict (user_id, date) do update
		set content = excluded.content,
		    updated_at = now()
		returning id::text, user_id::text, date::text, content, updated_at
	`, n.UserID, n.Date, n.Content).Scan(&out.ID, &out.UserID, &out.Date, &out.Content, &out.UpdatedAt)
	if err != nil {
		return model.Note{}, mapPgErr(err)
	}
	return out, nil
}
