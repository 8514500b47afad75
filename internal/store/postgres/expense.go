package postgres

import (
	"context"

	"daily-diary/server/internal/model"
)

const expenseColumns = `id::text, user_id::text, amount, category, date::text, note, created_at`

func scanExpense(row rowScanner) (model.Expense, error) {
	var e model.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Date, &e.Note, &e.CreatedAt)
	return e, err
}

func (s *Store) CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	out, err := scanExpense(s.pool.QueryRow(ctx, `
		insert into public.expenses (user_id, amount, category, date, note)
		values ($1::uuid, $2, $3, $4::date, $5)
		returning `+expenseColumns,
		e.UserID, e.Amount, e.Category, e.Date, e.Note,
	))
	if err != nil {
		return model.Expense{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) ListExpenses(ctx context.Context, userID, date string) ([]model.Expense, error) {
	rows, err := s.pool.Query(ctx, `
		select `+expenseColumns+`
		from public.expenses
		where user_id = $1::uuid and date = $2::date
		order by created_at asc
	`, userID, date)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	out := make([]model.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id string) (model.Expense, error) {
	out, err := scanExpense(s.pool.QueryRow(ctx, `
		delete from public.expenses
		where id = $1::uuid and user_id = $2::uuid
		returning `+expenseColumns,
		id, userID,
	))
	if err != nil {
		return model.Expense{}, mapPgErr(err)
	}
	return out, nil
}
