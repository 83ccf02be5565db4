package expenses

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finmate-app/finmate/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, expense *Expense) (*Expense, error) {

	query :=
		`INSERT INTO expenses (user_id, description, amount, category, expense_date)
         VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		expense.UserID, expense.Description, expense.Amount, expense.Category, expense.Date).
		Scan(&expense.ID, &expense.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return expense, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID, startDate, endDate string) ([]Expense, error) {

	query :=
		`SELECT id, user_id, description, amount, category, expense_date, created_at FROM expenses
		 WHERE user_id = $1
		   AND ($2 = '' OR expense_date >= $2::date)
		   AND ($3 = '' OR expense_date <= $3::date)
		 ORDER BY expense_date DESC, created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []Expense
	for rows.Next() {
		var e Expense
		// expense_date is a DATE column; the driver surfaces it as time.Time.
		var expenseDate time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &expenseDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		e.Date = expenseDate.Format("2006-01-02")
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Expense, error) {

	query :=
		`SELECT id, user_id, description, amount, category, expense_date, created_at FROM expenses
		 WHERE id = $1
		 `

	e := &Expense{}
	var expenseDate time.Time
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &expenseDate, &e.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	e.Date = expenseDate.Format("2006-01-02")

	return e, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {

	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
