package savings

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

func (r *PostgresRepository) Create(ctx context.Context, goal *Goal) (*Goal, error) {

	query :=
		`INSERT INTO savings_goals (user_id, name, target_amount, current_amount, target_date, priority)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.TargetDate, goal.Priority).
		Scan(&goal.ID, &goal.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return goal, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]Goal, error) {

	query :=
		`SELECT id, user_id, name, target_amount, current_amount, target_date, priority, created_at
		 FROM savings_goals
		 WHERE user_id = $1
		 ORDER BY priority, target_date
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []Goal
	for rows.Next() {
		var g Goal
		// target_date is a DATE column; the driver surfaces it as time.Time.
		var targetDate time.Time
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&targetDate, &g.Priority, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		g.TargetDate = targetDate.Format("2006-01-02")
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Goal, error) {

	query :=
		`SELECT id, user_id, name, target_amount, current_amount, target_date, priority, created_at
		 FROM savings_goals
		 WHERE id = $1
		 `

	g := &Goal{}
	var targetDate time.Time
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&targetDate, &g.Priority, &g.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	g.TargetDate = targetDate.Format("2006-01-02")

	return g, nil
}

func (r *PostgresRepository) UpdateCurrentAmount(ctx context.Context, id string, amount float64) (*Goal, error) {

	query :=
		`UPDATE savings_goals SET current_amount = $2
		 WHERE id = $1
		 RETURNING id, user_id, name, target_amount, current_amount, target_date, priority, created_at
		 `

	g := &Goal{}
	var targetDate time.Time
	err := r.db.QueryRowContext(ctx, query, id, amount).
		Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&targetDate, &g.Priority, &g.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	g.TargetDate = targetDate.Format("2006-01-02")

	return g, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {

	res, err := r.db.ExecContext(ctx, `DELETE FROM savings_goals WHERE id = $1`, id)
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
