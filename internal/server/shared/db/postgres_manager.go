package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/finmate-app/finmate/internal/server/expenses"
	"github.com/finmate-app/finmate/internal/server/migrations"
	"github.com/finmate-app/finmate/internal/server/savings"
	"github.com/finmate-app/finmate/internal/server/users"
)

type PostgresRepositoryManager struct {
	db       *sql.DB
	users    users.Repository
	expenses expenses.Repository
	savings  savings.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Expenses() expenses.Repository {
	return m.expenses
}

func (m *PostgresRepositoryManager) Savings() savings.Repository {
	return m.savings
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	expenseRepo, err := expenses.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("expense repo creation error: %w", err)
	}

	savingsRepo, err := savings.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("savings repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:       db,
		users:    userRepo,
		expenses: expenseRepo,
		savings:  savingsRepo,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
