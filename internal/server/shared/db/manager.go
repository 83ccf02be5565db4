package db

import (
	"context"
	"database/sql"

	"github.com/finmate-app/finmate/internal/server/expenses"
	"github.com/finmate-app/finmate/internal/server/savings"
	"github.com/finmate-app/finmate/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Expenses() expenses.Repository
	Savings() savings.Repository
}
