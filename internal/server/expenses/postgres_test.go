package expenses

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo, err := NewPostgresRepository(db)
	if err != nil {
		t.Fatalf("NewPostgresRepository error: %v", err)
	}
	return repo, mock, db
}

var expenseColumns = []string{"id", "user_id", "description", "amount", "category", "expense_date", "created_at"}

// expense_date is a DATE column and comes back from the driver as
// time.Time; the repository must hand the service the YYYY-MM-DD string.
func TestList_FormatsExpenseDate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(expenseColumns).
		AddRow("e-1", "u-1", "groceries", 42.5, "food",
			time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), time.Now()).
		AddRow("e-2", "u-1", "bus pass", 30.0, "transportation",
			time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Now())
	mock.ExpectQuery(`(?s)^\s*SELECT .* FROM expenses\s+WHERE user_id = \$1`).
		WithArgs("u-1", "", "").
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), "u-1", "", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "2026-02-14", list[0].Date)
	require.Equal(t, "2026-02-01", list[1].Date)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_FormatsExpenseDate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(expenseColumns).
		AddRow("e-1", "u-1", "groceries", 42.5, "food",
			time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), time.Now())
	mock.ExpectQuery(`(?s)^\s*SELECT .* FROM expenses\s+WHERE id = \$1`).
		WithArgs("e-1").
		WillReturnRows(rows)

	e, err := repo.GetByID(context.Background(), "e-1")
	require.NoError(t, err)
	require.Equal(t, "2026-02-14", e.Date)
}
