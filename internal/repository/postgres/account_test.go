package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sweetshop-server/internal/model"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var accountCols = []string{"id", "name", "contact_number", "email", "password_hash", "status", "role", "created_at", "updated_at"}

func TestNewAccountRepository(t *testing.T) {
	db := &Connection{}
	repo := NewAccountRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAccountRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("alice@example.com").
			WillReturnRows(pgxmock.NewRows(accountCols).
				AddRow(int64(7), "Alice", "555-0100", "alice@example.com", "hash", model.StatusApproved, model.RoleAdmin, now, now))

		got, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, model.StatusApproved, got.Status)
		assert.Equal(t, model.RoleAdmin, got.Role)
		assert.Equal(t, "hash", got.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAccountRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("ghost@example.com").
			WillReturnRows(pgxmock.NewRows(accountCols))

		_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAccountRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE email = $1")).
			WithArgs("alice@example.com").
			WillReturnError(errors.New("db down"))

		_, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrNotFound)
		assert.NotErrorIs(t, err, pgx.ErrNoRows)
		assert.Contains(t, err.Error(), "db down")
	})
}

func TestAccountRepository_Create(t *testing.T) {
	now := time.Now()
	account := model.Account{
		Name:          "Carol",
		ContactNumber: "555-0101",
		Email:         "carol@example.com",
		PasswordHash:  "hash",
		Status:        model.StatusPending,
		Role:          model.RoleUser,
	}

	t.Run("success", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAccountRepository(mock)

		mock.ExpectQuery(`^INSERT INTO accounts`).
			WithArgs("Carol", "555-0101", "carol@example.com", "hash", "pending", "user").
			WillReturnRows(pgxmock.NewRows(accountCols).
				AddRow(int64(11), "Carol", "555-0101", "carol@example.com", "hash", model.StatusPending, model.RoleUser, now, now))

		got, err := repo.Create(context.Background(), account)
		require.NoError(t, err)
		assert.Equal(t, int64(11), got.ID)
		assert.Equal(t, model.StatusPending, got.Status)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAccountRepository(mock)

		mock.ExpectQuery(`^INSERT INTO accounts`).
			WithArgs("Carol", "555-0101", "carol@example.com", "hash", "pending", "user").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})

		_, err := repo.Create(context.Background(), account)
		assert.ErrorIs(t, err, model.ErrEmailTaken)
	})
}

func TestAccountRepository_UpdateStatus(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAccountRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET status = $1")).
		WithArgs("approved", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET status = $1")).
		WithArgs("approved", int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	n, err := repo.UpdateStatus(context.Background(), 5, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.UpdateStatus(context.Background(), 404, model.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
