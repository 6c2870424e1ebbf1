package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/sweetshop-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, name, contact_number, email, password_hash, status, role, created_at, updated_at`

type AccountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Name, &a.ContactNumber, &a.Email, &a.PasswordHash,
		&a.Status, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (name, contact_number, email, password_hash, status, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.Name, account.ContactNumber, account.Email, account.PasswordHash,
		string(account.Status), string(account.Role),
	))
	if err != nil {
		if code, _, ok := constraintViolation(err); ok && code == codeUniqueViolation {
			return model.Account{}, model.ErrEmailTaken
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) UpdateStatus(ctx context.Context, id int64, status model.AccountStatus) (int64, error) {
	query := `UPDATE accounts SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.db.Exec(ctx, query, string(status), id)
	if err != nil {
		return 0, fmt.Errorf("failed to update account status: %w", err)
	}

	return tag.RowsAffected(), nil
}
