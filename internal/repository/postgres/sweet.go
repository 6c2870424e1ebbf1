package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/sweetshop-server/internal/model"
)

var _ model.SweetStore = (*SweetRepository)(nil)

const sweetColumns = `id, name, category, price, quantity, description, image_key, created_at, updated_at`

type SweetRepository struct {
	db TxBeginner
}

func NewSweetRepository(db TxBeginner) *SweetRepository {
	return &SweetRepository{
		db: db,
	}
}

func scanSweet(row pgx.Row) (model.Sweet, error) {
	var s model.Sweet
	err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity,
		&s.Description, &s.ImageKey, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// translateWriteError maps constraint violations to domain errors.
func translateWriteError(err error) error {
	code, constraint, ok := constraintViolation(err)
	if !ok {
		return nil
	}
	switch {
	case code == codeUniqueViolation && constraint == "sweets_name_key":
		return model.ErrDuplicateName
	case code == codeCheckViolation:
		return fmt.Errorf("%w: %s", model.ErrInvalidInput, constraint)
	}
	return nil
}

func (r *SweetRepository) Create(ctx context.Context, sweet model.Sweet) (model.Sweet, error) {
	query := `INSERT INTO sweets (name, category, price, quantity, description)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + sweetColumns

	saved, err := scanSweet(r.db.QueryRow(ctx, query,
		sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, sweet.Description,
	))
	if err != nil {
		if domainErr := translateWriteError(err); domainErr != nil {
			return model.Sweet{}, domainErr
		}
		return model.Sweet{}, fmt.Errorf("failed to create sweet: %w", err)
	}

	return saved, nil
}

func (r *SweetRepository) GetByID(ctx context.Context, id int64) (model.Sweet, error) {
	query := `SELECT ` + sweetColumns + ` FROM sweets WHERE id = $1`

	sweet, err := scanSweet(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Sweet{}, model.ErrNotFound
		}
		return model.Sweet{}, fmt.Errorf("failed to get sweet by id: %w", err)
	}

	return sweet, nil
}

func (r *SweetRepository) List(ctx context.Context) ([]model.Sweet, error) {
	query := `SELECT ` + sweetColumns + ` FROM sweets ORDER BY id`

	return r.query(ctx, query)
}

// Search builds a parameterized query from the set filter fields only.
func (r *SweetRepository) Search(ctx context.Context, filter model.SweetFilter) ([]model.Sweet, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Name != nil {
		add("name ILIKE $%d", likePattern(*filter.Name))
	}
	if filter.Category != nil {
		add("category ILIKE $%d", likePattern(*filter.Category))
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}

	query := `SELECT ` + sweetColumns + ` FROM sweets`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY id`

	return r.query(ctx, query, args...)
}

func (r *SweetRepository) query(ctx context.Context, query string, args ...any) ([]model.Sweet, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweets: %w", err)
	}
	defer rows.Close()

	sweets := make([]model.Sweet, 0)
	for rows.Next() {
		s, err := scanSweet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweet: %w", err)
		}
		sweets = append(sweets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sweets: %w", err)
	}

	return sweets, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (r *SweetRepository) Update(ctx context.Context, sweet model.Sweet) (model.Sweet, error) {
	query := `UPDATE sweets
			  SET name = $1, category = $2, price = $3, quantity = $4, description = $5, updated_at = NOW()
			  WHERE id = $6
			  RETURNING ` + sweetColumns

	saved, err := scanSweet(r.db.QueryRow(ctx, query,
		sweet.Name, sweet.Category, sweet.Price, sweet.Quantity, sweet.Description, sweet.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Sweet{}, model.ErrNotFound
		}
		if domainErr := translateWriteError(err); domainErr != nil {
			return model.Sweet{}, domainErr
		}
		return model.Sweet{}, fmt.Errorf("failed to update sweet: %w", err)
	}

	return saved, nil
}

func (r *SweetRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sweet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// AdjustQuantity locks the row with SELECT ... FOR UPDATE so concurrent
// adjustments of the same sweet are applied one at a time.
func (r *SweetRepository) AdjustQuantity(ctx context.Context, id int64, adjust func(current model.Sweet) (int, error)) (model.Sweet, error) {
	var updated model.Sweet

	err := WithTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		current, err := scanSweet(tx.QueryRow(ctx,
			`SELECT `+sweetColumns+` FROM sweets WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrNotFound
			}
			return fmt.Errorf("failed to lock sweet: %w", err)
		}

		quantity, err := adjust(current)
		if err != nil {
			return err
		}

		updated, err = scanSweet(tx.QueryRow(ctx,
			`UPDATE sweets SET quantity = $1, updated_at = NOW() WHERE id = $2 RETURNING `+sweetColumns,
			quantity, id))
		if err != nil {
			if domainErr := translateWriteError(err); domainErr != nil {
				return domainErr
			}
			return fmt.Errorf("failed to update quantity: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.Sweet{}, err
	}

	return updated, nil
}

func (r *SweetRepository) SetImageKey(ctx context.Context, id int64, key string) error {
	tag, err := r.db.Exec(ctx, `UPDATE sweets SET image_key = $1, updated_at = NOW() WHERE id = $2`, key, id)
	if err != nil {
		return fmt.Errorf("failed to set image key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
