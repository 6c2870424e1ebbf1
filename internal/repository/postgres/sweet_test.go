package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sweetshop-server/internal/model"
)

var sweetCols = []string{"id", "name", "category", "price", "quantity", "description", "image_key", "created_at", "updated_at"}

func sweetRow(id int64, name string, qty int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(sweetCols).AddRow(id, name, "Chocolate", decimal.New(250, -2), qty, "", "", now, now)
}

func TestNewSweetRepository(t *testing.T) {
	db := &Connection{}
	repo := NewSweetRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestSweetRepository_Create(t *testing.T) {
	sweet := model.Sweet{Name: "Truffle", Category: "Chocolate", Price: decimal.New(250, -2), Quantity: 20}

	t.Run("success", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectQuery(`^INSERT INTO sweets`).
			WithArgs("Truffle", "Chocolate", decimal.New(250, -2), 20, "").
			WillReturnRows(sweetRow(1, "Truffle", 20))

		got, err := repo.Create(context.Background(), sweet)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "2.50", model.FormatPrice(got.Price))
		assert.Equal(t, 20, got.Quantity)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectQuery(`^INSERT INTO sweets`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "sweets_name_key"})

		_, err := repo.Create(context.Background(), sweet)
		assert.ErrorIs(t, err, model.ErrDuplicateName)
	})

	t.Run("unclassified failure", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectQuery(`^INSERT INTO sweets`).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(context.Background(), sweet)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrDuplicateName)
		assert.Contains(t, err.Error(), "failed to create sweet")
	})
}

func TestSweetRepository_GetByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSweetRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sweets WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows(sweetCols))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSweetRepository_List(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSweetRepository(mock)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM sweets ORDER BY id")).
		WillReturnRows(pgxmock.NewRows(sweetCols).
			AddRow(int64(1), "A", "C", decimal.New(100, -2), 1, "", "", now, now).
			AddRow(int64(2), "B", "C", decimal.New(200, -2), 2, "", "", now, now))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[1].Name)
}

func TestSweetRepository_Search(t *testing.T) {
	name := "choc_"
	category := "Bar"
	minPrice := decimal.New(100, -2)
	maxPrice := decimal.New(500, -2)

	tests := []struct {
		name   string
		filter model.SweetFilter
		query  string
		args   []any
	}{
		{
			name:   "no constraints",
			filter: model.SweetFilter{},
			query:  `FROM sweets ORDER BY id$`,
		},
		{
			name:   "name only escapes wildcards",
			filter: model.SweetFilter{Name: &name},
			query:  regexp.QuoteMeta(`FROM sweets WHERE name ILIKE $1 ORDER BY id`),
			args:   []any{`%choc\_%`},
		},
		{
			name:   "all constraints",
			filter: model.SweetFilter{Name: &name, Category: &category, MinPrice: &minPrice, MaxPrice: &maxPrice},
			query: regexp.QuoteMeta(
				`WHERE name ILIKE $1 AND category ILIKE $2 AND price >= $3 AND price <= $4 ORDER BY id`),
			args: []any{`%choc\_%`, `%Bar%`, minPrice, maxPrice},
		},
		{
			name:   "price range only",
			filter: model.SweetFilter{MaxPrice: &maxPrice},
			query:  regexp.QuoteMeta(`WHERE price <= $1 ORDER BY id`),
			args:   []any{maxPrice},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			repo := NewSweetRepository(mock)

			exp := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(sweetRow(1, "Chocolate Bar", 3))

			got, err := repo.Search(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}

func TestSweetRepository_Update(t *testing.T) {
	sweet := model.Sweet{ID: 4, Name: "Renamed", Category: "Chocolate", Price: decimal.New(250, -2), Quantity: 3}

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectQuery(`^UPDATE sweets`).
			WithArgs("Renamed", "Chocolate", decimal.New(250, -2), 3, "", int64(4)).
			WillReturnRows(pgxmock.NewRows(sweetCols))

		_, err := repo.Update(context.Background(), sweet)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("rename collides", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectQuery(`^UPDATE sweets`).
			WithArgs("Renamed", "Chocolate", decimal.New(250, -2), 3, "", int64(4)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "sweets_name_key"})

		_, err := repo.Update(context.Background(), sweet)
		assert.ErrorIs(t, err, model.ErrDuplicateName)
	})

	t.Run("success", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectQuery(`^UPDATE sweets`).
			WithArgs("Renamed", "Chocolate", decimal.New(250, -2), 3, "", int64(4)).
			WillReturnRows(sweetRow(4, "Renamed", 3))

		got, err := repo.Update(context.Background(), sweet)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Name)
	})
}

func TestSweetRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSweetRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sweets WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sweets WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), model.ErrNotFound)
}

func TestSweetRepository_AdjustQuantity(t *testing.T) {
	lockQuery := regexp.QuoteMeta("FROM sweets WHERE id = $1 FOR UPDATE")
	updateQuery := regexp.QuoteMeta("UPDATE sweets SET quantity = $1")

	t.Run("commits new quantity", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int64(1)).WillReturnRows(sweetRow(1, "Truffle", 20))
		mock.ExpectQuery(updateQuery).WithArgs(15, int64(1)).WillReturnRows(sweetRow(1, "Truffle", 15))
		mock.ExpectCommit()

		got, err := repo.AdjustQuantity(context.Background(), 1, func(current model.Sweet) (int, error) {
			assert.Equal(t, 20, current.Quantity)
			return current.Quantity - 5, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 15, got.Quantity)
	})

	t.Run("rejected adjustment rolls back", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int64(1)).WillReturnRows(sweetRow(1, "Truffle", 15))
		mock.ExpectRollback()

		_, err := repo.AdjustQuantity(context.Background(), 1, func(current model.Sweet) (int, error) {
			return 0, &model.InsufficientStockError{Available: current.Quantity}
		})

		var stockErr *model.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 15, stockErr.Available)
	})

	t.Run("missing row", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int64(99)).WillReturnRows(pgxmock.NewRows(sweetCols))
		mock.ExpectRollback()

		_, err := repo.AdjustQuantity(context.Background(), 99, func(model.Sweet) (int, error) {
			t.Fatal("adjust must not run for a missing row")
			return 0, nil
		})
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("check constraint", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewSweetRepository(mock)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(int64(1)).WillReturnRows(sweetRow(1, "Truffle", 1))
		mock.ExpectQuery(updateQuery).
			WithArgs(-1, int64(1)).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "sweets_quantity_check"})
		mock.ExpectRollback()

		_, err := repo.AdjustQuantity(context.Background(), 1, func(model.Sweet) (int, error) { return -1, nil })
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestSweetRepository_SetImageKey(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSweetRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE sweets SET image_key = $1")).
		WithArgs("sweets/1/image", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.SetImageKey(context.Background(), 1, "sweets/1/image"))
}

func TestWithTx_PanicRollsBack(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), mock, func(context.Context, DBTX) error {
			panic("boom")
		})
	})
}
