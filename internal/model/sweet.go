package model

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength bounds Sweet.Description in characters.
const MaxDescriptionLength = 500

// SweetStore defines persistence operations for inventory items.
type SweetStore interface {
	Create(ctx context.Context, sweet Sweet) (Sweet, error)
	GetByID(ctx context.Context, id int64) (Sweet, error)
	List(ctx context.Context) ([]Sweet, error)
	Search(ctx context.Context, filter SweetFilter) ([]Sweet, error)
	Update(ctx context.Context, sweet Sweet) (Sweet, error)
	Delete(ctx context.Context, id int64) error
	// AdjustQuantity runs adjust against the current record while holding an
	// exclusive lock on it and persists the returned quantity. If adjust fails
	// nothing is written and its error is returned unchanged.
	AdjustQuantity(ctx context.Context, id int64, adjust func(current Sweet) (int, error)) (Sweet, error)
	SetImageKey(ctx context.Context, id int64, key string) error
}

// Sweet represents an inventory item.
type Sweet struct {
	ID          int64
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Description string
	ImageKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SweetParams carries the writable fields of a sweet for add and full-replace update.
type SweetParams struct {
	Name        string
	Category    string
	Price       decimal.Decimal
	Quantity    int
	Description string
}

// Validate checks field constraints that do not need the store.
func (p SweetParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if err := ValidatePrice(p.Price); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}
	if utf8.RuneCountInString(p.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, MaxDescriptionLength)
	}
	return nil
}

// SweetFilter holds optional search constraints. A nil field means no constraint.
// Name and Category match case-insensitive substrings; price bounds are inclusive.
type SweetFilter struct {
	Name     *string
	Category *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// Validate rejects an inverted price range.
func (f SweetFilter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return fmt.Errorf("%w: minPrice is greater than maxPrice", ErrInvalidInput)
	}
	return nil
}

// Matches reports whether s satisfies every set constraint.
func (f SweetFilter) Matches(s Sweet) bool {
	if f.Name != nil && !containsFold(s.Name, *f.Name) {
		return false
	}
	if f.Category != nil && !containsFold(s.Category, *f.Category) {
		return false
	}
	if f.MinPrice != nil && s.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && s.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ImageKey returns the object storage key for a sweet's image.
func ImageKey(id int64) string {
	return fmt.Sprintf("sweets/%d/image", id)
}
