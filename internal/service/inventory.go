package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

// OperationRecorder receives purchase and restock outcomes.
type OperationRecorder interface {
	InventoryOperation(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) InventoryOperation(string, string) {}

// maxQuantity is the largest quantity the sweets.quantity INTEGER column holds.
const maxQuantity = math.MaxInt32

const (
	opPurchase = "purchase"
	opRestock  = "restock"
)

type Inventory struct {
	sweetStore model.SweetStore
	storage    model.Storage
	recorder   OperationRecorder
	logger     *logger.Logger
}

// NewInventory creates the inventory service. storage and recorder may be nil.
func NewInventory(
	sweetStore model.SweetStore,
	storage model.Storage,
	recorder OperationRecorder,
	logger *logger.Logger,
) *Inventory {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Inventory{
		sweetStore: sweetStore,
		storage:    storage,
		recorder:   recorder,
		logger:     logger,
	}
}

func normalizeParams(p model.SweetParams) model.SweetParams {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	return p
}

func (s *Inventory) Add(ctx context.Context, params model.SweetParams) (model.Sweet, error) {
	params = normalizeParams(params)
	if err := params.Validate(); err != nil {
		return model.Sweet{}, err
	}

	sweet, err := s.sweetStore.Create(ctx, model.Sweet{
		Name:        params.Name,
		Category:    params.Category,
		Price:       params.Price,
		Quantity:    params.Quantity,
		Description: params.Description,
	})
	if err != nil {
		return model.Sweet{}, s.storeError("failed to create sweet", err, "name", params.Name)
	}

	s.logger.Info("Inventory service: sweet added", "id", sweet.ID, "name", sweet.Name)

	return sweet, nil
}

func (s *Inventory) Get(ctx context.Context, id int64) (model.Sweet, error) {
	sweet, err := s.sweetStore.GetByID(ctx, id)
	if err != nil {
		return model.Sweet{}, s.storeError("failed to get sweet", err, "id", id)
	}
	return sweet, nil
}

func (s *Inventory) List(ctx context.Context) ([]model.Sweet, error) {
	sweets, err := s.sweetStore.List(ctx)
	if err != nil {
		return nil, s.storeError("failed to list sweets", err)
	}
	return sweets, nil
}

func (s *Inventory) Search(ctx context.Context, filter model.SweetFilter) ([]model.Sweet, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	sweets, err := s.sweetStore.Search(ctx, filter)
	if err != nil {
		return nil, s.storeError("failed to search sweets", err)
	}
	return sweets, nil
}

// Update replaces every writable field of the sweet.
func (s *Inventory) Update(ctx context.Context, id int64, params model.SweetParams) (model.Sweet, error) {
	params = normalizeParams(params)
	if err := params.Validate(); err != nil {
		return model.Sweet{}, err
	}

	sweet, err := s.sweetStore.Update(ctx, model.Sweet{
		ID:          id,
		Name:        params.Name,
		Category:    params.Category,
		Price:       params.Price,
		Quantity:    params.Quantity,
		Description: params.Description,
	})
	if err != nil {
		return model.Sweet{}, s.storeError("failed to update sweet", err, "id", id)
	}

	s.logger.Info("Inventory service: sweet updated", "id", id)

	return sweet, nil
}

// Delete removes the sweet and, best effort, its stored image.
func (s *Inventory) Delete(ctx context.Context, id int64) error {
	sweet, err := s.sweetStore.GetByID(ctx, id)
	if err != nil {
		return s.storeError("failed to get sweet", err, "id", id)
	}

	if err := s.sweetStore.Delete(ctx, id); err != nil {
		return s.storeError("failed to delete sweet", err, "id", id)
	}

	if sweet.ImageKey != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, sweet.ImageKey); err != nil {
			s.logger.Warn("Inventory service: failed to delete sweet image",
				"id", id,
				"key", sweet.ImageKey,
				"error", err.Error())
		}
	}

	s.logger.Info("Inventory service: sweet deleted", "id", id)

	return nil
}

// Purchase decrements stock by quantity. The sufficiency check and the write
// happen under the store's per-record lock.
func (s *Inventory) Purchase(ctx context.Context, id int64, quantity int) (model.Sweet, error) {
	if quantity <= 0 {
		s.recorder.InventoryOperation(opPurchase, outcome(model.ErrInvalidQuantity))
		return model.Sweet{}, model.ErrInvalidQuantity
	}

	sweet, err := s.sweetStore.AdjustQuantity(ctx, id, func(current model.Sweet) (int, error) {
		if current.Quantity < quantity {
			return 0, &model.InsufficientStockError{Available: current.Quantity}
		}
		return current.Quantity - quantity, nil
	})
	s.recorder.InventoryOperation(opPurchase, outcome(err))
	if err != nil {
		return model.Sweet{}, s.storeError("failed to purchase sweet", err, "id", id, "quantity", quantity)
	}

	s.logger.Info("Inventory service: sweet purchased",
		"id", id,
		"quantity", quantity,
		"remaining", sweet.Quantity)

	return sweet, nil
}

// Restock increments stock by quantity. Authorization is the caller's concern.
func (s *Inventory) Restock(ctx context.Context, id int64, quantity int) (model.Sweet, error) {
	if quantity <= 0 {
		s.recorder.InventoryOperation(opRestock, outcome(model.ErrInvalidQuantity))
		return model.Sweet{}, model.ErrInvalidQuantity
	}

	sweet, err := s.sweetStore.AdjustQuantity(ctx, id, func(current model.Sweet) (int, error) {
		if current.Quantity > maxQuantity-quantity {
			return 0, fmt.Errorf("%w: restock would exceed %d", model.ErrInvalidQuantity, maxQuantity)
		}
		return current.Quantity + quantity, nil
	})
	s.recorder.InventoryOperation(opRestock, outcome(err))
	if err != nil {
		return model.Sweet{}, s.storeError("failed to restock sweet", err, "id", id, "quantity", quantity)
	}

	s.logger.Info("Inventory service: sweet restocked",
		"id", id,
		"quantity", quantity,
		"available", sweet.Quantity)

	return sweet, nil
}

// UploadImage stores r as the sweet's image.
func (s *Inventory) UploadImage(ctx context.Context, id int64, r io.Reader) (model.Sweet, error) {
	if s.storage == nil {
		return model.Sweet{}, errors.New("image storage is not configured")
	}

	sweet, err := s.sweetStore.GetByID(ctx, id)
	if err != nil {
		return model.Sweet{}, s.storeError("failed to get sweet", err, "id", id)
	}

	key := model.ImageKey(id)
	if err := s.storage.Upload(ctx, key, r); err != nil {
		s.logger.Error("Inventory service: failed to upload image", "id", id, "error", err.Error())
		return model.Sweet{}, fmt.Errorf("failed to upload image: %w", err)
	}

	if err := s.sweetStore.SetImageKey(ctx, id, key); err != nil {
		return model.Sweet{}, s.storeError("failed to record image key", err, "id", id)
	}
	sweet.ImageKey = key

	return sweet, nil
}

// DownloadImage returns the sweet's image. The caller closes the reader.
func (s *Inventory) DownloadImage(ctx context.Context, id int64) (io.ReadCloser, error) {
	sweet, err := s.sweetStore.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to get sweet", err, "id", id)
	}
	if sweet.ImageKey == "" || s.storage == nil {
		return nil, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, sweet.ImageKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		s.logger.Error("Inventory service: failed to download image", "id", id, "error", err.Error())
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	return rc, nil
}

// storeError passes domain errors through and logs and wraps anything else.
func (s *Inventory) storeError(msg string, err error, args ...any) error {
	if isDomainError(err) {
		return err
	}
	s.logger.Error("Inventory service: "+msg, append(args, "error", err.Error())...)
	return fmt.Errorf("%s: %w", msg, err)
}

func isDomainError(err error) bool {
	for _, target := range []error{
		model.ErrNotFound,
		model.ErrDuplicateName,
		model.ErrInsufficientStock,
		model.ErrInvalidQuantity,
		model.ErrInvalidInput,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, model.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, model.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, model.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
