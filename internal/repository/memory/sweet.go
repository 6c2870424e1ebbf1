package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dtroode/sweetshop-server/internal/model"
)

var _ model.SweetStore = (*SweetRepository)(nil)

// SweetRepository keeps sweets in a map guarded by a single mutex, so every
// write including AdjustQuantity is serialized.
type SweetRepository struct {
	mu     sync.RWMutex
	nextID int64
	sweets map[int64]model.Sweet
}

func NewSweetRepository() *SweetRepository {
	return &SweetRepository{
		sweets: make(map[int64]model.Sweet),
	}
}

func (r *SweetRepository) nameTaken(name string, except int64) bool {
	for id, s := range r.sweets {
		if id != except && s.Name == name {
			return true
		}
	}
	return false
}

func (r *SweetRepository) Create(_ context.Context, sweet model.Sweet) (model.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(sweet.Name, 0) {
		return model.Sweet{}, model.ErrDuplicateName
	}

	r.nextID++
	now := time.Now()
	sweet.ID = r.nextID
	sweet.ImageKey = ""
	sweet.CreatedAt = now
	sweet.UpdatedAt = now
	r.sweets[sweet.ID] = sweet

	return sweet, nil
}

func (r *SweetRepository) GetByID(_ context.Context, id int64) (model.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sweets[id]
	if !ok {
		return model.Sweet{}, model.ErrNotFound
	}
	return s, nil
}

func (r *SweetRepository) List(ctx context.Context) ([]model.Sweet, error) {
	return r.Search(ctx, model.SweetFilter{})
}

func (r *SweetRepository) Search(_ context.Context, filter model.SweetFilter) ([]model.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		if filter.Matches(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *SweetRepository) Update(_ context.Context, sweet model.Sweet) (model.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sweets[sweet.ID]
	if !ok {
		return model.Sweet{}, model.ErrNotFound
	}
	if r.nameTaken(sweet.Name, sweet.ID) {
		return model.Sweet{}, model.ErrDuplicateName
	}

	current.Name = sweet.Name
	current.Category = sweet.Category
	current.Price = sweet.Price
	current.Quantity = sweet.Quantity
	current.Description = sweet.Description
	current.UpdatedAt = time.Now()
	r.sweets[sweet.ID] = current

	return current, nil
}

func (r *SweetRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sweets[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.sweets, id)

	return nil
}

func (r *SweetRepository) AdjustQuantity(_ context.Context, id int64, adjust func(current model.Sweet) (int, error)) (model.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sweets[id]
	if !ok {
		return model.Sweet{}, model.ErrNotFound
	}

	quantity, err := adjust(current)
	if err != nil {
		return model.Sweet{}, err
	}
	if quantity < 0 {
		return model.Sweet{}, model.ErrInvalidInput
	}

	current.Quantity = quantity
	current.UpdatedAt = time.Now()
	r.sweets[id] = current

	return current, nil
}

func (r *SweetRepository) SetImageKey(_ context.Context, id int64, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sweets[id]
	if !ok {
		return model.ErrNotFound
	}
	s.ImageKey = key
	s.UpdatedAt = time.Now()
	r.sweets[id] = s

	return nil
}
