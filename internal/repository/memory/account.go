// Package memory provides in-process stores used by tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/sweetshop-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]model.Account
	byEmail map[string]int64
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:    make(map[int64]model.Account),
		byEmail: make(map[string]int64),
	}
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return model.Account{}, model.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *AccountRepository) Create(_ context.Context, account model.Account) (model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return model.Account{}, model.ErrEmailTaken
	}

	r.nextID++
	now := time.Now()
	account.ID = r.nextID
	account.CreatedAt = now
	account.UpdatedAt = now
	r.byID[account.ID] = account
	r.byEmail[account.Email] = account.ID

	return account, nil
}

func (r *AccountRepository) UpdateStatus(_ context.Context, id int64, status model.AccountStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return 0, nil
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	r.byID[id] = a

	return 1, nil
}
