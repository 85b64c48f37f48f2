package memory

import (
	"context"
	"sync"

	"github.com/zourdycodes/authworkflow/internal/models"
	"github.com/zourdycodes/authworkflow/internal/storage"
)

// MemoryRepo is an in-process account store with the same uniqueness
// guarantee the Postgres schema enforces. It backs tests and local runs
// without a database.
type MemoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]models.Account
}

func New() *MemoryRepo {
	return &MemoryRepo{
		byEmail: make(map[string]models.Account),
	}
}

func (r *MemoryRepo) SaveAccount(_ context.Context, name, email string, passHash []byte) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return 0, storage.ErrAccountExists
	}

	r.nextID++
	r.byEmail[email] = models.Account{
		ID:       r.nextID,
		Name:     name,
		Email:    email,
		PassHash: passHash,
	}

	return r.nextID, nil
}

func (r *MemoryRepo) AccountByEmail(_ context.Context, email string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.byEmail[email]
	if !ok {
		return models.Account{}, storage.ErrAccountNotFound
	}

	return acc, nil
}
