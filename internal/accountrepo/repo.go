// Package accountrepo manages the in-memory account registry.
package accountrepo

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Repo is the run-scoped registry of accounts keyed by account ID.
// It owns every account added to it.
type Repo struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	order    []string
}

// New returns an empty Repo.
func New() *Repo {
	return &Repo{
		accounts: make(map[string]domain.Account),
	}
}

// Add registers acc. An ID that is already registered is rejected with
// domain.ErrDuplicateAccount and the first account is kept.
func (r *Repo) Add(ctx context.Context, acc domain.Account) error {
	l := zerolog.Ctx(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[acc.ID()]; ok {
		l.Info().Str("account_id", acc.ID()).Err(domain.ErrDuplicateAccount).Send()
		return domain.ErrDuplicateAccount
	}

	r.accounts[acc.ID()] = acc
	r.order = append(r.order, acc.ID())

	return nil
}

// Get returns the account registered under id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return acc, nil
}

// List returns all accounts in registration order.
func (r *Repo) List(ctx context.Context) []domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.accounts[id])
	}

	return out
}

// Len returns the number of registered accounts.
func (r *Repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
