// Package reportservice builds read-only reports of account state.
package reportservice

import (
	"context"
	"sync"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Repo provides account access needed by report service layer.
type Repo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
	List(ctx context.Context) []domain.Account
}

// Service builds account reports. It never mutates accounts.
type Service struct {
	repo Repo
	mu   sync.Locker
}

// New returns report service struct.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// WithLocker makes the service hold l while it reads account state.
func (s *Service) WithLocker(l sync.Locker) *Service {
	s.mu = l
	return s
}

func (s *Service) lock() func() {
	if s.mu == nil {
		return func() {}
	}

	s.mu.Lock()

	return s.mu.Unlock
}

// Accounts returns a report for every account in registration order.
func (s *Service) Accounts(ctx context.Context) []domain.AccountReport {
	defer s.lock()()

	accounts := s.repo.List(ctx)

	out := make([]domain.AccountReport, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, Build(acc))
	}

	return out
}

// Account returns the report for the account with the given ID.
func (s *Service) Account(ctx context.Context, id string) (domain.AccountReport, error) {
	defer s.lock()()

	acc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.AccountReport{}, err
	}

	return Build(acc), nil
}

// Build returns the report for acc.
func Build(acc domain.Account) domain.AccountReport {
	r := domain.AccountReport{
		ID:           acc.ID(),
		Kind:         acc.Kind(),
		Balance:      acc.Balance(),
		Risk:         acc.EvaluateRisk(),
		Transactions: acc.Transactions(),
	}

	switch a := acc.(type) {
	case *domain.CurrentAccount:
		r.OverdraftLimit = ptr(a.OverdraftLimit())
	case *domain.SavingsAccount:
		r.InterestRate = ptr(a.InterestRate())
		r.MinBalance = ptr(a.MinBalance())
	case *domain.FixedDepositAccount:
		r.InterestRate = ptr(a.InterestRate())
		r.TermInMonths = a.TermInMonths()
		r.EarlyPenaltyRate = ptr(a.EarlyPenaltyRate())
		r.StartDate = ptr(a.StartDate())
		r.MaturityDate = ptr(a.MaturityDate())
		r.Matured = a.Matured()
	}

	if ib, ok := acc.(domain.InterestBearer); ok {
		r.Interest = ptr(ib.CalculateInterest())
	}

	return r
}

func ptr[T any](v T) *T {
	return &v
}
