// Package accountservice manages account creation and lookup.
package accountservice

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Add(ctx context.Context, acc domain.Account) error
	Get(ctx context.Context, id string) (domain.Account, error)
	List(ctx context.Context) []domain.Account
}

// Options configures the accounts built by the service.
type Options struct {
	// Clock is handed to every account. Nil means time.Now.
	Clock domain.Clock
	// PenaltyMode is applied to savings accounts.
	PenaltyMode domain.PenaltyMode
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
	opts Options
}

// New returns account service struct to manage account business logic.
func New(ar Repo, opts Options) *Service {
	if opts.PenaltyMode == "" {
		opts.PenaltyMode = domain.PenaltyLegacy
	}

	return &Service{repo: ar, opts: opts}
}

// Build constructs the account variant named by the record kind tag.
func (s *Service) Build(rec domain.AccountRecord) (domain.Account, error) {
	kind, err := domain.ParseKind(rec.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, rec.Kind)
	}

	switch kind {
	case domain.KindCurrent:
		return s.buildCurrent(rec)
	case domain.KindSavings:
		return s.buildSavings(rec)
	case domain.KindFixedDeposit:
		return s.buildFixedDeposit(rec)
	}

	return nil, domain.ErrUnknownAccountKind
}

func (s *Service) buildCurrent(rec domain.AccountRecord) (domain.Account, error) {
	acc, err := domain.NewCurrentAccount(rec.ID, rec.Balance, rec.OverdraftLimit, s.opts.Clock)
	if err != nil {
		return nil, err
	}

	return acc, nil
}

func (s *Service) buildSavings(rec domain.AccountRecord) (domain.Account, error) {
	acc, err := domain.NewSavingsAccount(rec.ID, rec.Balance, rec.InterestRate, rec.MinBalance, s.opts.Clock)
	if err != nil {
		return nil, err
	}

	return acc.WithPenaltyMode(s.opts.PenaltyMode), nil
}

func (s *Service) buildFixedDeposit(rec domain.AccountRecord) (domain.Account, error) {
	acc, err := domain.NewFixedDepositAccount(rec.ID, rec.Balance, rec.InterestRate,
		rec.TermInMonths, rec.EarlyPenaltyRate, rec.StartDate, s.opts.Clock)
	if err != nil {
		return nil, err
	}

	return acc, nil
}

// Register builds the account for rec and adds it to the registry.
func (s *Service) Register(ctx context.Context, rec domain.AccountRecord) (domain.Account, error) {
	acc, err := s.Build(rec)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Add(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// Skipped describes a record that Load did not register.
type Skipped struct {
	ID  string
	Err error
}

// LoadSummary reports the outcome of Load.
type LoadSummary struct {
	Loaded  int
	Skipped []Skipped
}

// Load registers every record in order. Records with an unknown kind, invalid
// fields or a duplicate ID are skipped with a warning.
func (s *Service) Load(ctx context.Context, records []domain.AccountRecord) LoadSummary {
	l := zerolog.Ctx(ctx)

	var sum LoadSummary

	for _, rec := range records {
		if _, err := s.Register(ctx, rec); err != nil {
			l.Warn().Str("account_id", rec.ID).Str("kind", rec.Kind).Err(err).Msg("account skipped")
			sum.Skipped = append(sum.Skipped, Skipped{ID: rec.ID, Err: err})

			continue
		}

		sum.Loaded++
	}

	l.Info().Int("loaded", sum.Loaded).Int("skipped", len(sum.Skipped)).Msg("accounts loaded")

	return sum
}

// Get returns the account for the given account ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// List returns all registered accounts.
func (s *Service) List(ctx context.Context) []domain.Account {
	return s.repo.List(ctx)
}
