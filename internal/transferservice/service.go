// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
)

// Repo provides account lookup needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Get(ctx context.Context, id string) (domain.Account, error)
}

// Service applies transfer requests to registered accounts.
//
// Transfers are serialised: one request is applied at a time, in call order.
type Service struct {
	mu   sync.Mutex
	repo Repo
}

// New returns transfer service struct to manage transfer business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Locker returns the lock held while a transfer is applied. Readers of account
// state share it so they never observe half of a transfer.
func (s *Service) Locker() sync.Locker {
	return &s.mu
}

// Transfer withdraws req.Amount from the sender, records the transfer on both
// ledgers and deposits the amount to the receiver.
//
// A request is rejected when either account is missing or the withdrawal
// fails; nothing is mutated in that case. A failed deposit does not roll the
// transfer back: the result stays applied and carries DepositErr.
func (s *Service) Transfer(ctx context.Context, req domain.TransferRequest) domain.TransferResult {
	l := zerolog.Ctx(ctx).With().
		Str("sender_id", req.SenderID).
		Str("receiver_id", req.ReceiverID).
		Float64("amount", req.Amount).
		Logger()

	s.mu.Lock()
	defer s.mu.Unlock()

	res := domain.TransferResult{Request: req, Status: domain.TransferPending}

	sender, err := s.lookup(ctx, "sender", req.SenderID)
	if err != nil {
		return reject(&l, res, err)
	}

	receiver, err := s.lookup(ctx, "receiver", req.ReceiverID)
	if err != nil {
		return reject(&l, res, err)
	}

	if err := sender.Withdraw(req.Amount); err != nil {
		return reject(&l, res, err)
	}

	sender.RecordTransaction(req.SenderID, req.ReceiverID, -req.Amount)
	receiver.RecordTransaction(req.SenderID, req.ReceiverID, req.Amount)

	if err := receiver.Deposit(req.Amount); err != nil {
		l.Warn().Err(err).Msg("receiver deposit failed after sender was debited")
		res.DepositErr = err
	}

	res.Status = domain.TransferApplied
	l.Debug().Msg("transfer applied")

	return res
}

// Process applies reqs strictly in order and returns one result per request.
func (s *Service) Process(ctx context.Context, reqs []domain.TransferRequest) []domain.TransferResult {
	results := make([]domain.TransferResult, 0, len(reqs))

	for _, req := range reqs {
		results = append(results, s.Transfer(ctx, req))
	}

	sum := Summarize(results)
	zerolog.Ctx(ctx).Info().
		Int("applied", sum.Applied).
		Int("rejected", sum.Rejected).
		Int("inconsistent", sum.Inconsistent).
		Msg("transfers processed")

	return results
}

func (s *Service) lookup(ctx context.Context, role, id string) (domain.Account, error) {
	acc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", role, id, err)
	}

	return acc, nil
}

func reject(l *zerolog.Logger, res domain.TransferResult, err error) domain.TransferResult {
	l.Info().Err(err).Msg("transfer rejected")

	res.Status = domain.TransferRejected
	res.Err = err

	return res
}

// Summary counts transfer outcomes.
type Summary struct {
	Applied      int `json:"applied"`
	Rejected     int `json:"rejected"`
	Inconsistent int `json:"inconsistent"`
}

// Summarize counts the outcomes in results.
func Summarize(results []domain.TransferResult) Summary {
	var sum Summary

	for _, r := range results {
		switch r.Status {
		case domain.TransferApplied:
			sum.Applied++
			if r.Inconsistent() {
				sum.Inconsistent++
			}
		case domain.TransferRejected:
			sum.Rejected++
		}
	}

	return sum
}
