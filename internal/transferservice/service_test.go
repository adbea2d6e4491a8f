package transferservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

var today = func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

func newRepo(t *testing.T, accounts ...domain.Account) *accountrepo.Repo {
	t.Helper()

	repo := accountrepo.New()
	for _, acc := range accounts {
		require.NoError(t, repo.Add(context.Background(), acc))
	}

	return repo
}

func newCurrent(t *testing.T, id string, balance, limit float64) *domain.CurrentAccount {
	t.Helper()

	acc, err := domain.NewCurrentAccount(id, balance, limit, today)
	require.NoError(t, err)

	return acc
}

func newSavings(t *testing.T, id string, balance, minBalance float64) *domain.SavingsAccount {
	t.Helper()

	acc, err := domain.NewSavingsAccount(id, balance, 0.02, minBalance, today)
	require.NoError(t, err)

	return acc
}

func newFixedDeposit(t *testing.T, id string, balance float64) *domain.FixedDepositAccount {
	t.Helper()

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	acc, err := domain.NewFixedDepositAccount(id, balance, 0.05, 12, 0.1, start, today)
	require.NoError(t, err)

	return acc
}

func TestTransfer(t *testing.T) {
	testCases := []struct {
		name          string
		build         func(t *testing.T) (sender, receiver domain.Account)
		amount        float64
		checkResponse func(t *testing.T, res domain.TransferResult, sender, receiver domain.Account)
	}{
		{
			name: "OK",
			build: func(t *testing.T) (domain.Account, domain.Account) {
				return newCurrent(t, "C1", 100, 50), newCurrent(t, "C2", 0, 0)
			},
			amount: 60,
			checkResponse: func(t *testing.T, res domain.TransferResult, sender, receiver domain.Account) {
				require.Equal(t, domain.TransferApplied, res.Status)
				require.NoError(t, res.Err)
				require.NoError(t, res.DepositErr)
				require.Equal(t, 40.0, sender.Balance())
				require.Equal(t, 60.0, receiver.Balance())

				sent := sender.Transactions()
				require.Len(t, sent, 1)
				require.Equal(t, -60.0, sent[0].Amount)
				require.Equal(t, "C1", sent[0].SenderID)
				require.Equal(t, "C2", sent[0].ReceiverID)

				received := receiver.Transactions()
				require.Len(t, received, 1)
				require.Equal(t, 60.0, received[0].Amount)
				require.Equal(t, "C1", received[0].SenderID)
				require.NotEqual(t, sent[0].ID, received[0].ID)
			},
		},
		{
			// 200 - 160 - (160 + 0.5)
			name: "SavingsPenaltyDoubleDeduction",
			build: func(t *testing.T) (domain.Account, domain.Account) {
				return newSavings(t, "S1", 200, 50), newCurrent(t, "C1", 0, 0)
			},
			amount: 160,
			checkResponse: func(t *testing.T, res domain.TransferResult, sender, receiver domain.Account) {
				require.Equal(t, domain.TransferApplied, res.Status)
				require.InDelta(t, -120.5, sender.Balance(), 1e-9)
				require.Equal(t, 160.0, receiver.Balance())
				require.Equal(t, -160.0, sender.Transactions()[0].Amount)
			},
		},
		{
			name: "EarlyFixedDepositWithdrawal",
			build: func(t *testing.T) (domain.Account, domain.Account) {
				return newFixedDeposit(t, "F1", 1000), newCurrent(t, "C1", 0, 0)
			},
			amount: 100,
			checkResponse: func(t *testing.T, res domain.TransferResult, sender, receiver domain.Account) {
				require.Equal(t, domain.TransferApplied, res.Status)
				require.InDelta(t, 890, sender.Balance(), 1e-9)
				require.Equal(t, 100.0, receiver.Balance())
			},
		},
		{
			name: "InsufficientFunds",
			build: func(t *testing.T) (domain.Account, domain.Account) {
				return newCurrent(t, "C1", 100, 50), newSavings(t, "S1", 10, 0)
			},
			amount: 150,
			checkResponse: func(t *testing.T, res domain.TransferResult, sender, receiver domain.Account) {
				require.Equal(t, domain.TransferRejected, res.Status)
				require.ErrorIs(t, res.Err, domain.ErrInsufficientFunds)
				require.Equal(t, 100.0, sender.Balance())
				require.Equal(t, 10.0, receiver.Balance())
				require.Empty(t, sender.Transactions())
				require.Empty(t, receiver.Transactions())
			},
		},
		{
			name: "ReceiverRefusesDeposit",
			build: func(t *testing.T) (domain.Account, domain.Account) {
				return newCurrent(t, "C1", 500, 0), newFixedDeposit(t, "F1", 1000)
			},
			amount: 100,
			checkResponse: func(t *testing.T, res domain.TransferResult, sender, receiver domain.Account) {
				require.Equal(t, domain.TransferApplied, res.Status)
				require.NoError(t, res.Err)
				require.ErrorIs(t, res.DepositErr, domain.ErrUnsupportedOperation)
				require.True(t, res.Inconsistent())

				require.Equal(t, 400.0, sender.Balance())
				require.Equal(t, 1000.0, receiver.Balance())
				require.Len(t, sender.Transactions(), 1)
				require.Len(t, receiver.Transactions(), 1)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sender, receiver := tc.build(t)
			service := New(newRepo(t, sender, receiver))

			res := service.Transfer(context.Background(), domain.TransferRequest{
				SenderID:   sender.ID(),
				Amount:     tc.amount,
				ReceiverID: receiver.ID(),
			})

			require.Equal(t, sender.ID(), res.Request.SenderID)
			tc.checkResponse(t, res, sender, receiver)
		})
	}
}

func TestTransferUnknownAccount(t *testing.T) {
	sender := newCurrent(t, "C1", 100, 50)
	service := New(newRepo(t, sender))

	res := service.Transfer(context.Background(), domain.TransferRequest{SenderID: "C1", Amount: 10, ReceiverID: "NOPE"})
	require.Equal(t, domain.TransferRejected, res.Status)
	require.ErrorIs(t, res.Err, domain.ErrAccountNotFound)
	require.Equal(t, 100.0, sender.Balance())
	require.Empty(t, sender.Transactions())

	res = service.Transfer(context.Background(), domain.TransferRequest{SenderID: "NOPE", Amount: 10, ReceiverID: "C1"})
	require.Equal(t, domain.TransferRejected, res.Status)
	require.ErrorIs(t, res.Err, domain.ErrAccountNotFound)
	require.Equal(t, 100.0, sender.Balance())
	require.Empty(t, sender.Transactions())
}

func TestTransferRepoErrors(t *testing.T) {
	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		wantErr    error
	}{
		{
			name: "SenderLookupFails",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("A")).Times(1).Return(nil, errorspkg.ErrInternal)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("B")).Times(0)
			},
			wantErr: errorspkg.ErrInternal,
		},
		{
			name: "ReceiverNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("A")).Times(1).Return(newCurrent(t, "A", 10, 0), nil)
				repo.EXPECT().Get(gomock.Any(), gomock.Eq("B")).Times(1).Return(nil, domain.ErrAccountNotFound)
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			res := New(repo).Transfer(context.Background(), domain.TransferRequest{SenderID: "A", Amount: 1, ReceiverID: "B"})
			require.Equal(t, domain.TransferRejected, res.Status)
			require.True(t, errors.Is(res.Err, tc.wantErr), "got %v", res.Err)
		})
	}
}

func TestProcessAppliesInOrder(t *testing.T) {
	c1 := newCurrent(t, "C1", 100, 50)
	c2 := newCurrent(t, "C2", 0, 0)
	service := New(newRepo(t, c1, c2))

	reqs := []domain.TransferRequest{
		{SenderID: "C1", Amount: 140, ReceiverID: "C2"}, // C1 -> -40
		{SenderID: "C1", Amount: 20, ReceiverID: "C2"},  // -60 touches beyond limit, rejected
		{SenderID: "C2", Amount: 30, ReceiverID: "C1"},  // C2 has 140 after the first transfer
		{SenderID: "C1", Amount: 5, ReceiverID: "GHOST"},
		{SenderID: "C1", Amount: 20, ReceiverID: "C2"}, // C1 is back at -10
	}

	results := service.Process(context.Background(), reqs)
	require.Len(t, results, len(reqs))

	var statuses []domain.TransferStatus
	for i, res := range results {
		require.Equal(t, reqs[i], res.Request)
		statuses = append(statuses, res.Status)
	}

	require.Equal(t, []domain.TransferStatus{
		domain.TransferApplied,
		domain.TransferRejected,
		domain.TransferApplied,
		domain.TransferRejected,
		domain.TransferApplied,
	}, statuses)

	require.Equal(t, -30.0, c1.Balance())
	require.Equal(t, 130.0, c2.Balance())
	require.Len(t, c1.Transactions(), 3)
	require.Len(t, c2.Transactions(), 3)

	require.Equal(t, Summary{Applied: 3, Rejected: 2}, Summarize(results))
}

func TestSummarizeCountsInconsistent(t *testing.T) {
	results := []domain.TransferResult{
		{Status: domain.TransferApplied},
		{Status: domain.TransferApplied, DepositErr: domain.ErrUnsupportedOperation},
		{Status: domain.TransferRejected, Err: domain.ErrInsufficientFunds},
		{Status: domain.TransferPending},
	}

	require.Equal(t, Summary{Applied: 2, Rejected: 1, Inconsistent: 1}, Summarize(results))
}
