package domain

import (
	"fmt"
	"strings"
)

// SavingsPenaltyRate is the share of the minimum balance shortfall charged on a withdrawal.
const SavingsPenaltyRate = 0.05

// PenaltyMode selects how a savings withdrawal below the minimum balance is charged.
type PenaltyMode string

const (
	// PenaltyLegacy deducts the amount and then the amount plus penalty again.
	// It is the default and matches the historical ledger behaviour.
	PenaltyLegacy PenaltyMode = "legacy"
	// PenaltyCorrected deducts the amount plus penalty once.
	PenaltyCorrected PenaltyMode = "corrected"
)

// ParsePenaltyMode returns the penalty mode for s. Empty input yields PenaltyLegacy.
func ParsePenaltyMode(s string) (PenaltyMode, error) {
	switch PenaltyMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PenaltyLegacy:
		return PenaltyLegacy, nil
	case PenaltyCorrected:
		return PenaltyCorrected, nil
	default:
		return "", fmt.Errorf("%w: penalty mode %q", ErrInvalidAccountParams, s)
	}
}

// SavingsAccount is an interest bearing account with a minimum balance.
type SavingsAccount struct {
	base
	interestRate float64
	minBalance   float64
	penaltyMode  PenaltyMode
}

// NewSavingsAccount returns a savings account charged in PenaltyLegacy mode.
func NewSavingsAccount(id string, balance, interestRate, minBalance float64, clock Clock) (*SavingsAccount, error) {
	if interestRate < 0 || interestRate > 1 {
		return nil, fmt.Errorf("%w: interest rate %v is outside [0,1]", ErrInvalidAccountParams, interestRate)
	}

	if minBalance < 0 {
		return nil, fmt.Errorf("%w: minimum balance %v is negative", ErrInvalidAccountParams, minBalance)
	}

	return &SavingsAccount{
		base:         newBase(id, balance, clock),
		interestRate: interestRate,
		minBalance:   minBalance,
		penaltyMode:  PenaltyLegacy,
	}, nil
}

// WithPenaltyMode sets the penalty mode and returns the account.
func (a *SavingsAccount) WithPenaltyMode(mode PenaltyMode) *SavingsAccount {
	a.penaltyMode = mode
	return a
}

// Kind returns KindSavings.
func (a *SavingsAccount) Kind() Kind { return KindSavings }

// InterestRate returns the interest rate as a fraction.
func (a *SavingsAccount) InterestRate() float64 { return a.interestRate }

// MinBalance returns the minimum balance.
func (a *SavingsAccount) MinBalance() float64 { return a.minBalance }

// PenaltyMode returns the penalty mode.
func (a *SavingsAccount) PenaltyMode() PenaltyMode { return a.penaltyMode }

// Withdraw deducts amount, charging a penalty on the shortfall when the
// projected balance falls below the minimum balance.
func (a *SavingsAccount) Withdraw(amount float64) error {
	if amount > a.minBalance+a.balance {
		return fmt.Errorf("%w: amount %v exceeds available funds, balance %v, minimum balance %v",
			ErrInsufficientFunds, amount, a.balance, a.minBalance)
	}

	projected := a.balance - amount
	if projected >= a.minBalance {
		a.balance -= amount
		return nil
	}

	penalty := (a.minBalance - projected) * SavingsPenaltyRate

	if a.penaltyMode == PenaltyLegacy {
		a.balance -= amount
	}

	a.balance -= amount + penalty

	return nil
}

// Deposit adds a positive amount to the balance.
func (a *SavingsAccount) Deposit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit %v", ErrInvalidAmount, amount)
	}

	a.balance += amount

	return nil
}

// EvaluateRisk reports medium risk while the balance is below the minimum.
func (a *SavingsAccount) EvaluateRisk() Risk {
	if a.balance < a.minBalance {
		return Risk{Level: RiskMedium, Reason: "Balance is below minimum."}
	}

	return Risk{Level: RiskLow, Reason: "Account is stable."}
}

// CalculateInterest returns balance times interest rate.
func (a *SavingsAccount) CalculateInterest() float64 {
	return a.balance * a.interestRate
}
