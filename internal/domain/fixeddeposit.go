package domain

import (
	"fmt"
	"time"
)

// FixedDepositAccount is a term deposit. Withdrawals before maturity pay an
// early withdrawal penalty and deposits are never accepted.
type FixedDepositAccount struct {
	base
	interestRate     float64
	termInMonths     int
	earlyPenaltyRate float64
	startDate        time.Time
}

// NewFixedDepositAccount returns a fixed deposit account started on startDate.
func NewFixedDepositAccount(
	id string,
	balance, interestRate float64,
	termInMonths int,
	earlyPenaltyRate float64,
	startDate time.Time,
	clock Clock,
) (*FixedDepositAccount, error) {
	if interestRate < 0 || interestRate > 1 {
		return nil, fmt.Errorf("%w: interest rate %v is outside [0,1]", ErrInvalidAccountParams, interestRate)
	}

	if termInMonths <= 0 {
		return nil, fmt.Errorf("%w: term %d months must be positive", ErrInvalidAccountParams, termInMonths)
	}

	if earlyPenaltyRate < 0 || earlyPenaltyRate > 1 {
		return nil, fmt.Errorf("%w: early penalty rate %v is outside [0,1]", ErrInvalidAccountParams, earlyPenaltyRate)
	}

	if startDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", ErrInvalidAccountParams)
	}

	return &FixedDepositAccount{
		base:             newBase(id, balance, clock),
		interestRate:     interestRate,
		termInMonths:     termInMonths,
		earlyPenaltyRate: earlyPenaltyRate,
		startDate:        truncateDay(startDate),
	}, nil
}

// Kind returns KindFixedDeposit.
func (a *FixedDepositAccount) Kind() Kind { return KindFixedDeposit }

// InterestRate returns the interest rate as a fraction.
func (a *FixedDepositAccount) InterestRate() float64 { return a.interestRate }

// TermInMonths returns the deposit term.
func (a *FixedDepositAccount) TermInMonths() int { return a.termInMonths }

// EarlyPenaltyRate returns the share of the amount charged on early withdrawals.
func (a *FixedDepositAccount) EarlyPenaltyRate() float64 { return a.earlyPenaltyRate }

// StartDate returns the day the deposit started.
func (a *FixedDepositAccount) StartDate() time.Time { return a.startDate }

// MaturityDate returns the start date plus the term.
func (a *FixedDepositAccount) MaturityDate() time.Time {
	return addMonths(a.startDate, a.termInMonths)
}

// Matured reports whether today is on or after the maturity date.
func (a *FixedDepositAccount) Matured() bool {
	return !a.today().Before(a.MaturityDate())
}

// Withdraw deducts amount, plus the early withdrawal penalty before maturity.
func (a *FixedDepositAccount) Withdraw(amount float64) error {
	if a.Matured() {
		if amount > a.balance {
			return fmt.Errorf("%w: amount %v exceeds balance %v", ErrInsufficientFunds, amount, a.balance)
		}

		a.balance -= amount

		return nil
	}

	total := amount + amount*a.earlyPenaltyRate
	if total > a.balance {
		return fmt.Errorf("%w: amount %v including early withdrawal penalty exceeds balance %v",
			ErrInsufficientFunds, total, a.balance)
	}

	a.balance -= total

	return nil
}

// Deposit always fails: fixed deposits do not accept further deposits.
func (a *FixedDepositAccount) Deposit(amount float64) error {
	return fmt.Errorf("%w: deposits are not allowed in fixed deposit accounts", ErrUnsupportedOperation)
}

// EvaluateRisk reports low risk while active and high risk once matured.
func (a *FixedDepositAccount) EvaluateRisk() Risk {
	if a.Matured() {
		return Risk{Level: RiskHigh, Reason: "Account has matured."}
	}

	return Risk{Level: RiskLow, Reason: "Account is active."}
}

// CalculateInterest returns the interest accrued over the days left to maturity.
func (a *FixedDepositAccount) CalculateInterest() float64 {
	days := daysBetween(a.today(), a.MaturityDate())
	if days <= 0 {
		return 0
	}

	return a.balance * a.interestRate * float64(days) / 365
}
