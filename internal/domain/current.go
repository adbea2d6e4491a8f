package domain

import "fmt"

// CurrentAccount is an account that may be overdrawn up to its overdraft limit.
type CurrentAccount struct {
	base
	overdraftLimit float64
}

// NewCurrentAccount returns a current account. The overdraft limit must not be negative.
func NewCurrentAccount(id string, balance, overdraftLimit float64, clock Clock) (*CurrentAccount, error) {
	if overdraftLimit < 0 {
		return nil, fmt.Errorf("%w: overdraft limit %v is negative", ErrInvalidAccountParams, overdraftLimit)
	}

	return &CurrentAccount{
		base:           newBase(id, balance, clock),
		overdraftLimit: overdraftLimit,
	}, nil
}

// Kind returns KindCurrent.
func (a *CurrentAccount) Kind() Kind { return KindCurrent }

// OverdraftLimit returns the overdraft limit.
func (a *CurrentAccount) OverdraftLimit() float64 { return a.overdraftLimit }

// Withdraw rejects any withdrawal that would reach or cross the overdraft limit.
func (a *CurrentAccount) Withdraw(amount float64) error {
	if a.balance-amount <= -a.overdraftLimit {
		return fmt.Errorf("%w: amount %v exceeds overdraft limit, balance %v, limit %v",
			ErrInsufficientFunds, amount, a.balance, a.overdraftLimit)
	}

	a.balance -= amount

	return nil
}

// Deposit adds a positive amount to the balance.
func (a *CurrentAccount) Deposit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: deposit %v", ErrInvalidAmount, amount)
	}

	a.balance += amount

	return nil
}

// EvaluateRisk reports medium risk while the account is overdrawn.
func (a *CurrentAccount) EvaluateRisk() Risk {
	if a.balance < 0 {
		return Risk{Level: RiskMedium, Reason: "Account is in overdraft."}
	}

	return Risk{Level: RiskLow, Reason: "Account is stable."}
}
