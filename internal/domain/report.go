package domain

import "time"

// AccountRecord is a parsed account row handed to the account factory.
// Only the fields of the matching kind are read.
type AccountRecord struct {
	ID               string
	Kind             string
	Balance          float64
	OverdraftLimit   float64
	InterestRate     float64
	MinBalance       float64
	TermInMonths     int
	EarlyPenaltyRate float64
	StartDate        time.Time
}

// AccountReport is a read-only view of an account's final state.
type AccountReport struct {
	ID               string        `json:"id"`
	Kind             Kind          `json:"kind"`
	Balance          float64       `json:"balance"`
	OverdraftLimit   *float64      `json:"overdraft_limit,omitempty"`
	InterestRate     *float64      `json:"interest_rate,omitempty"`
	MinBalance       *float64      `json:"min_balance,omitempty"`
	TermInMonths     int           `json:"term_in_months,omitempty"`
	EarlyPenaltyRate *float64      `json:"early_penalty_rate,omitempty"`
	StartDate        *time.Time    `json:"start_date,omitempty"`
	MaturityDate     *time.Time    `json:"maturity_date,omitempty"`
	Matured          bool          `json:"matured,omitempty"`
	Risk             Risk          `json:"risk"`
	Interest         *float64      `json:"interest,omitempty"`
	Transactions     []Transaction `json:"transactions"`
}
