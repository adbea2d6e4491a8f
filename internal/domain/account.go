// Package domain provides definitions of all ledger entities.
package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrInsufficientFunds indicates that a withdrawal violates the account balance rules.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount indicates a non-positive deposit amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnsupportedOperation indicates an operation the account kind does not allow.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount indicates that an account with the given ID is already registered.
	ErrDuplicateAccount = errors.New("duplicate account")
	// ErrUnknownAccountKind indicates an account kind tag outside the supported set.
	ErrUnknownAccountKind = errors.New("unknown account kind")
	// ErrInvalidAccountParams indicates account fields outside their allowed range.
	ErrInvalidAccountParams = errors.New("invalid account params")
)

// Kind is the closed set of account variants.
type Kind string

// Supported account kinds.
const (
	KindCurrent      Kind = "current"
	KindSavings      Kind = "savings"
	KindFixedDeposit Kind = "fixed_deposit"
)

// ParseKind maps an ingestion tag onto a Kind.
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "current":
		return KindCurrent, nil
	case "saving", "savings":
		return KindSavings, nil
	case "deposit", "fixed_deposit", "fixeddeposit":
		return KindFixedDeposit, nil
	default:
		return "", ErrUnknownAccountKind
	}
}

// Title returns the human readable account kind name.
func (k Kind) Title() string {
	switch k {
	case KindCurrent:
		return "Current Account"
	case KindSavings:
		return "Savings Account"
	case KindFixedDeposit:
		return "Fixed Deposit Account"
	default:
		return string(k)
	}
}

// Account is the capability set shared by every account kind.
//
// The set of implementations is closed: CurrentAccount, SavingsAccount and
// FixedDepositAccount.
type Account interface {
	ID() string
	Kind() Kind
	Balance() float64
	Withdraw(amount float64) error
	Deposit(amount float64) error
	EvaluateRisk() Risk
	RecordTransaction(senderID, receiverID string, amount float64)
	Transactions() []Transaction

	sealed()
}

// InterestBearer is implemented by the account kinds that accrue interest.
type InterestBearer interface {
	CalculateInterest() float64
}

// Clock returns the current time. Accounts use it for maturity and ledger dates.
type Clock func() time.Time

// base holds the state common to every account kind.
type base struct {
	id      string
	balance float64
	ledger  Ledger
	clock   Clock
}

func newBase(id string, balance float64, clock Clock) base {
	if clock == nil {
		clock = time.Now
	}

	return base{id: id, balance: balance, clock: clock}
}

// ID returns the account identifier.
func (b *base) ID() string { return b.id }

// Balance returns the current balance.
func (b *base) Balance() float64 { return b.balance }

// RecordTransaction appends an entry dated today to the account ledger.
// The amount is stored with the sign given by the caller.
func (b *base) RecordTransaction(senderID, receiverID string, amount float64) {
	b.ledger.Append(NewTransaction(senderID, receiverID, amount, b.today()))
}

// Transactions returns a copy of the account ledger.
func (b *base) Transactions() []Transaction {
	return b.ledger.Entries()
}

func (b *base) today() time.Time {
	return truncateDay(b.clock())
}

func (b *base) sealed() {}

// RiskLevel classifies an account state.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Risk is the outcome of an account risk evaluation.
type Risk struct {
	Level  RiskLevel `json:"level"`
	Reason string    `json:"reason"`
}
