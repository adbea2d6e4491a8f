package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an immutable ledger entry. Amount is negative on the sender's
// ledger and positive on the receiver's.
type Transaction struct {
	ID         uuid.UUID `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
}

// NewTransaction returns a transaction with a fresh ID.
func NewTransaction(senderID, receiverID string, amount float64, date time.Time) Transaction {
	return Transaction{
		ID:         uuid.New(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Date:       date,
	}
}

// Ledger is an append-only sequence of transactions in order of application.
type Ledger struct {
	entries []Transaction
}

// Append adds t to the end of the ledger.
func (l *Ledger) Append(t Transaction) {
	l.entries = append(l.entries, t)
}

// Entries returns a copy of the recorded transactions.
func (l *Ledger) Entries() []Transaction {
	out := make([]Transaction, len(l.entries))
	copy(out, l.entries)

	return out
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	return len(l.entries)
}
