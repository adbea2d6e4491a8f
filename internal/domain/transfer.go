package domain

// TransferStatus is the state of a transfer request.
type TransferStatus string

// Transfer states. Applied and Rejected are terminal.
const (
	TransferPending  TransferStatus = "pending"
	TransferApplied  TransferStatus = "applied"
	TransferRejected TransferStatus = "rejected"
)

// TransferRequest moves Amount from SenderID to ReceiverID.
type TransferRequest struct {
	SenderID   string  `json:"sender_id"`
	Amount     float64 `json:"amount"`
	ReceiverID string  `json:"receiver_id"`
}

// TransferResult is the outcome of processing one TransferRequest.
//
// Err is set for rejected requests. DepositErr is set when the sender was
// debited but the receiver refused the deposit; the transfer stays applied.
type TransferResult struct {
	Request    TransferRequest `json:"request"`
	Status     TransferStatus  `json:"status"`
	Err        error           `json:"-"`
	DepositErr error           `json:"-"`
}

// Inconsistent reports whether the sender was debited without the receiver being credited.
func (r TransferResult) Inconsistent() bool {
	return r.Status == TransferApplied && r.DepositErr != nil
}
