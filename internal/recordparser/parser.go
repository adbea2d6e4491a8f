// Package recordparser reads account and transfer records from the
// comma-separated input files.
//
// Account rows:
//
//	id,current,balance,overdraftLimit
//	id,saving,balance,interestRate,minBalance
//	id,deposit,balance,interestRate,termInMonths,earlyPenaltyRate,YYYY-MM-DD
//
// Transfer rows:
//
//	senderID,amount,receiverID
//
// Malformed rows are reported as LineErrors and skipped.
package recordparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-ledger/internal/domain"
)

var (
	// ErrFieldCount indicates a row with the wrong number of fields.
	ErrFieldCount = errors.New("wrong number of fields")
	// ErrInvalidField indicates a field that cannot be parsed.
	ErrInvalidField = errors.New("invalid field")
)

var validate = validator.New()

// LineError describes a rejected input row.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

type baseRow struct {
	ID      string `validate:"required"`
	Kind    string `validate:"required"`
	Balance float64
}

type currentRow struct {
	OverdraftLimit float64 `validate:"gte=0"`
}

type savingsRow struct {
	InterestRate float64 `validate:"gte=0,lte=1"`
	MinBalance   float64 `validate:"gte=0"`
}

type depositRow struct {
	InterestRate     float64 `validate:"gte=0,lte=1"`
	TermInMonths     int     `validate:"gt=0"`
	EarlyPenaltyRate float64 `validate:"gte=0,lte=1"`
}

type transferRow struct {
	SenderID   string  `validate:"required"`
	Amount     float64 `validate:"gt=0"`
	ReceiverID string  `validate:"required"`
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	return cr
}

// eachRow calls fn for every row of r with its line number. Rows that fail
// to tokenize are reported as LineErrors.
func eachRow(r io.Reader, fn func(line int, fields []string) error) ([]LineError, error) {
	cr := newReader(r)

	var lineErrs []LineError

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return lineErrs, nil
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			lineErrs = append(lineErrs, LineError{Line: parseErr.Line, Err: parseErr.Err})
			continue
		}

		if err != nil {
			return lineErrs, err
		}

		line, _ := cr.FieldPos(0)

		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		if err := fn(line, fields); err != nil {
			lineErrs = append(lineErrs, LineError{Line: line, Err: err})
		}
	}
}

// ParseAccounts reads account records from r.
//
// Rows with an unrecognised kind tag are returned with ID, Kind and Balance
// only, so the account factory can skip them.
func ParseAccounts(r io.Reader) ([]domain.AccountRecord, []LineError, error) {
	var records []domain.AccountRecord

	lineErrs, err := eachRow(r, func(line int, fields []string) error {
		rec, err := parseAccount(fields)
		if err != nil {
			return err
		}

		records = append(records, rec)

		return nil
	})

	return records, lineErrs, err
}

func parseAccount(fields []string) (domain.AccountRecord, error) {
	if len(fields) < 3 {
		return domain.AccountRecord{}, fmt.Errorf("%w: got %d, want at least 3", ErrFieldCount, len(fields))
	}

	balance, err := parseFloat("balance", fields[2])
	if err != nil {
		return domain.AccountRecord{}, err
	}

	base := baseRow{ID: fields[0], Kind: fields[1], Balance: balance}
	if err := validate.Struct(base); err != nil {
		return domain.AccountRecord{}, err
	}

	rec := domain.AccountRecord{ID: base.ID, Kind: base.Kind, Balance: base.Balance}

	kind, err := domain.ParseKind(base.Kind)
	if err != nil {
		return rec, nil
	}

	switch kind {
	case domain.KindCurrent:
		return parseCurrent(rec, fields[3:])
	case domain.KindSavings:
		return parseSavings(rec, fields[3:])
	case domain.KindFixedDeposit:
		return parseDeposit(rec, fields[3:])
	}

	return rec, nil
}

func parseCurrent(rec domain.AccountRecord, fields []string) (domain.AccountRecord, error) {
	if err := wantFields(fields, 1); err != nil {
		return rec, err
	}

	limit, err := parseFloat("overdraft limit", fields[0])
	if err != nil {
		return rec, err
	}

	row := currentRow{OverdraftLimit: limit}
	if err := validate.Struct(row); err != nil {
		return rec, err
	}

	rec.OverdraftLimit = row.OverdraftLimit

	return rec, nil
}

func parseSavings(rec domain.AccountRecord, fields []string) (domain.AccountRecord, error) {
	if err := wantFields(fields, 2); err != nil {
		return rec, err
	}

	rate, err := parseFloat("interest rate", fields[0])
	if err != nil {
		return rec, err
	}

	minBalance, err := parseFloat("minimum balance", fields[1])
	if err != nil {
		return rec, err
	}

	row := savingsRow{InterestRate: rate, MinBalance: minBalance}
	if err := validate.Struct(row); err != nil {
		return rec, err
	}

	rec.InterestRate = row.InterestRate
	rec.MinBalance = row.MinBalance

	return rec, nil
}

func parseDeposit(rec domain.AccountRecord, fields []string) (domain.AccountRecord, error) {
	if err := wantFields(fields, 4); err != nil {
		return rec, err
	}

	rate, err := parseFloat("interest rate", fields[0])
	if err != nil {
		return rec, err
	}

	term, err := strconv.Atoi(fields[1])
	if err != nil {
		return rec, fmt.Errorf("%w: term %q", ErrInvalidField, fields[1])
	}

	penalty, err := parseFloat("early penalty rate", fields[2])
	if err != nil {
		return rec, err
	}

	start, err := time.Parse(domain.DateLayout, fields[3])
	if err != nil {
		return rec, fmt.Errorf("%w: start date %q", ErrInvalidField, fields[3])
	}

	row := depositRow{InterestRate: rate, TermInMonths: term, EarlyPenaltyRate: penalty}
	if err := validate.Struct(row); err != nil {
		return rec, err
	}

	rec.InterestRate = row.InterestRate
	rec.TermInMonths = row.TermInMonths
	rec.EarlyPenaltyRate = row.EarlyPenaltyRate
	rec.StartDate = start

	return rec, nil
}

// ParseTransfers reads transfer requests from r in file order.
func ParseTransfers(r io.Reader) ([]domain.TransferRequest, []LineError, error) {
	var reqs []domain.TransferRequest

	lineErrs, err := eachRow(r, func(line int, fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("%w: got %d, want 3", ErrFieldCount, len(fields))
		}

		amount, err := parseFloat("amount", fields[1])
		if err != nil {
			return err
		}

		row := transferRow{SenderID: fields[0], Amount: amount, ReceiverID: fields[2]}
		if err := validate.Struct(row); err != nil {
			return err
		}

		reqs = append(reqs, domain.TransferRequest{
			SenderID:   row.SenderID,
			Amount:     row.Amount,
			ReceiverID: row.ReceiverID,
		})

		return nil
	})

	return reqs, lineErrs, err
}

// ReadAccountsFile parses the account records stored at path.
func ReadAccountsFile(path string) ([]domain.AccountRecord, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return ParseAccounts(f)
}

// ReadTransfersFile parses the transfer requests stored at path.
func ReadTransfersFile(path string) ([]domain.TransferRequest, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return ParseTransfers(f)
}

func wantFields(fields []string, n int) error {
	if len(fields) < n {
		return fmt.Errorf("%w: got %d variant fields, want %d", ErrFieldCount, len(fields), n)
	}

	return nil
}

func parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidField, name, s)
	}

	return f, nil
}
