// Package reportprinter renders account reports for the console.
package reportprinter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/currencypkg"
)

const (
	banner    = "******************"
	separator = "------------------------------------"
	footer    = "************************************************************************************************************"
)

// Options controls text rendering.
type Options struct {
	NoColor bool
}

// Text writes a summary per account: its ledger, account details and risk evaluation.
func Text(w io.Writer, reports []domain.AccountReport, opts Options) error {
	p := &printer{w: w, opts: opts}

	for _, r := range reports {
		p.account(r)
	}

	return p.err
}

// JSON writes reports as an indented JSON array.
func JSON(w io.Writer, reports []domain.AccountReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(reports)
}

// Rejections writes one line per transfer that was rejected or left inconsistent.
func Rejections(w io.Writer, results []domain.TransferResult) error {
	p := &printer{w: w}

	for _, r := range results {
		req := r.Request

		switch {
		case r.Status == domain.TransferRejected:
			p.linef("Transfer %s -> %s (%s) rejected: %v", req.SenderID, req.ReceiverID, currencypkg.Format(req.Amount), r.Err)
		case r.Inconsistent():
			p.linef("Transfer %s -> %s (%s) debited but not credited: %v",
				req.SenderID, req.ReceiverID, currencypkg.Format(req.Amount), r.DepositErr)
		}
	}

	return p.err
}

type printer struct {
	w    io.Writer
	opts Options
	err  error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) account(r domain.AccountReport) {
	p.linef("%s Summary for Account %s %s", banner, r.ID, banner)

	for _, t := range r.Transactions {
		p.linef(separator)
		p.linef("Transaction ID: %s", t.ID)
		p.linef("Date: %s", t.Date.Format(domain.DateLayout))
		p.linef("Sender: %s", t.SenderID)
		p.linef("Receiver: %s", t.ReceiverID)
		p.linef("Amount: %s", currencypkg.Format(t.Amount))
		p.linef(separator)
	}

	p.linef("Account Info")
	p.linef("%s - Account Number: %s", r.Kind.Title(), r.ID)
	p.linef("Balance: %s", currencypkg.FormatAmount(r.Balance))

	switch r.Kind {
	case domain.KindCurrent:
		if r.OverdraftLimit != nil {
			p.linef("Overdraft Limit: %s", currencypkg.FormatAmount(*r.OverdraftLimit))
		}
	case domain.KindSavings:
		p.rate(r)

		if r.MinBalance != nil {
			p.linef("Minimum Balance: %s", currencypkg.FormatAmount(*r.MinBalance))
		}
	case domain.KindFixedDeposit:
		p.rate(r)

		if r.MaturityDate != nil {
			p.linef("Maturity Date: %s", r.MaturityDate.Format(domain.DateLayout))
		}

		status := "Active"
		if r.Matured {
			status = "Matured"
		}

		p.linef("Status: %s", status)
	}

	if r.Interest != nil {
		p.linef("Interest: %s", currencypkg.FormatAmount(*r.Interest))
	}

	p.linef("Account Risk Evaluation")
	p.linef("%s", p.risk(r))
	p.linef(footer)
}

func (p *printer) rate(r domain.AccountReport) {
	if r.InterestRate != nil {
		p.linef("Interest Rate: %s", currencypkg.Percent(*r.InterestRate))
	}
}

func (p *printer) risk(r domain.AccountReport) string {
	var attr color.Attribute

	switch r.Risk.Level {
	case domain.RiskHigh:
		attr = color.FgRed
	case domain.RiskMedium:
		attr = color.FgYellow
	default:
		attr = color.FgGreen
	}

	c := color.New(attr)
	if p.opts.NoColor {
		c.DisableColor()
	}

	level := string(r.Risk.Level)
	if level != "" {
		level = strings.ToUpper(level[:1]) + level[1:]
	}

	return c.Sprintf("%s-%s Risk: %s", r.Kind.Title(), level, r.Risk.Reason)
}
