// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Accounts(ctx context.Context) []domain.AccountReport
	Account(ctx context.Context, id string) (domain.AccountReport, error)
}

// Registrar registers new accounts.
type Registrar interface {
	Register(ctx context.Context, rec domain.AccountRecord) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service   Service
	registrar Registrar
}

// NewHandler returns account handler.
func NewHandler(s Service, r Registrar) *Handler {
	return &Handler{service: s, registrar: r}
}

type createRequest struct {
	ID               string  `json:"id" binding:"required,max=64"`
	Kind             string  `json:"kind" binding:"required"`
	Balance          float64 `json:"balance"`
	OverdraftLimit   float64 `json:"overdraft_limit" binding:"gte=0"`
	InterestRate     float64 `json:"interest_rate" binding:"gte=0,lte=1"`
	MinBalance       float64 `json:"min_balance"`
	TermInMonths     int     `json:"term_in_months" binding:"gte=0"`
	EarlyPenaltyRate float64 `json:"early_penalty_rate" binding:"gte=0,lte=1"`
	StartDate        string  `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r createRequest) record() domain.AccountRecord {
	rec := domain.AccountRecord{
		ID:               r.ID,
		Kind:             r.Kind,
		Balance:          r.Balance,
		OverdraftLimit:   r.OverdraftLimit,
		InterestRate:     r.InterestRate,
		MinBalance:       r.MinBalance,
		TermInMonths:     r.TermInMonths,
		EarlyPenaltyRate: r.EarlyPenaltyRate,
	}

	// Validated by the datetime binding.
	rec.StartDate, _ = time.Parse(domain.DateLayout, r.StartDate)

	return rec
}

// Create handles http request to register an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	acc, err := h.registrar.Register(ctx, req.record())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateAccount):
			gctx.JSON(http.StatusConflict, web.Error(domain.ErrDuplicateAccount))
		case errors.Is(err, domain.ErrUnknownAccountKind),
			errors.Is(err, domain.ErrInvalidAccountParams):
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(err))
		default:
			l.Error().Err(err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	report, err := h.service.Account(ctx, acc.ID())
	if err != nil {
		l.Error().Err(err).Str("account_id", acc.ID()).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: dataAccount{Account: report}})
}

type dataAccounts struct {
	Accounts []domain.AccountReport `json:"accounts"`
}

type dataAccount struct {
	Account domain.AccountReport `json:"account"`
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type getRequest struct {
	ID string `uri:"id" binding:"required,max=64"`
}

// List handles http request to list the reports of all accounts.
func (h *Handler) List(gctx *gin.Context) {
	accounts := h.service.Accounts(gctx.Request.Context())

	gctx.JSON(http.StatusOK, web.Response{Data: dataAccounts{Accounts: accounts}})
}

// Get handles http request to get one account report.
func (h *Handler) Get(gctx *gin.Context) {
	report, ok := h.account(gctx)
	if !ok {
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataAccount{Account: report}})
}

// Transactions handles http request to get the ledger of one account.
func (h *Handler) Transactions(gctx *gin.Context) {
	report, ok := h.account(gctx)
	if !ok {
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransactions{Transactions: report.Transactions}})
}

func (h *Handler) account(gctx *gin.Context) (domain.AccountReport, bool) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return domain.AccountReport{}, false
	}

	report, err := h.service.Account(ctx, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			gctx.JSON(http.StatusNotFound, web.Error(domain.ErrAccountNotFound))
			return domain.AccountReport{}, false
		}

		l.Error().Err(err).Str("account_id", req.ID).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return domain.AccountReport{}, false
	}

	return report, true
}
