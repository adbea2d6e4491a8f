// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, req domain.TransferRequest) domain.TransferResult
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type request struct {
	SenderID   string  `json:"sender_id" binding:"required,max=64"`
	ReceiverID string  `json:"receiver_id" binding:"required,max=64"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// Transfer is the client facing outcome of a transfer request.
type Transfer struct {
	Request      domain.TransferRequest `json:"request"`
	Status       domain.TransferStatus  `json:"status"`
	DepositError string                 `json:"deposit_error,omitempty"`
}

type data struct {
	Transfer Transfer `json:"transfer"`
}

// Create handles http request to transfer money between two accounts.
//
// Unknown accounts answer 404 and refused withdrawals answer 422. A transfer
// whose deposit was refused is still applied and reports deposit_error.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindingError(err))

		return
	}

	result := h.service.Transfer(ctx, domain.TransferRequest{
		SenderID:   req.SenderID,
		Amount:     req.Amount,
		ReceiverID: req.ReceiverID,
	})

	if result.Status == domain.TransferRejected {
		switch {
		case errors.Is(result.Err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(result.Err))
		case errors.Is(result.Err, domain.ErrInsufficientFunds),
			errors.Is(result.Err, domain.ErrInvalidAmount),
			errors.Is(result.Err, domain.ErrUnsupportedOperation):
			gctx.JSON(http.StatusUnprocessableEntity, web.Error(result.Err))
		default:
			l.Error().Err(result.Err).Send()
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	t := Transfer{Request: result.Request, Status: result.Status}
	if result.DepositErr != nil {
		t.DepositError = result.DepositErr.Error()
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Transfer: t}})
}
