package payments

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/dto"
	"github.com/GlebRadaev/gosplit/internal/service/paymentservice"
	"github.com/GlebRadaev/gosplit/pkg/auth"
	"github.com/GlebRadaev/gosplit/pkg/utils"
	"github.com/GlebRadaev/gosplit/pkg/validate"
)

//go:generate mockgen -source=payments.go -destination=mock_payments.go -package=payments

type Service interface {
	RecordPayment(ctx context.Context, userID string, in paymentservice.RecordInput) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID, groupID string) ([]domain.Payment, error)
}

type PaymentsHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentsHandler {
	return &PaymentsHandler{
		paymentService: paymentService,
	}
}

// RecordPayment godoc
//
//	@Summary		Record a payment
//	@Description	Record money paid directly from one user to another. The payer defaults to the caller; the caller must be the payer or the payee.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RecordPaymentRequestDTO	true	"Payment"
//	@Success		201		{object}	dto.PaymentDTO
//	@Failure		400		{object}	utils.Response	"Invalid payment data"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Caller is neither payer nor payee"
//	@Failure		404		{object}	utils.Response	"Payer or payee not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments [post]
func (h *PaymentsHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.RecordPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := h.paymentService.RecordPayment(r.Context(), userID, paymentservice.RecordInput{
		PayerID: req.PayerID,
		PayeeID: req.PayeeID,
		Amount:  req.Amount,
		GroupID: req.GroupID,
	})
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewPaymentDTO(*payment))
}

// ListPayments godoc
//
//	@Summary		List payments
//	@Description	Payments the caller made or received, newest first.
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			groupId	query		string	false	"Limit to one group"
//	@Success		200		{array}		dto.PaymentDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/payments [get]
func (h *PaymentsHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	payments, err := h.paymentService.ListPayments(r.Context(), userID, r.URL.Query().Get("groupId"))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewPaymentDTOs(payments))
}
