package balance

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/dto"
	"github.com/GlebRadaev/gosplit/pkg/auth"
	"github.com/GlebRadaev/gosplit/pkg/utils"
)

//go:generate mockgen -source=balance.go -destination=mock_balance.go -package=balance

type Service interface {
	Overall(ctx context.Context, userID, groupID string) (*domain.Summary, error)
	Detailed(ctx context.Context, userID, groupID string) ([]domain.CounterpartyBalance, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetOverall godoc
//
//	@Summary		Get overall balance
//	@Description	Totals paid and owed by the authenticated user and the resulting net balance. Positive means the user is owed money.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			groupId	query		string							false	"Limit to one group"
//	@Success		200		{object}	dto.OverallBalanceResponseDTO	"Overall balance"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		403		{object}	utils.Response					"Not a member of the group"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/balance/overall [get]
func (h *BalanceHandler) GetOverall(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.balanceService.Overall(r.Context(), userID, r.URL.Query().Get("groupId"))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewOverallBalanceDTO(summary))
}

// GetDetailed godoc
//
//	@Summary		Get balances per person
//	@Description	What each counterparty owes the authenticated user (negative: what the user owes them). Settled counterparties are omitted.
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Param			groupId	query		string							false	"Limit to one group"
//	@Success		200		{array}		dto.CounterpartyBalanceDTO		"Balances sorted by username"
//	@Failure		401		{object}	utils.Response					"User not authorized"
//	@Failure		403		{object}	utils.Response					"Not a member of the group"
//	@Failure		500		{object}	utils.Response					"Internal server error"
//	@Router			/api/balance/detailed [get]
func (h *BalanceHandler) GetDetailed(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	balances, err := h.balanceService.Detailed(r.Context(), userID, r.URL.Query().Get("groupId"))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCounterpartyBalanceDTOs(balances))
}
