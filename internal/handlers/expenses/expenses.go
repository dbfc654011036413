package expenses

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/dto"
	"github.com/GlebRadaev/gosplit/internal/service/expenseservice"
	"github.com/GlebRadaev/gosplit/pkg/auth"
	"github.com/GlebRadaev/gosplit/pkg/utils"
	"github.com/GlebRadaev/gosplit/pkg/validate"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=expenses.go -destination=mock_expenses.go -package=expenses

type Service interface {
	CreateExpense(ctx context.Context, userID string, in expenseservice.CreateInput) (*domain.Expense, error)
	GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID, groupID string) ([]domain.UserExpense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, in expenseservice.UpdateInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

type ExpensesHandler struct {
	expenseService Service
}

func New(expenseService Service) *ExpensesHandler {
	return &ExpensesHandler{
		expenseService: expenseService,
	}
}

// CreateExpense godoc
//
//	@Summary		Add an expense
//	@Description	Record an expense in a group. Provide either splits (explicit amounts owed) or a splitMethod with its field: participants for EQUAL, amounts for EXACT, percentages for PERCENTAGE, shares for SHARES.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateExpenseRequestDTO	true	"Expense"
//	@Success		201		{object}	dto.CreateExpenseResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Not a member of the group"
//	@Failure		422		{object}	utils.Response	"Splits do not add up to the amount"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses [post]
func (h *ExpensesHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	strategy, err := req.Strategy()
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	in := expenseservice.CreateInput{
		Description: req.Description,
		Amount:      req.Amount,
		GroupID:     req.GroupID,
		PaidByID:    req.PaidByID,
		Strategy:    strategy,
	}
	if req.Date != nil {
		in.Date = *req.Date
	}
	for _, s := range req.Splits {
		in.Splits = append(in.Splits, expenseservice.SplitInput{UserID: s.UserID, AmountOwed: s.AmountOwed})
	}

	expense, err := h.expenseService.CreateExpense(r.Context(), userID, in)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateExpenseResponseDTO{
		Message: "Expense created successfully",
		Expense: dto.NewExpenseDTO(expense),
	})
}

// ListExpenses godoc
//
//	@Summary		List the caller's expense splits
//	@Description	Every split owed by the caller with its expense, payer and group, newest expense first.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			groupId	query		string	false	"Limit to one group"
//	@Success		200		{array}		dto.UserExpenseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses [get]
func (h *ExpensesHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.expenseService.ListExpenses(r.Context(), userID, r.URL.Query().Get("groupId"))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserExpenseDTOs(items))
}

// GetExpense godoc
//
//	@Summary		Get an expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			expenseID	path		string	true	"Expense ID"
//	@Success		200			{object}	dto.ExpenseDTO
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		403			{object}	utils.Response	"Not a member of the group"
//	@Failure		404			{object}	utils.Response	"Expense not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/{expenseID} [get]
func (h *ExpensesHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expense, err := h.expenseService.GetExpense(r.Context(), userID, chi.URLParam(r, "expenseID"))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewExpenseDTO(expense))
}

// UpdateExpense godoc
//
//	@Summary		Update an expense
//	@Description	Change the description or amount. A new amount rescales the existing splits.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			expenseID	path		string						true	"Expense ID"
//	@Param			request		body		dto.UpdateExpenseRequestDTO	true	"Changes"
//	@Success		200			{object}	dto.ExpenseDTO
//	@Failure		400			{object}	utils.Response	"Invalid request body"
//	@Failure		401			{object}	utils.Response	"User not authorized"
//	@Failure		403			{object}	utils.Response	"Not a member of the group"
//	@Failure		404			{object}	utils.Response	"Expense not found"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/{expenseID} [put]
func (h *ExpensesHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.UpdateExpenseRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := h.expenseService.UpdateExpense(r.Context(), userID, chi.URLParam(r, "expenseID"), expenseservice.UpdateInput{
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewExpenseDTO(expense))
}

// DeleteExpense godoc
//
//	@Summary		Delete an expense
//	@Description	Remove the expense and all of its splits.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Param			expenseID	path	string	true	"Expense ID"
//	@Success		204
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Not a member of the group"
//	@Failure		404	{object}	utils.Response	"Expense not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/expenses/{expenseID} [delete]
func (h *ExpensesHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.expenseService.DeleteExpense(r.Context(), userID, chi.URLParam(r, "expenseID")); err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
