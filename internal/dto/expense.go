package dto

import (
	"errors"
	"time"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/split"
	"github.com/shopspring/decimal"
)

type SplitRequestDTO struct {
	UserID     string          `json:"userId" validate:"required"`
	AmountOwed decimal.Decimal `json:"amountOwed" swaggertype:"string" example:"60.25"`
}

type AmountRequestDTO struct {
	UserID string          `json:"userId" validate:"required"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"20.00"`
}

type PercentageRequestDTO struct {
	UserID     string          `json:"userId" validate:"required"`
	Percentage decimal.Decimal `json:"percentage" swaggertype:"string" example:"50"`
}

type ShareRequestDTO struct {
	UserID string `json:"userId" validate:"required"`
	Shares int64  `json:"shares" validate:"gte=0" example:"2"`
}

// CreateExpenseRequestDTO is keyed by splitMethod: without it splits is
// required, otherwise exactly the field of that method is.
type CreateExpenseRequestDTO struct {
	Description  string                 `json:"description" validate:"required,max=255" example:"Dinner"`
	Amount       decimal.Decimal        `json:"amount" swaggertype:"string" example:"120.50"`
	GroupID      string                 `json:"groupId" validate:"required"`
	PaidByID     string                 `json:"paidById"`
	Date         *time.Time             `json:"date"`
	SplitMethod  split.Method           `json:"splitMethod" validate:"omitempty,oneof=EQUAL EXACT PERCENTAGE SHARES" enums:"EQUAL,EXACT,PERCENTAGE,SHARES"`
	Splits       []SplitRequestDTO      `json:"splits" validate:"omitempty,dive"`
	Participants []string               `json:"participants" validate:"omitempty,dive,required"`
	Amounts      []AmountRequestDTO     `json:"amounts" validate:"omitempty,dive"`
	Percentages  []PercentageRequestDTO `json:"percentages" validate:"omitempty,dive"`
	Shares       []ShareRequestDTO      `json:"shares" validate:"omitempty,dive"`
}

// Strategy resolves the split method. It returns nil for the manual splits
// variant and an error when fields of another variant are present.
func (r *CreateExpenseRequestDTO) Strategy() (split.Strategy, error) {
	present := []struct {
		method split.Method
		ok     bool
	}{
		{"", len(r.Splits) > 0},
		{split.MethodEqual, len(r.Participants) > 0},
		{split.MethodExact, len(r.Amounts) > 0},
		{split.MethodPercentage, len(r.Percentages) > 0},
		{split.MethodShares, len(r.Shares) > 0},
	}
	for _, p := range present {
		if p.method == r.SplitMethod && !p.ok {
			return nil, errors.New(variantField(r.SplitMethod) + " is required")
		}
	}
	for _, p := range present {
		if p.ok && p.method != r.SplitMethod {
			return nil, errors.New(variantField(p.method) + " cannot be combined with " + describe(r.SplitMethod))
		}
	}

	switch r.SplitMethod {
	case split.MethodEqual:
		return split.Equal{Members: r.Participants}, nil
	case split.MethodExact:
		portions := make([]split.Portion, len(r.Amounts))
		for i, a := range r.Amounts {
			portions[i] = split.Portion{UserID: a.UserID, Value: a.Amount}
		}
		return split.Exact{Amounts: portions}, nil
	case split.MethodPercentage:
		portions := make([]split.Portion, len(r.Percentages))
		for i, p := range r.Percentages {
			portions[i] = split.Portion{UserID: p.UserID, Value: p.Percentage}
		}
		return split.Percentage{Percentages: portions}, nil
	case split.MethodShares:
		weights := make([]split.Weight, len(r.Shares))
		for i, s := range r.Shares {
			weights[i] = split.Weight{UserID: s.UserID, Shares: s.Shares}
		}
		return split.Shares{Weights: weights}, nil
	default:
		return nil, nil
	}
}

func variantField(m split.Method) string {
	switch m {
	case split.MethodEqual:
		return "participants"
	case split.MethodExact:
		return "amounts"
	case split.MethodPercentage:
		return "percentages"
	case split.MethodShares:
		return "shares"
	default:
		return "splits"
	}
}

func describe(m split.Method) string {
	if m == "" {
		return "manual splits"
	}
	return "splitMethod " + string(m)
}

type UpdateExpenseRequestDTO struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=255"`
	Amount      *decimal.Decimal `json:"amount" swaggertype:"string" example:"130.00"`
}

type SplitDTO struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Username   string          `json:"username,omitempty"`
	AmountOwed decimal.Decimal `json:"amountOwed" swaggertype:"string" example:"60.25"`
}

type ExpenseDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"description" example:"Dinner"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"120.50"`
	GroupID     string          `json:"groupId"`
	PaidByID    string          `json:"paidById"`
	Date        time.Time       `json:"date"`
	PaidBy      MemberDTO       `json:"paidBy"`
	Splits      []SplitDTO      `json:"splits,omitempty"`
}

type CreateExpenseResponseDTO struct {
	Message string     `json:"message"`
	Expense ExpenseDTO `json:"expense"`
}

// UserExpenseDTO is one of the caller's splits with its expense attached.
type UserExpenseDTO struct {
	ID         string                `json:"id"`
	ExpenseID  string                `json:"expenseId"`
	UserID     string                `json:"userId"`
	AmountOwed decimal.Decimal       `json:"amountOwed" swaggertype:"string" example:"60.25"`
	Expense    UserExpenseDetailsDTO `json:"expense"`
}

type UserExpenseDetailsDTO struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"120.50"`
	Date        time.Time       `json:"date"`
	PaidBy      MemberDTO       `json:"paidBy"`
	Group       GroupRefDTO     `json:"group"`
}

type GroupRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewExpenseDTO(e *domain.Expense) ExpenseDTO {
	splits := make([]SplitDTO, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = SplitDTO{ID: s.ID, UserID: s.UserID, Username: s.Username, AmountOwed: s.AmountOwed}
	}
	return ExpenseDTO{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		GroupID:     e.GroupID,
		PaidByID:    e.PaidByID,
		Date:        e.Date,
		PaidBy:      NewMemberDTO(e.PaidBy),
		Splits:      splits,
	}
}

func NewUserExpenseDTOs(items []domain.UserExpense) []UserExpenseDTO {
	out := make([]UserExpenseDTO, len(items))
	for i, item := range items {
		out[i] = UserExpenseDTO{
			ID:         item.Split.ID,
			ExpenseID:  item.Split.ExpenseID,
			UserID:     item.Split.UserID,
			AmountOwed: item.Split.AmountOwed,
			Expense: UserExpenseDetailsDTO{
				ID:          item.Expense.ID,
				Description: item.Expense.Description,
				Amount:      item.Expense.Amount,
				Date:        item.Expense.Date,
				PaidBy:      NewMemberDTO(item.Expense.PaidBy),
				Group:       GroupRefDTO{ID: item.Expense.GroupID, Name: item.GroupName},
			},
		}
	}
	return out
}
