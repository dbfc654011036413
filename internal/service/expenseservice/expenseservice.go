package expenseservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/split"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

//go:generate mockgen -source=expenseservice.go -destination=mock_expenseservice.go -package=expenseservice

type Repo interface {
	Create(ctx context.Context, expense *domain.Expense) error
	FindByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListByUser(ctx context.Context, userID, groupID string) ([]domain.UserExpense, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, expenseID string) error
}

type GroupRepo interface {
	ListMembers(ctx context.Context, groupID string) ([]domain.Member, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}

// SplitInput is a caller-computed share of an expense.
type SplitInput struct {
	UserID     string
	AmountOwed decimal.Decimal
}

// CreateInput carries either precomputed Splits or a Strategy, never both.
type CreateInput struct {
	Description string
	Amount      decimal.Decimal
	GroupID     string
	PaidByID    string
	Date        time.Time
	Splits      []SplitInput
	Strategy    split.Strategy
}

// UpdateInput changes only the fields that are set.
type UpdateInput struct {
	Description *string
	Amount      *decimal.Decimal
}

type Service struct {
	expenseRepo Repo
	groupRepo   GroupRepo
}

func New(expenseRepo Repo, groupRepo GroupRepo) *Service {
	return &Service{
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
	}
}

// CreateExpense validates the expense against the group's members and stores
// it with its splits atomically.
func (s *Service) CreateExpense(ctx context.Context, userID string, in CreateInput) (*domain.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, apperrors.InvalidInput("description is required")
	}
	if err := checkAmount("amount", in.Amount); err != nil {
		return nil, err
	}
	if in.GroupID == "" {
		return nil, apperrors.InvalidInput("groupId is required")
	}
	if in.Strategy != nil && len(in.Splits) > 0 {
		return nil, apperrors.InvalidInput("splits cannot be combined with a split method")
	}

	members, err := s.groupRepo.ListMembers(ctx, in.GroupID)
	if err != nil {
		zap.L().Error("can't load group members", zap.String("group_id", in.GroupID), zap.Error(err))
		return nil, apperrors.Persistence("create expense", err)
	}
	usernames := make(map[string]string, len(members))
	for _, m := range members {
		usernames[m.ID] = m.Username
	}
	if _, ok := usernames[userID]; !ok {
		return nil, apperrors.Forbidden("not a member of this group")
	}

	paidByID := in.PaidByID
	if paidByID == "" {
		paidByID = userID
	}
	if _, ok := usernames[paidByID]; !ok {
		return nil, apperrors.InvalidInput("payer %s is not a member of this group", paidByID)
	}

	allocations, err := s.allocate(in)
	if err != nil {
		return nil, err
	}
	for _, a := range allocations {
		if _, ok := usernames[a.UserID]; !ok {
			return nil, apperrors.InvalidInput("user %s in splits is not a member of this group", a.UserID)
		}
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	expense := &domain.Expense{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      in.Amount,
		GroupID:     in.GroupID,
		PaidByID:    paidByID,
		Date:        date,
		PaidBy:      domain.Member{ID: paidByID, Username: usernames[paidByID]},
		Splits:      make([]domain.ExpenseSplit, len(allocations)),
	}
	for i, a := range allocations {
		expense.Splits[i] = domain.ExpenseSplit{
			ID:         uuid.NewString(),
			ExpenseID:  expense.ID,
			UserID:     a.UserID,
			AmountOwed: a.AmountOwed,
			Username:   usernames[a.UserID],
		}
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		zap.L().Error("can't create expense", zap.String("group_id", in.GroupID), zap.Error(err))
		return nil, apperrors.Persistence("create expense", err)
	}
	zap.L().Info("expense created",
		zap.String("expense_id", expense.ID),
		zap.String("group_id", expense.GroupID),
		zap.Int("splits", len(expense.Splits)),
	)
	return expense, nil
}

func (s *Service) allocate(in CreateInput) ([]split.Allocation, error) {
	if in.Strategy != nil {
		return split.Allocate(in.Amount, in.Strategy)
	}
	if len(in.Splits) == 0 {
		return nil, apperrors.InvalidInput("splits must be a non-empty array")
	}

	seen := make(map[string]struct{}, len(in.Splits))
	allocations := make([]split.Allocation, len(in.Splits))
	for i, sp := range in.Splits {
		if sp.UserID == "" {
			return nil, apperrors.InvalidInput("each split must have a userId")
		}
		if _, dup := seen[sp.UserID]; dup {
			return nil, apperrors.InvalidInput("user %s appears in more than one split", sp.UserID)
		}
		seen[sp.UserID] = struct{}{}
		if sp.AmountOwed.IsNegative() {
			return nil, apperrors.InvalidInput("split amounts must be non-negative")
		}
		if !hasCents(sp.AmountOwed) {
			return nil, apperrors.InvalidInput("split amounts must have at most 2 decimal places")
		}
		allocations[i] = split.Allocation{UserID: sp.UserID, AmountOwed: sp.AmountOwed}
	}

	if sum := split.Total(allocations); !split.Reconciles(in.Amount, sum) {
		return nil, apperrors.SplitMismatch("sum of splits", in.Amount, sum)
	}
	return allocations, nil
}

// GetExpense returns the expense if the caller belongs to its group.
func (s *Service) GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error) {
	return s.load(ctx, userID, expenseID, "get expense")
}

// ListExpenses returns the caller's splits, newest expense first. An empty
// groupID lists every group.
func (s *Service) ListExpenses(ctx context.Context, userID, groupID string) ([]domain.UserExpense, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, userID, groupID)
	if err != nil {
		return nil, apperrors.Persistence("list expenses", err)
	}
	return expenses, nil
}

// UpdateExpense edits description and amount. A new amount rescales the
// existing splits proportionally.
func (s *Service) UpdateExpense(ctx context.Context, userID, expenseID string, in UpdateInput) (*domain.Expense, error) {
	if in.Description == nil && in.Amount == nil {
		return nil, apperrors.InvalidInput("nothing to update")
	}
	expense, err := s.load(ctx, userID, expenseID, "update expense")
	if err != nil {
		return nil, err
	}

	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, apperrors.InvalidInput("description is required")
		}
		expense.Description = description
	}

	if in.Amount != nil && !in.Amount.Equal(expense.Amount) {
		if err := checkAmount("amount", *in.Amount); err != nil {
			return nil, err
		}
		current := make([]split.Allocation, len(expense.Splits))
		for i, sp := range expense.Splits {
			current[i] = split.Allocation{UserID: sp.UserID, AmountOwed: sp.AmountOwed}
		}
		rescaled, err := split.Rescale(*in.Amount, current)
		if err != nil {
			return nil, err
		}
		for i := range expense.Splits {
			expense.Splits[i].AmountOwed = rescaled[i].AmountOwed
		}
		expense.Amount = *in.Amount
	}

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("expense not found")
		}
		zap.L().Error("can't update expense", zap.String("expense_id", expenseID), zap.Error(err))
		return nil, apperrors.Persistence("update expense", err)
	}
	zap.L().Info("expense updated", zap.String("expense_id", expenseID))
	return expense, nil
}

// DeleteExpense removes the expense and its splits.
func (s *Service) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if _, err := s.load(ctx, userID, expenseID, "delete expense"); err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, expenseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("expense not found")
		}
		zap.L().Error("can't delete expense", zap.String("expense_id", expenseID), zap.Error(err))
		return apperrors.Persistence("delete expense", err)
	}
	zap.L().Info("expense deleted", zap.String("expense_id", expenseID))
	return nil
}

func (s *Service) load(ctx context.Context, userID, expenseID, op string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	if expense == nil {
		return nil, apperrors.NotFound("expense not found")
	}
	isMember, err := s.groupRepo.IsMember(ctx, expense.GroupID, userID)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	if !isMember {
		return nil, apperrors.Forbidden("not a member of this expense's group")
	}
	return expense, nil
}

func checkAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.InvalidInput("%s must be positive", field)
	}
	if !hasCents(amount) {
		return apperrors.InvalidInput("%s must have at most 2 decimal places", field)
	}
	return nil
}

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}
