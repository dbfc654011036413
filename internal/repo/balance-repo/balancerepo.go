package balancerepo

import (
	"context"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/pg"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// SumPaid is the total of expenses the user paid for. An empty groupID
// covers every group, here and in the other sums.
func (r *Repository) SumPaid(ctx context.Context, userID, groupID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE paid_by_id = $1 AND ($2 = '' OR group_id = $2)
	`
	return r.sum(ctx, "paid", query, userID, groupID)
}

// SumOwed is the total of the user's own splits, including splits of
// expenses the user paid for.
func (r *Repository) SumOwed(ctx context.Context, userID, groupID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.amount_owed), 0)
		FROM expense_splits s
		JOIN expenses e ON e.id = s.expense_id
		WHERE s.user_id = $1 AND ($2 = '' OR e.group_id = $2)
	`
	return r.sum(ctx, "owed", query, userID, groupID)
}

func (r *Repository) SumPaymentsMade(ctx context.Context, userID, groupID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE payer_id = $1 AND ($2 = '' OR group_id = $2)
	`
	return r.sum(ctx, "payments made", query, userID, groupID)
}

func (r *Repository) SumPaymentsReceived(ctx context.Context, userID, groupID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE payee_id = $1 AND ($2 = '' OR group_id = $2)
	`
	return r.sum(ctx, "payments received", query, userID, groupID)
}

func (r *Repository) sum(ctx context.Context, name, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		zap.L().Error("can't sum "+name, zap.Error(err))
		return decimal.Zero, err
	}
	return total, nil
}

// ExpensesByGroups loads every expense of the given groups with its payer and splits.
func (r *Repository) ExpensesByGroups(ctx context.Context, groupIDs []string) ([]domain.Expense, error) {
	if len(groupIDs) == 0 {
		return []domain.Expense{}, nil
	}
	query := `
		SELECT e.id, e.amount, e.group_id, e.paid_by_id, payer.username,
			s.id, s.user_id, s.amount_owed, member.username
		FROM expenses e
		JOIN users payer ON payer.id = e.paid_by_id
		JOIN expense_splits s ON s.expense_id = e.id
		JOIN users member ON member.id = s.user_id
		WHERE e.group_id = ANY($1)
		ORDER BY e.date, e.id
	`
	rows, err := r.db.Query(ctx, query, groupIDs)
	if err != nil {
		zap.L().Error("can't get group expenses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		var e domain.Expense
		var s domain.ExpenseSplit
		if err := rows.Scan(
			&e.ID, &e.Amount, &e.GroupID, &e.PaidByID, &e.PaidBy.Username,
			&s.ID, &s.UserID, &s.AmountOwed, &s.Username,
		); err != nil {
			zap.L().Error("can't scan group expense", zap.Error(err))
			return nil, err
		}
		if n := len(expenses); n == 0 || expenses[n-1].ID != e.ID {
			e.PaidBy.ID = e.PaidByID
			expenses = append(expenses, e)
		}
		s.ExpenseID = e.ID
		last := &expenses[len(expenses)-1]
		last.Splits = append(last.Splits, s)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate group expenses", zap.Error(err))
		return nil, err
	}
	return expenses, nil
}
