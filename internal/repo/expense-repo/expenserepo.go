package expenserepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

// Create saves the expense and all of its splits in one transaction.
func (r *Repository) Create(ctx context.Context, expense *domain.Expense) error {
	expenseQuery := `
		INSERT INTO expenses (id, description, amount, group_id, paid_by_id, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	splitQuery := `
		INSERT INTO expense_splits (id, expense_id, user_id, amount_owed)
		VALUES ($1, $2, $3, $4)
	`
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, expenseQuery,
			expense.ID, expense.Description, expense.Amount, expense.GroupID, expense.PaidByID, expense.Date)
		if err != nil {
			zap.L().Error("can't save expense", zap.Error(err))
			return err
		}
		for _, s := range expense.Splits {
			if _, err := r.db.Exec(ctx, splitQuery, s.ID, expense.ID, s.UserID, s.AmountOwed); err != nil {
				zap.L().Error("can't save expense split", zap.String("expense_id", expense.ID), zap.Error(err))
				return err
			}
		}
		return nil
	})
}

// FindByID returns the expense with its payer and splits, or nil if it does not exist.
func (r *Repository) FindByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT e.id, e.description, e.amount, e.group_id, e.paid_by_id, e.date, u.username
		FROM expenses e
		JOIN users u ON u.id = e.paid_by_id
		WHERE e.id = $1
	`
	var expense domain.Expense
	err := r.db.QueryRow(ctx, query, expenseID).Scan(
		&expense.ID, &expense.Description, &expense.Amount, &expense.GroupID,
		&expense.PaidByID, &expense.Date, &expense.PaidBy.Username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find expense", zap.Error(err))
		return nil, err
	}
	expense.PaidBy.ID = expense.PaidByID

	splits, err := r.listSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits
	return &expense, nil
}

func (r *Repository) listSplits(ctx context.Context, expenseID string) ([]domain.ExpenseSplit, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.amount_owed, u.username
		FROM expense_splits s
		JOIN users u ON u.id = s.user_id
		WHERE s.expense_id = $1
		ORDER BY s.amount_owed DESC, u.username
	`
	rows, err := r.db.Query(ctx, query, expenseID)
	if err != nil {
		zap.L().Error("can't get expense splits", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	splits := make([]domain.ExpenseSplit, 0)
	for rows.Next() {
		var s domain.ExpenseSplit
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.UserID, &s.AmountOwed, &s.Username); err != nil {
			zap.L().Error("can't scan expense split", zap.Error(err))
			return nil, err
		}
		splits = append(splits, s)
	}
	return splits, rows.Err()
}

// ListByUser returns the user's splits joined with their expense, payer and
// group, newest first. An empty groupID means every group.
func (r *Repository) ListByUser(ctx context.Context, userID, groupID string) ([]domain.UserExpense, error) {
	query := `
		SELECT s.id, s.amount_owed,
			e.id, e.description, e.amount, e.group_id, e.paid_by_id, e.date,
			u.username, g.name
		FROM expense_splits s
		JOIN expenses e ON e.id = s.expense_id
		JOIN users u ON u.id = e.paid_by_id
		JOIN groups g ON g.id = e.group_id
		WHERE s.user_id = $1 AND ($2 = '' OR e.group_id = $2)
		ORDER BY e.date DESC, e.id
	`
	rows, err := r.db.Query(ctx, query, userID, groupID)
	if err != nil {
		zap.L().Error("can't get user expenses", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.UserExpense, 0)
	for rows.Next() {
		var item domain.UserExpense
		e := &item.Expense
		if err := rows.Scan(
			&item.Split.ID, &item.Split.AmountOwed,
			&e.ID, &e.Description, &e.Amount, &e.GroupID, &e.PaidByID, &e.Date,
			&e.PaidBy.Username, &item.GroupName,
		); err != nil {
			zap.L().Error("can't scan user expense", zap.Error(err))
			return nil, err
		}
		e.PaidBy.ID = e.PaidByID
		item.Split.ExpenseID = e.ID
		item.Split.UserID = userID
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate user expenses", zap.Error(err))
		return nil, err
	}
	return result, nil
}

// Update rewrites description, amount and every split amount in one transaction.
func (r *Repository) Update(ctx context.Context, expense *domain.Expense) error {
	expenseQuery := `
		UPDATE expenses
		SET description = $1, amount = $2
		WHERE id = $3
	`
	splitQuery := `
		UPDATE expense_splits
		SET amount_owed = $1
		WHERE id = $2 AND expense_id = $3
	`
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		tag, err := r.db.Exec(ctx, expenseQuery, expense.Description, expense.Amount, expense.ID)
		if err != nil {
			zap.L().Error("can't update expense", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		for _, s := range expense.Splits {
			if _, err := r.db.Exec(ctx, splitQuery, s.AmountOwed, s.ID, expense.ID); err != nil {
				zap.L().Error("can't update expense split", zap.String("expense_id", expense.ID), zap.Error(err))
				return err
			}
		}
		return nil
	})
}

// Delete removes the expense and its splits in one transaction.
func (r *Repository) Delete(ctx context.Context, expenseID string) error {
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, `DELETE FROM expense_splits WHERE expense_id = $1`, expenseID); err != nil {
			zap.L().Error("can't delete expense splits", zap.Error(err))
			return err
		}
		tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
		if err != nil {
			zap.L().Error("can't delete expense", zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}
