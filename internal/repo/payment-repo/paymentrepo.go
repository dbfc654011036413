package paymentrepo

import (
	"context"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/pg"
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

func (r *Repository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, amount, payer_id, payee_id, group_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		payment.ID, payment.Amount, payment.PayerID, payment.PayeeID, payment.GroupID,
	).Scan(&payment.CreatedAt)
	if err != nil {
		zap.L().Error("can't save payment", zap.Error(err))
		return err
	}
	return nil
}

// ListByUser returns payments the user made or received, newest first.
// An empty groupID means every payment regardless of group.
func (r *Repository) ListByUser(ctx context.Context, userID, groupID string) ([]domain.Payment, error) {
	query := `
		SELECT p.id, p.amount, p.payer_id, p.payee_id, p.group_id, p.created_at,
			payer.username, payee.username
		FROM payments p
		JOIN users payer ON payer.id = p.payer_id
		JOIN users payee ON payee.id = p.payee_id
		WHERE (p.payer_id = $1 OR p.payee_id = $1)
			AND ($2 = '' OR p.group_id = $2)
		ORDER BY p.created_at DESC, p.id
	`
	rows, err := r.db.Query(ctx, query, userID, groupID)
	if err != nil {
		zap.L().Error("can't get payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.ID, &p.Amount, &p.PayerID, &p.PayeeID, &p.GroupID, &p.CreatedAt,
			&p.Payer.Username, &p.Payee.Username,
		); err != nil {
			zap.L().Error("can't scan payment", zap.Error(err))
			return nil, err
		}
		p.Payer.ID = p.PayerID
		p.Payee.ID = p.PayeeID
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}
