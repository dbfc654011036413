package balanceservice

import (
	"context"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=balanceservice.go -destination=mock_balanceservice.go -package=balanceservice

type Repo interface {
	SumPaid(ctx context.Context, userID, groupID string) (decimal.Decimal, error)
	SumOwed(ctx context.Context, userID, groupID string) (decimal.Decimal, error)
	SumPaymentsMade(ctx context.Context, userID, groupID string) (decimal.Decimal, error)
	SumPaymentsReceived(ctx context.Context, userID, groupID string) (decimal.Decimal, error)
	ExpensesByGroups(ctx context.Context, groupIDs []string) ([]domain.Expense, error)
}

type GroupRepo interface {
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	ListGroupIDs(ctx context.Context, userID string) ([]string, error)
}

type PaymentRepo interface {
	ListByUser(ctx context.Context, userID, groupID string) ([]domain.Payment, error)
}

type Service struct {
	balanceRepo     Repo
	groupRepo       GroupRepo
	paymentRepo     PaymentRepo
	includePayments bool
}

func New(balanceRepo Repo, groupRepo GroupRepo, paymentRepo PaymentRepo, includePayments bool) *Service {
	return &Service{
		balanceRepo:     balanceRepo,
		groupRepo:       groupRepo,
		paymentRepo:     paymentRepo,
		includePayments: includePayments,
	}
}

// Overall returns the user's totals across all groups, or within groupID when set.
func (s *Service) Overall(ctx context.Context, userID, groupID string) (*domain.Summary, error) {
	if err := s.requireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	var paid, owed, made, received decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		paid, err = s.balanceRepo.SumPaid(gctx, userID, groupID)
		return err
	})
	g.Go(func() (err error) {
		owed, err = s.balanceRepo.SumOwed(gctx, userID, groupID)
		return err
	})
	g.Go(func() (err error) {
		made, err = s.balanceRepo.SumPaymentsMade(gctx, userID, groupID)
		return err
	})
	g.Go(func() (err error) {
		received, err = s.balanceRepo.SumPaymentsReceived(gctx, userID, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("can't calculate overall balance", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Persistence("overall balance", err)
	}

	summary := Overall(paid, owed, made, received)
	zap.L().Debug("overall balance calculated",
		zap.String("user_id", userID),
		zap.String("net_balance", summary.NetBalance.StringFixed(2)),
	)
	return &summary, nil
}

// Detailed returns per-counterparty balances for the user's groups, or for groupID when set.
func (s *Service) Detailed(ctx context.Context, userID, groupID string) ([]domain.CounterpartyBalance, error) {
	var groupIDs []string
	if groupID != "" {
		if err := s.requireMember(ctx, groupID, userID); err != nil {
			return nil, err
		}
		groupIDs = []string{groupID}
	} else {
		ids, err := s.groupRepo.ListGroupIDs(ctx, userID)
		if err != nil {
			return nil, apperrors.Persistence("detailed balance", err)
		}
		groupIDs = ids
	}
	if len(groupIDs) == 0 {
		return []domain.CounterpartyBalance{}, nil
	}

	expenses, err := s.balanceRepo.ExpensesByGroups(ctx, groupIDs)
	if err != nil {
		return nil, apperrors.Persistence("detailed balance", err)
	}

	var payments []domain.Payment
	if s.includePayments {
		payments, err = s.paymentRepo.ListByUser(ctx, userID, groupID)
		if err != nil {
			return nil, apperrors.Persistence("detailed balance", err)
		}
	}

	balances := Detailed(userID, expenses, payments)
	zap.L().Debug("detailed balance calculated",
		zap.String("user_id", userID),
		zap.Int("counterparties", len(balances)),
	)
	return balances, nil
}

func (s *Service) requireMember(ctx context.Context, groupID, userID string) error {
	if groupID == "" {
		return nil
	}
	ok, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return apperrors.Persistence("check membership", err)
	}
	if !ok {
		return apperrors.Forbidden("you are not a member of the specified group")
	}
	return nil
}
