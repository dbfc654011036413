package paymentservice

import (
	"context"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=paymentservice.go -destination=mock_paymentservice.go -package=paymentservice

type Repo interface {
	Create(ctx context.Context, payment *domain.Payment) error
	ListByUser(ctx context.Context, userID, groupID string) ([]domain.Payment, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type GroupRepo interface {
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
}

// RecordInput describes a direct transfer. An empty PayerID means the caller paid.
type RecordInput struct {
	PayerID string
	PayeeID string
	Amount  decimal.Decimal
	GroupID string
}

type Service struct {
	paymentRepo Repo
	userRepo    UserRepo
	groupRepo   GroupRepo
}

func New(paymentRepo Repo, userRepo UserRepo, groupRepo GroupRepo) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
	}
}

// RecordPayment stores a payment the caller made or received.
func (s *Service) RecordPayment(ctx context.Context, userID string, in RecordInput) (*domain.Payment, error) {
	payerID := in.PayerID
	if payerID == "" {
		payerID = userID
	}
	if in.PayeeID == "" {
		return nil, apperrors.InvalidInput("payeeId is required")
	}
	if userID != payerID && userID != in.PayeeID {
		return nil, apperrors.Forbidden("payments can only be recorded by the payer or the payee")
	}
	if payerID == in.PayeeID {
		return nil, apperrors.InvalidInput("cannot make payment to yourself")
	}
	if !in.Amount.IsPositive() {
		return nil, apperrors.InvalidInput("amount must be a positive number")
	}
	if !in.Amount.Equal(in.Amount.Truncate(2)) {
		return nil, apperrors.InvalidInput("amount must have at most 2 decimal places")
	}

	payer, err := s.findUser(ctx, payerID, "payer")
	if err != nil {
		return nil, err
	}
	payee, err := s.findUser(ctx, in.PayeeID, "payee")
	if err != nil {
		return nil, err
	}

	if in.GroupID != "" {
		if err := s.requireBothMembers(ctx, in.GroupID, payerID, in.PayeeID); err != nil {
			return nil, err
		}
	}

	payment := &domain.Payment{
		ID:      uuid.NewString(),
		Amount:  in.Amount,
		PayerID: payerID,
		PayeeID: in.PayeeID,
		Payer:   domain.Member{ID: payer.ID, Username: payer.Username},
		Payee:   domain.Member{ID: payee.ID, Username: payee.Username},
	}
	if in.GroupID != "" {
		groupID := in.GroupID
		payment.GroupID = &groupID
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		zap.L().Error("can't record payment", zap.Error(err))
		return nil, apperrors.Persistence("record payment", err)
	}
	zap.L().Info("payment recorded",
		zap.String("payment_id", payment.ID),
		zap.String("payer_id", payerID),
		zap.String("payee_id", in.PayeeID),
	)
	return payment, nil
}

func (s *Service) ListPayments(ctx context.Context, userID, groupID string) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListByUser(ctx, userID, groupID)
	if err != nil {
		return nil, apperrors.Persistence("list payments", err)
	}
	return payments, nil
}

func (s *Service) findUser(ctx context.Context, id, role string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Persistence("record payment", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("%s not found", role)
	}
	return user, nil
}

func (s *Service) requireBothMembers(ctx context.Context, groupID, payerID, payeeID string) error {
	var payerIn, payeeIn bool
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		payerIn, err = s.groupRepo.IsMember(ctx, groupID, payerID)
		return err
	})
	g.Go(func() error {
		var err error
		payeeIn, err = s.groupRepo.IsMember(ctx, groupID, payeeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return apperrors.Persistence("record payment", err)
	}
	if !payerIn || !payeeIn {
		return apperrors.InvalidInput("both users must be group members")
	}
	return nil
}
