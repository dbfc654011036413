package groupservice

import (
	"context"
	"strings"

	"github.com/GlebRadaev/gosplit/internal/apperrors"
	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=groupservice.go -destination=mock_groupservice.go -package=groupservice

type Repo interface {
	Create(ctx context.Context, group *domain.Group, creatorID string) error
	FindByID(ctx context.Context, groupID string) (*domain.Group, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Group, error)
	IsMember(ctx context.Context, groupID, userID string) (bool, error)
	AddMember(ctx context.Context, groupID, userID string) error
}

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Service struct {
	groupRepo Repo
	userRepo  UserRepo
}

func New(groupRepo Repo, userRepo UserRepo) *Service {
	return &Service{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// CreateGroup creates a group with the caller as its only member.
func (s *Service) CreateGroup(ctx context.Context, userID, name string) (*domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.InvalidInput("group name is required")
	}

	group := &domain.Group{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.groupRepo.Create(ctx, group, userID); err != nil {
		zap.L().Error("can't create group", zap.Error(err))
		return nil, apperrors.Persistence("create group", err)
	}

	created, err := s.groupRepo.FindByID(ctx, group.ID)
	if err != nil || created == nil {
		zap.L().Error("can't load created group", zap.String("group_id", group.ID), zap.Error(err))
		return nil, apperrors.Persistence("create group", err)
	}
	zap.L().Info("group created", zap.String("group_id", group.ID), zap.String("user_id", userID))
	return created, nil
}

func (s *Service) ListGroups(ctx context.Context, userID string) ([]domain.Group, error) {
	groups, err := s.groupRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence("list groups", err)
	}
	return groups, nil
}

// GetGroup hides groups the caller does not belong to behind NotFound.
func (s *Service) GetGroup(ctx context.Context, userID, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, apperrors.Persistence("get group", err)
	}
	if group == nil || !hasMember(group.Members, userID) {
		return nil, apperrors.NotFound("group not found")
	}
	return group, nil
}

// AddMember adds the user registered under email to the group. Only members
// may add others.
func (s *Service) AddMember(ctx context.Context, userID, groupID, email string) (*domain.Member, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	if err := s.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Persistence("add member", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user with email %s not found", email)
	}

	isMember, err := s.groupRepo.IsMember(ctx, groupID, user.ID)
	if err != nil {
		return nil, apperrors.Persistence("add member", err)
	}
	if isMember {
		return nil, apperrors.Conflict("user %s is already a member of this group", user.Username)
	}

	if err := s.groupRepo.AddMember(ctx, groupID, user.ID); err != nil {
		zap.L().Error("can't add member", zap.String("group_id", groupID), zap.Error(err))
		return nil, apperrors.Persistence("add member", err)
	}
	zap.L().Info("member added", zap.String("group_id", groupID), zap.String("member_id", user.ID))
	return &domain.Member{ID: user.ID, Username: user.Username}, nil
}

// RequireMember returns Forbidden unless userID belongs to groupID.
func (s *Service) RequireMember(ctx context.Context, groupID, userID string) error {
	isMember, err := s.groupRepo.IsMember(ctx, groupID, userID)
	if err != nil {
		return apperrors.Persistence("check membership", err)
	}
	if !isMember {
		return apperrors.Forbidden("not a member of this group")
	}
	return nil
}

func hasMember(members []domain.Member, userID string) bool {
	for _, m := range members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
