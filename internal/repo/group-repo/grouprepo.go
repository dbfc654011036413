package grouprepo

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

// Create stores the group and makes creatorID its first member.
func (r *Repository) Create(ctx context.Context, group *domain.Group, creatorID string) error {
	groupQuery := `
		INSERT INTO groups (id, name)
		VALUES ($1, $2)
		RETURNING created_at
	`
	memberQuery := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
	`
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := r.db.QueryRow(ctx, groupQuery, group.ID, group.Name).Scan(&group.CreatedAt); err != nil {
			zap.L().Error("can't save group", zap.Error(err))
			return err
		}
		if _, err := r.db.Exec(ctx, memberQuery, group.ID, creatorID); err != nil {
			zap.L().Error("can't add group creator", zap.Error(err))
			return err
		}
		return nil
	})
}

func (r *Repository) FindByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
		SELECT id, name, created_at
		FROM groups
		WHERE id = $1
	`
	var group domain.Group
	err := r.db.QueryRow(ctx, query, groupID).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find group", zap.Error(err))
		return nil, err
	}

	members, err := r.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members
	return &group, nil
}

// ListByUser returns the user's groups ordered by name, each with its members.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Group, error) {
	query := `
		SELECT g.id, g.name, g.created_at, u.id, u.username
		FROM groups g
		JOIN group_members mine ON mine.group_id = g.id AND mine.user_id = $1
		JOIN group_members gm ON gm.group_id = g.id
		JOIN users u ON u.id = gm.user_id
		ORDER BY g.name, g.id, u.username
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get groups", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	groups := make([]domain.Group, 0)
	for rows.Next() {
		var group domain.Group
		var member domain.Member
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt, &member.ID, &member.Username); err != nil {
			zap.L().Error("can't scan group row", zap.Error(err))
			return nil, err
		}
		if n := len(groups); n == 0 || groups[n-1].ID != group.ID {
			groups = append(groups, group)
		}
		last := &groups[len(groups)-1]
		last.Members = append(last.Members, member)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate group rows", zap.Error(err))
		return nil, err
	}
	return groups, nil
}

func (r *Repository) ListMembers(ctx context.Context, groupID string) ([]domain.Member, error) {
	query := `
		SELECT u.id, u.username
		FROM group_members gm
		JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = $1
		ORDER BY u.username
	`
	rows, err := r.db.Query(ctx, query, groupID)
	if err != nil {
		zap.L().Error("can't get group members", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.Member, 0)
	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(&member.ID, &member.Username); err != nil {
			zap.L().Error("can't scan member row", zap.Error(err))
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (r *Repository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		zap.L().Error("can't check membership", zap.Error(err))
		return false, err
	}
	return exists, nil
}

func (r *Repository) AddMember(ctx context.Context, groupID, userID string) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
	`
	if _, err := r.db.Exec(ctx, query, groupID, userID); err != nil {
		zap.L().Error("can't add group member", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ListGroupIDs(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT group_id
		FROM group_members
		WHERE user_id = $1
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get user group ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("can't scan group id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
