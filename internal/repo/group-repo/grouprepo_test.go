package grouprepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()

	return repo, mockDB, mockTxManager
}

func TestRepository_Create(t *testing.T) {
	repo, mock, tx := NewMock(t)
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Group and creator membership saved",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO groups (id, name) VALUES ($1, $2) RETURNING created_at")).
						WithArgs("g1", "Flat").
						WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))
					mock.ExpectExec(regexp.QuoteMeta("INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)")).
						WithArgs("g1", "u1").
						WillReturnResult(pgxmock.NewResult("INSERT", 1))
					return fn(ctx)
				})
			},
		},
		{
			name: "Membership insert fails",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO groups (id, name) VALUES ($1, $2) RETURNING created_at")).
						WithArgs("g1", "Flat").
						WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))
					mock.ExpectExec(regexp.QuoteMeta("INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)")).
						WithArgs("g1", "u1").
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			group := &domain.Group{ID: "g1", Name: "Flat"}
			err := repo.Create(context.Background(), group, "u1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, createdAt, group.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	groupQuery := regexp.QuoteMeta("SELECT id, name, created_at FROM groups WHERE id = $1")
	membersQuery := regexp.QuoteMeta("SELECT u.id, u.username FROM group_members gm JOIN users u ON u.id = gm.user_id WHERE gm.group_id = $1 ORDER BY u.username")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Group
	}{
		{
			name: "Group with members",
			mockSetup: func() {
				mock.ExpectQuery(groupQuery).WithArgs("g1").
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).AddRow("g1", "Flat", createdAt))
				mock.ExpectQuery(membersQuery).WithArgs("g1").
					WillReturnRows(pgxmock.NewRows([]string{"id", "username"}).
						AddRow("u1", "alice").
						AddRow("u2", "bob"))
			},
			result: &domain.Group{
				ID:        "g1",
				Name:      "Flat",
				CreatedAt: createdAt,
				Members:   []domain.Member{{ID: "u1", Username: "alice"}, {ID: "u2", Username: "bob"}},
			},
		},
		{
			name: "Group not found",
			mockSetup: func() {
				mock.ExpectQuery(groupQuery).WithArgs("g1").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Members query fails",
			mockSetup: func() {
				mock.ExpectQuery(groupQuery).WithArgs("g1").
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).AddRow("g1", "Flat", createdAt))
				mock.ExpectQuery(membersQuery).WithArgs("g1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.FindByID(context.Background(), "g1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock, _ := NewMock(t)
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT g.id, g.name, g.created_at, u.id, u.username FROM groups g")).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "id", "username"}).
			AddRow("g1", "Flat", createdAt, "u1", "alice").
			AddRow("g1", "Flat", createdAt, "u2", "bob").
			AddRow("g2", "Trip", createdAt, "u1", "alice"))

	groups, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g1", groups[0].ID)
	assert.Len(t, groups[0].Members, 2)
	assert.Equal(t, "g2", groups[1].ID)
	assert.Equal(t, []domain.Member{{ID: "u1", Username: "alice"}}, groups[1].Members)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IsMember(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("SELECT EXISTS ( SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2 )")

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    bool
	}{
		{
			name: "Member",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("g1", "u1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			result: true,
		},
		{
			name: "Not a member",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("g1", "u1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			result: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("g1", "u1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.IsMember(context.Background(), "g1", "u1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_AddMember(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)")

	mock.ExpectExec(query).WithArgs("g1", "u2").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, repo.AddMember(context.Background(), "g1", "u2"))

	mock.ExpectExec(query).WithArgs("g1", "u3").WillReturnError(errors.New("database error"))
	assert.Error(t, repo.AddMember(context.Background(), "g1", "u3"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListGroupIDs(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT group_id FROM group_members WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"group_id"}).AddRow("g1").AddRow("g2"))

	ids, err := repo.ListGroupIDs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
