package dto

import (
	"time"

	"github.com/GlebRadaev/gosplit/internal/domain"
)

type CreateGroupRequestDTO struct {
	Name string `json:"name" validate:"required,max=100" example:"Flatmates"`
}

type CreateGroupResponseDTO struct {
	Message string   `json:"message"`
	Group   GroupDTO `json:"group"`
}

type AddMemberRequestDTO struct {
	Email string `json:"email" validate:"required,email" example:"bob@example.com"`
}

type AddMemberResponseDTO struct {
	Message string    `json:"message"`
	Member  MemberDTO `json:"member"`
}

type MemberDTO struct {
	ID       string `json:"id"`
	Username string `json:"username" example:"bob"`
}

type GroupDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name" example:"Flatmates"`
	CreatedAt time.Time   `json:"createdAt"`
	Members   []MemberDTO `json:"members"`
}

func NewMemberDTO(m domain.Member) MemberDTO {
	return MemberDTO{ID: m.ID, Username: m.Username}
}

func NewGroupDTO(g domain.Group) GroupDTO {
	members := make([]MemberDTO, len(g.Members))
	for i, m := range g.Members {
		members[i] = NewMemberDTO(m)
	}
	return GroupDTO{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt, Members: members}
}

func NewGroupDTOs(groups []domain.Group) []GroupDTO {
	out := make([]GroupDTO, len(groups))
	for i, g := range groups {
		out[i] = NewGroupDTO(g)
	}
	return out
}
