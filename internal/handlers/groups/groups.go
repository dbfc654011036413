package groups

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GlebRadaev/gosplit/internal/domain"
	"github.com/GlebRadaev/gosplit/internal/dto"
	"github.com/GlebRadaev/gosplit/pkg/auth"
	"github.com/GlebRadaev/gosplit/pkg/utils"
	"github.com/GlebRadaev/gosplit/pkg/validate"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=groups.go -destination=mock_groups.go -package=groups

type Service interface {
	CreateGroup(ctx context.Context, userID, name string) (*domain.Group, error)
	ListGroups(ctx context.Context, userID string) ([]domain.Group, error)
	GetGroup(ctx context.Context, userID, groupID string) (*domain.Group, error)
	AddMember(ctx context.Context, userID, groupID, email string) (*domain.Member, error)
}

type GroupsHandler struct {
	groupService Service
}

func New(groupService Service) *GroupsHandler {
	return &GroupsHandler{
		groupService: groupService,
	}
}

// CreateGroup godoc
//
//	@Summary		Create a group
//	@Description	Create a group; the caller becomes its first member.
//	@Tags			Groups
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateGroupRequestDTO	true	"Group"
//	@Success		201		{object}	dto.CreateGroupResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/groups [post]
func (h *GroupsHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateGroupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), userID, req.Name)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.CreateGroupResponseDTO{
		Message: "Group created successfully",
		Group:   dto.NewGroupDTO(*group),
	})
}

// ListGroups godoc
//
//	@Summary		List groups
//	@Description	Groups the caller belongs to, with their members, ordered by name.
//	@Tags			Groups
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.GroupDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/groups [get]
func (h *GroupsHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	groups, err := h.groupService.ListGroups(r.Context(), userID)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewGroupDTOs(groups))
}

// GetGroup godoc
//
//	@Summary		Get a group
//	@Tags			Groups
//	@Security		BearerAuth
//	@Produce		json
//	@Param			groupID	path		string	true	"Group ID"
//	@Success		200		{object}	dto.GroupDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Group not found or you are not a member"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/groups/{groupID} [get]
func (h *GroupsHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	group, err := h.groupService.GetGroup(r.Context(), userID, chi.URLParam(r, "groupID"))
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewGroupDTO(*group))
}

// AddMember godoc
//
//	@Summary		Add a member
//	@Description	Add a registered user to the group by email. Only members can add others.
//	@Tags			Groups
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			groupID	path		string					true	"Group ID"
//	@Param			request	body		dto.AddMemberRequestDTO	true	"Member email"
//	@Success		201		{object}	dto.AddMemberResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Caller is not a member"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		409		{object}	utils.Response	"User is already in this group"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/groups/{groupID}/members [post]
func (h *GroupsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.AddMemberRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := h.groupService.AddMember(r.Context(), userID, chi.URLParam(r, "groupID"), req.Email)
	if err != nil {
		utils.RespondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.AddMemberResponseDTO{
		Message: "Member added successfully",
		Member:  dto.NewMemberDTO(*member),
	})
}
