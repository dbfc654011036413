package dto

import "github.com/GlebRadaev/gosplit/internal/domain"

type SignupRequestDTO struct {
	Username string `json:"username" validate:"required,min=3,max=50" example:"alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
}

type SignupResponseDTO struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

type LoginResponseDTO struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}

type UserDTO struct {
	ID       string `json:"id" example:"6f1c2a7e-1d2b-4c55-9a0e-0d7c3b1e2f10"`
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
}

func NewUserDTO(u *domain.User) UserDTO {
	return UserDTO{ID: u.ID, Username: u.Username, Email: u.Email}
}
