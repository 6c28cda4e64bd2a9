package dto

import (
	"github.com/AyurTrace/herb_trace_app/internal/core/domain"
)

// UserResponse defines the public view of a directory identity.
type UserResponse struct {
	UserID   string   `json:"userID"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Phone    string   `json:"phone,omitempty"`
	Verified bool     `json:"verified"`
	Badges   []string `json:"badges,omitempty"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		Phone:    u.Phone,
		Verified: u.Verified,
		Badges:   u.Badges,
	}
}
