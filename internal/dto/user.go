package dto

import (
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

// UserDTO represents an account in API responses
type UserDTO struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	Role       models.Role `json:"role"`
	Department string      `json:"department,omitempty"`
	StartDate  *time.Time  `json:"start_date"`
}

// SessionDTO is returned after login
type SessionDTO struct {
	User      UserDTO    `json:"user"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		Department: user.Department,
		StartDate:  optionalTime(user.StartDate),
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

func ToSessionDTO(session services.Session) SessionDTO {
	return SessionDTO{
		User:      ToUserDTO(session.User),
		ExpiresAt: optionalTime(session.ExpiresAt),
	}
}

// optionalTime maps the zero time to nil so absent dates serialize as null.
func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
