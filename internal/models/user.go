package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an employee or administrator account held by the remote API.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       Role      `json:"role"`
	Status     string    `json:"status,omitempty"`
	Department string    `json:"department,omitempty"`
	StartDate  time.Time `json:"start_date"`
}

// Ref returns the short reference embedded in task assignments.
func (u User) Ref() UserRef {
	return UserRef{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// UserRef is the assignee reference carried by a task assignment.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
