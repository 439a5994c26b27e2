package models

import "time"

// Resource is a published onboarding document or link.
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	FileURL     string    `json:"file_url"`
	VisibleTo   []Role    `json:"visible_to"`
	Language    string    `json:"language,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// VisibleToRole reports whether the resource is published for role.
func (r Resource) VisibleToRole(role Role) bool {
	for _, v := range r.VisibleTo {
		if v == role {
			return true
		}
	}
	return false
}
