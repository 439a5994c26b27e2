package models

import "time"

// Audience says which kind of account a feedback form is meant for.
type Audience string

const (
	AudienceUser  Audience = "user"
	AudienceAdmin Audience = "admin"
	AudienceBoth  Audience = "both"
)

// Valid reports whether a is a known audience.
func (a Audience) Valid() bool {
	switch a {
	case AudienceUser, AudienceAdmin, AudienceBoth:
		return true
	}
	return false
}

// Includes reports whether accounts with role may fill in a form for a.
func (a Audience) Includes(role Role) bool {
	switch a {
	case AudienceBoth:
		return true
	case AudienceUser:
		return role == RoleUser
	case AudienceAdmin:
		return role == RoleAdmin
	}
	return false
}

type FieldType string

const (
	FieldTypeText  FieldType = "text"
	FieldTypeRadio FieldType = "radio"
)

type FormField struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Options  []string  `json:"options"`
	Required bool      `json:"required"`
}

// Form is a feedback form definition.
type Form struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Audience    Audience    `json:"audience"`
	Fields      []FormField `json:"fields"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
}

type Answer struct {
	FieldID  string `json:"field_id"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer"`
}

// FormResponse is one user's submission for a form.
type FormResponse struct {
	ID          string    `json:"id"`
	FormID      string    `json:"form_id"`
	User        UserRef   `json:"user"`
	Answers     []Answer  `json:"answers"`
	SubmittedAt time.Time `json:"submitted_at"`
}
