package dto

import (
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

// FormDTO represents a feedback form in API responses
type FormDTO struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Audience    models.Audience    `json:"audience"`
	Active      bool               `json:"active"`
	Fields      []models.FormField `json:"fields"`
	CreatedAt   *time.Time         `json:"created_at"`
}

// FormOverviewResponse lists forms with per-audience counts
type FormOverviewResponse struct {
	Forms  []FormDTO               `json:"forms"`
	Counts services.AudienceCounts `json:"counts"`
}

// FormResponseDTO is one submission
type FormResponseDTO struct {
	ID          string          `json:"id"`
	User        models.UserRef  `json:"user"`
	Answers     []models.Answer `json:"answers"`
	SubmittedAt *time.Time      `json:"submitted_at"`
}

func ToFormDTO(form models.Form) FormDTO {
	fields := form.Fields
	if fields == nil {
		fields = []models.FormField{}
	}
	return FormDTO{
		ID:          form.ID,
		Title:       form.Title,
		Description: form.Description,
		Audience:    form.Audience,
		Active:      form.Active,
		Fields:      fields,
		CreatedAt:   optionalTime(form.CreatedAt),
	}
}

func ToFormDTOs(forms []models.Form) []FormDTO {
	out := make([]FormDTO, len(forms))
	for i, f := range forms {
		out[i] = ToFormDTO(f)
	}
	return out
}

func ToFormOverviewResponse(overview services.FormOverview) FormOverviewResponse {
	return FormOverviewResponse{
		Forms:  ToFormDTOs(overview.Forms),
		Counts: overview.Counts,
	}
}

func ToFormResponseDTOs(responses []models.FormResponse) []FormResponseDTO {
	out := make([]FormResponseDTO, len(responses))
	for i, r := range responses {
		out[i] = FormResponseDTO{
			ID:          r.ID,
			User:        r.User,
			Answers:     r.Answers,
			SubmittedAt: optionalTime(r.SubmittedAt),
		}
	}
	return out
}
