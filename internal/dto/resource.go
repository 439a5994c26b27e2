package dto

import (
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

// ResourceDTO represents a library entry in API responses
type ResourceDTO struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Type        services.ResourceKind `json:"type"`
	URL         string                `json:"url"`
	Category    string                `json:"category"`
	Language    string                `json:"language,omitempty"`
	AccessLevel models.Role           `json:"access_level"`
	VisibleTo   []models.Role         `json:"visible_to"`
	CreatedAt   *time.Time            `json:"created_at"`
}

// ResourceLibraryResponse is the resource list with visibility counts
type ResourceLibraryResponse struct {
	Resources    []ResourceDTO `json:"resources"`
	VisibleUser  int           `json:"visible_user"`
	VisibleAdmin int           `json:"visible_admin"`
}

func ToResourceLibraryResponse(lib services.ResourceLibrary) ResourceLibraryResponse {
	items := make([]ResourceDTO, len(lib.Items))
	for i, item := range lib.Items {
		items[i] = ResourceDTO{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Type:        item.Kind,
			URL:         item.FileURL,
			Category:    item.Category,
			Language:    item.Language,
			AccessLevel: item.AccessLevel,
			VisibleTo:   item.VisibleTo,
			CreatedAt:   optionalTime(item.CreatedAt),
		}
	}

	return ResourceLibraryResponse{
		Resources:    items,
		VisibleUser:  lib.VisibleUser,
		VisibleAdmin: lib.VisibleAdmin,
	}
}
