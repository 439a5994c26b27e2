package repository

import (
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/utils"
)

// BulkUploadRepository defines the interface for bulk upload history
type BulkUploadRepository interface {
	// Create stores a run together with its rows
	Create(run *models.BulkUploadRun) error

	// FindByID finds a run by ID with its rows
	FindByID(id string) (*models.BulkUploadRun, error)

	// List returns runs newest first, without rows, and the total count
	List(params utils.PaginationParams) ([]models.BulkUploadRun, int64, error)
}
