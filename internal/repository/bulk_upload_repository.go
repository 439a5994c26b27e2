package repository

import (
	"errors"
	"fmt"

	"github.com/yukikurage/onboarding-portal/internal/database"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrCreateRun is returned when inserting the run fails inside the create transaction.
	ErrCreateRun = errors.New("bulk upload repository: create run failed")
	// ErrCreateRows is returned when inserting the rows fails inside the create transaction.
	ErrCreateRows = errors.New("bulk upload repository: create rows failed")
)

// GormBulkUploadRepository is a GORM implementation of BulkUploadRepository
type GormBulkUploadRepository struct {
	db *gorm.DB
}

// NewBulkUploadRepository creates a new BulkUploadRepository
func NewBulkUploadRepository(db *gorm.DB) BulkUploadRepository {
	return &GormBulkUploadRepository{db: db}
}

// Create inserts the run and then its rows atomically.
func (r *GormBulkUploadRepository) Create(run *models.BulkUploadRun) error {
	rows := run.Rows
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Rows").Create(run).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateRun, err)
		}

		if len(rows) == 0 {
			return nil
		}
		for i := range rows {
			rows[i].RunID = run.ID
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateRows, err)
		}
		run.Rows = rows
		return nil
	})
}

// FindByID finds a run by ID with rows in file order
func (r *GormBulkUploadRepository) FindByID(id string) (*models.BulkUploadRun, error) {
	var run models.BulkUploadRun
	err := r.db.
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("bulk_upload_rows.line_number ASC")
		}).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List retrieves runs with pagination, newest first
func (r *GormBulkUploadRepository) List(params utils.PaginationParams) ([]models.BulkUploadRun, int64, error) {
	query := r.db.Model(&models.BulkUploadRun{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	runs := []models.BulkUploadRun{}
	if err := query.Order("created_at DESC").Scopes(database.Paginate(params)).Find(&runs).Error; err != nil {
		return nil, 0, err
	}

	return runs, total, nil
}
