package models

import "time"

type BulkUploadRowStatus string

const (
	BulkUploadRowSuccess BulkUploadRowStatus = "success"
	BulkUploadRowFailed  BulkUploadRowStatus = "failed"
)

// BulkUploadRun records one CSV employee import started by an admin.
type BulkUploadRun struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ActorID   string    `gorm:"type:varchar(64);not null" json:"actor_id"`
	FileName  string    `gorm:"type:varchar(255)" json:"file_name"`
	Total     int       `gorm:"not null" json:"total"`
	Succeeded int       `gorm:"not null" json:"succeeded"`
	Failed    int       `gorm:"not null" json:"failed"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Rows []BulkUploadRow `gorm:"foreignKey:RunID" json:"rows,omitempty"`
}

// BulkUploadRow is the outcome of one CSV line. Passwords are never stored.
type BulkUploadRow struct {
	ID         uint64              `gorm:"primarykey" json:"id"`
	RunID      string              `gorm:"type:varchar(36);not null;index" json:"run_id"`
	LineNumber int                 `gorm:"not null" json:"line_number"`
	Name       string              `gorm:"type:varchar(255)" json:"name"`
	Email      string              `gorm:"type:varchar(255)" json:"email"`
	Status     BulkUploadRowStatus `gorm:"type:varchar(20);not null" json:"status"`
	Error      string              `gorm:"type:text" json:"error,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}
