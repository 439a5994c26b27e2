package dto

import (
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/services"
	"github.com/yukikurage/onboarding-portal/internal/utils"
)

// EmployeeListResponse represents a paginated list of employees
type EmployeeListResponse struct {
	Employees  []UserDTO                `json:"employees"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// EmployeeProfileDTO is one employee with their onboarding progress
type EmployeeProfileDTO struct {
	User           UserDTO                 `json:"user"`
	Tasks          []TaskDTO               `json:"tasks"`
	Counts         onboarding.StatusCounts `json:"counts"`
	Completion     int                     `json:"completion"`
	Phase          string                  `json:"phase"`
	DaysSinceStart int                     `json:"days_since_start"`
}

// BulkUploadRowDTO is the outcome of one roster line
type BulkUploadRowDTO struct {
	LineNumber int                        `json:"line_number"`
	Name       string                     `json:"name"`
	Email      string                     `json:"email"`
	Status     models.BulkUploadRowStatus `json:"status"`
	Error      string                     `json:"error,omitempty"`
}

// BulkUploadRunDTO summarizes one roster import
type BulkUploadRunDTO struct {
	ID        string             `json:"id"`
	ActorID   string             `json:"actor_id"`
	FileName  string             `json:"file_name"`
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	CreatedAt time.Time          `json:"created_at"`
	Rows      []BulkUploadRowDTO `json:"rows,omitempty"`
}

// BulkUploadRunListResponse represents a paginated list of imports
type BulkUploadRunListResponse struct {
	Runs       []BulkUploadRunDTO       `json:"runs"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToEmployeeListResponse(page services.EmployeePage) EmployeeListResponse {
	return EmployeeListResponse{
		Employees:  ToUserDTOs(page.Employees),
		Pagination: page.Pagination,
	}
}

func ToEmployeeProfileDTO(profile services.EmployeeProfile) EmployeeProfileDTO {
	return EmployeeProfileDTO{
		User:           ToUserDTO(profile.User),
		Tasks:          ToTaskDTOs(profile.Tasks),
		Counts:         profile.Counts,
		Completion:     profile.Completion,
		Phase:          profile.Phase,
		DaysSinceStart: profile.DaysSinceStart,
	}
}

// ToBulkUploadRunDTO converts a run; rows are included when loaded.
func ToBulkUploadRunDTO(run models.BulkUploadRun) BulkUploadRunDTO {
	dto := BulkUploadRunDTO{
		ID:        run.ID,
		ActorID:   run.ActorID,
		FileName:  run.FileName,
		Total:     run.Total,
		Succeeded: run.Succeeded,
		Failed:    run.Failed,
		CreatedAt: run.CreatedAt,
	}

	if len(run.Rows) > 0 {
		dto.Rows = make([]BulkUploadRowDTO, len(run.Rows))
		for i, row := range run.Rows {
			dto.Rows[i] = BulkUploadRowDTO{
				LineNumber: row.LineNumber,
				Name:       row.Name,
				Email:      row.Email,
				Status:     row.Status,
				Error:      row.Error,
			}
		}
	}

	return dto
}

func ToBulkUploadRunListResponse(runs []models.BulkUploadRun, pagination utils.PaginationResponse) BulkUploadRunListResponse {
	items := make([]BulkUploadRunDTO, len(runs))
	for i, run := range runs {
		items[i] = ToBulkUploadRunDTO(run)
	}
	return BulkUploadRunListResponse{
		Runs:       items,
		Pagination: pagination,
	}
}
