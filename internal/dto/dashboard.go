package dto

import (
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

// AdminDashboardDTO represents the admin landing page
type AdminDashboardDTO struct {
	TotalEmployees int       `json:"total_employees"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	PendingTasks   int       `json:"pending_tasks"`
	TodaysCount    int       `json:"todays_count"`
	TodaysTasks    []TaskDTO `json:"todays_tasks"`
}

// UpcomingTaskDTO is an open task with its distance to the deadline.
// The day fields are null for tasks without a due date.
type UpcomingTaskDTO struct {
	TaskDTO
	DaysUntilDue         *int `json:"days_until_due"`
	CalendarDaysUntilDue *int `json:"calendar_days_until_due"`
}

// EmployeeDashboardDTO represents an employee's landing page
type EmployeeDashboardDTO struct {
	User           UserDTO                 `json:"user"`
	Progress       int                     `json:"progress"`
	Counts         onboarding.StatusCounts `json:"counts"`
	TotalTasks     int                     `json:"total_tasks"`
	Phase          string                  `json:"phase"`
	DaysSinceStart int                     `json:"days_since_start"`
	Upcoming       []UpcomingTaskDTO       `json:"upcoming"`
	Recent         []TaskDTO               `json:"recent"`
}

func ToAdminDashboardDTO(dash services.AdminDashboard) AdminDashboardDTO {
	return AdminDashboardDTO{
		TotalEmployees: dash.TotalEmployees,
		TotalTasks:     dash.TotalTasks,
		CompletedTasks: dash.CompletedTasks,
		PendingTasks:   dash.PendingTasks,
		TodaysCount:    dash.TodaysCount,
		TodaysTasks:    ToTaskDTOs(dash.TodaysTasks),
	}
}

func ToEmployeeDashboardDTO(dash services.EmployeeDashboard) EmployeeDashboardDTO {
	upcoming := make([]UpcomingTaskDTO, len(dash.Upcoming))
	for i, u := range dash.Upcoming {
		upcoming[i] = UpcomingTaskDTO{TaskDTO: ToTaskDTO(u.TaskAssignment)}
		if u.HasDueDate() {
			days, calendar := u.DaysUntilDue, u.CalendarDaysUntilDue
			upcoming[i].DaysUntilDue = &days
			upcoming[i].CalendarDaysUntilDue = &calendar
		}
	}

	return EmployeeDashboardDTO{
		User:           ToUserDTO(dash.User),
		Progress:       dash.Progress,
		Counts:         dash.Counts,
		TotalTasks:     dash.TotalTasks,
		Phase:          dash.Phase,
		DaysSinceStart: dash.DaysSinceStart,
		Upcoming:       upcoming,
		Recent:         ToTaskDTOs(dash.Recent),
	}
}
