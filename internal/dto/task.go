package dto

import (
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

// TaskDTO represents one task assignment in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	Kind        models.TaskKind   `json:"kind"`
	DueDate     *time.Time        `json:"due_date"`
	Picture     string            `json:"picture,omitempty"`
	Assignee    models.UserRef    `json:"assignee"`
	CreatedAt   *time.Time        `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at"`
}

// AssigneeDTO is one employee's progress on a grouped task
type AssigneeDTO struct {
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Status      models.TaskStatus `json:"status"`
	LastUpdated *time.Time        `json:"last_updated"`
}

// TaskGroupDTO represents a logical task shared by several employees
type TaskGroupDTO struct {
	ID          string                  `json:"id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Kind        models.TaskKind         `json:"kind"`
	DueDate     *time.Time              `json:"due_date"`
	Picture     string                  `json:"picture,omitempty"`
	CreatedAt   *time.Time              `json:"created_at"`
	Assignees   []AssigneeDTO           `json:"assignees"`
	Completion  int                     `json:"completion"`
	Counts      onboarding.StatusCounts `json:"counts"`
}

// GroupedTasksResponse is the admin task board
type GroupedTasksResponse struct {
	Groups           []TaskGroupDTO `json:"groups"`
	TotalGroups      int            `json:"total_groups"`
	TotalAssignments int            `json:"total_assignments"`
}

// UserTasksResponse is an employee's own task list
type UserTasksResponse struct {
	Tasks      []TaskDTO             `json:"tasks"`
	Counts     services.FilterCounts `json:"counts"`
	Completion int                   `json:"completion"`
}

// TaskDraftDTO is an AI proposed task awaiting review
type TaskDraftDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// ToTaskDTO converts a TaskAssignment model to TaskDTO
func ToTaskDTO(task models.TaskAssignment) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Kind:        task.Kind,
		DueDate:     optionalTime(task.DueDate),
		Picture:     task.Picture,
		Assignee:    task.Assignee,
		CreatedAt:   optionalTime(task.CreatedAt),
		UpdatedAt:   optionalTime(task.UpdatedAt),
	}
}

func ToTaskDTOs(tasks []models.TaskAssignment) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

// ToTaskGroupDTO converts a decorated group to TaskGroupDTO
func ToTaskGroupDTO(group services.TaskGroup) TaskGroupDTO {
	assignees := make([]AssigneeDTO, len(group.Assignees))
	for i, a := range group.Assignees {
		assignees[i] = AssigneeDTO{
			UserID:      a.UserID,
			Name:        a.Name,
			Email:       a.Email,
			Status:      a.Status,
			LastUpdated: optionalTime(a.LastUpdated),
		}
	}

	return TaskGroupDTO{
		ID:          group.ID,
		Title:       group.Title,
		Description: group.Description,
		Kind:        group.Kind,
		DueDate:     optionalTime(group.DueDate),
		Picture:     group.Picture,
		CreatedAt:   optionalTime(group.Created),
		Assignees:   assignees,
		Completion:  group.Completion,
		Counts:      group.Counts,
	}
}

// ToGroupedTasksResponse converts the task board to its response
func ToGroupedTasksResponse(board services.GroupedTasks) GroupedTasksResponse {
	groups := make([]TaskGroupDTO, len(board.Groups))
	for i, g := range board.Groups {
		groups[i] = ToTaskGroupDTO(g)
	}

	return GroupedTasksResponse{
		Groups:           groups,
		TotalGroups:      board.TotalGroups,
		TotalAssignments: board.Assignments,
	}
}

func ToUserTasksResponse(list services.UserTasks) UserTasksResponse {
	return UserTasksResponse{
		Tasks:      ToTaskDTOs(list.Tasks),
		Counts:     list.Counts,
		Completion: list.Completion,
	}
}

func ToTaskDraftDTOs(drafts []services.TaskDraft) []TaskDraftDTO {
	out := make([]TaskDraftDTO, len(drafts))
	for i, d := range drafts {
		out[i] = TaskDraftDTO{
			Title:       d.Title,
			Description: d.Description,
			DueDate:     d.DueDate,
		}
	}
	return out
}
