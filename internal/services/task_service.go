package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/onboarding-portal/internal/constants"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrInvalidStatus          = errors.New("status must be pending, in-progress or completed")
	ErrInvalidStatusFilter    = errors.New("status filter must be all, pending, in-progress or completed")
	ErrTitleRequired          = errors.New("title is required")
	ErrNoAssignees            = errors.New("at least one assignee is required")
	ErrDueDateRequired        = errors.New("due date is required")
	ErrInvalidDueDate         = errors.New("due date must be a date such as 2025-01-15")
	ErrTextRequired           = errors.New("text is required")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAITooManyTasks         = fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
)

// DraftGenerator proposes onboarding tasks from free text.
type DraftGenerator interface {
	GenerateTaskDrafts(ctx context.Context, text string, now time.Time) ([]TaskDraft, error)
}

// TaskService handles task business logic
type TaskService struct {
	backend BackendFor
	ai      DraftGenerator
	now     func() time.Time
}

// NewTaskService creates a new TaskService. ai may be nil.
func NewTaskService(backend BackendFor, ai DraftGenerator) *TaskService {
	return &TaskService{
		backend: backend,
		ai:      ai,
		now:     time.Now,
	}
}

// StatusFilter is "all" or one task status.
type StatusFilter string

const StatusFilterAll StatusFilter = "all"

// ParseStatusFilter accepts "", "all" or a task status.
func ParseStatusFilter(raw string) (StatusFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == string(StatusFilterAll) {
		return StatusFilterAll, nil
	}
	if !models.TaskStatus(raw).Valid() {
		return "", ErrInvalidStatusFilter
	}
	return StatusFilter(raw), nil
}

func (f StatusFilter) matches(s models.TaskStatus) bool {
	return f == "" || f == StatusFilterAll || models.TaskStatus(f) == s
}

// TaskGroup is a logical task with its progress across assignees.
type TaskGroup struct {
	onboarding.GroupedTask
	Completion int
	Counts     onboarding.StatusCounts
}

// GroupedFilter narrows the grouped admin view.
type GroupedFilter struct {
	Search string
	Status StatusFilter
}

func (f GroupedFilter) matches(g onboarding.GroupedTask) bool {
	if f.Status != "" && f.Status != StatusFilterAll {
		found := false
		for _, a := range g.Assignees {
			if f.Status.matches(a.Status) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	key := g.Key()
	if strings.Contains(strings.ToLower(key.Title), term) || strings.Contains(strings.ToLower(key.Description), term) {
		return true
	}
	for _, a := range g.Assignees {
		if strings.Contains(strings.ToLower(a.Name), term) {
			return true
		}
	}
	return false
}

// GroupedTasks is the admin task board.
type GroupedTasks struct {
	Groups      []TaskGroup
	TotalGroups int
	Assignments int
}

// ListGrouped fetches every assignment, groups them and applies filter.
func (s *TaskService) ListGrouped(ctx context.Context, token string, filter GroupedFilter) (*GroupedTasks, error) {
	assignments, err := s.backend(token).ListTasks(ctx, remote.TaskQuery{})
	if err != nil {
		return nil, err
	}

	for _, problem := range onboarding.DegenerateKeys(assignments) {
		log.WithFields(log.Fields{
			"task_id": problem.RecordID,
			"field":   problem.Field,
		}).Warn("task has an empty grouping field")
	}

	groups := onboarding.GroupByContent(assignments)
	result := &GroupedTasks{
		Groups:      make([]TaskGroup, 0, len(groups)),
		TotalGroups: len(groups),
		Assignments: len(assignments),
	}
	for _, g := range groups {
		if !filter.matches(g) {
			continue
		}
		statuses := g.Statuses()
		result.Groups = append(result.Groups, TaskGroup{
			GroupedTask: g,
			Completion:  onboarding.CompletionPercentage(statuses),
			Counts:      onboarding.CountStatuses(statuses),
		})
	}
	return result, nil
}

// FilterCounts is the number of tasks behind each status filter option.
type FilterCounts struct {
	All        int `json:"all"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// UserTasks is one employee's task list.
type UserTasks struct {
	Tasks      []models.TaskAssignment
	Counts     FilterCounts
	Completion int
}

// ListForUser returns userID's tasks narrowed by filter. Counts and
// Completion always cover the unfiltered list.
func (s *TaskService) ListForUser(ctx context.Context, token, userID string, filter StatusFilter) (*UserTasks, error) {
	tasks, err := s.backend(token).ListUserTasks(ctx, userID, remote.TaskQuery{})
	if err != nil {
		return nil, err
	}

	statuses := onboarding.Statuses(tasks)
	counts := onboarding.CountStatuses(statuses)
	result := &UserTasks{
		Tasks: make([]models.TaskAssignment, 0, len(tasks)),
		Counts: FilterCounts{
			All:        len(tasks),
			Pending:    counts.Pending,
			InProgress: counts.InProgress,
			Completed:  counts.Completed,
		},
		Completion: onboarding.CompletionPercentage(statuses),
	}
	for _, t := range tasks {
		if filter.matches(t.Status) {
			result.Tasks = append(result.Tasks, t)
		}
	}
	return result, nil
}

// UpdateStatus sets the status of one assignment and returns the board
// rebuilt from a fresh fetch.
func (s *TaskService) UpdateStatus(ctx context.Context, token, taskID string, status models.TaskStatus, filter GroupedFilter) (*GroupedTasks, error) {
	if err := s.setStatus(ctx, token, taskID, status); err != nil {
		return nil, err
	}
	return s.ListGrouped(ctx, token, filter)
}

// AssigneeStatusInput addresses one assignee's copy of a logical task.
type AssigneeStatusInput struct {
	Key    onboarding.GroupKey
	UserID string
	Status models.TaskStatus
}

// UpdateAssigneeStatus finds the assignment of input.Key held by
// input.UserID, updates it and returns the rebuilt board.
func (s *TaskService) UpdateAssigneeStatus(ctx context.Context, token string, input AssigneeStatusInput, filter GroupedFilter) (*GroupedTasks, error) {
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	assignments, err := s.backend(token).ListTasks(ctx, remote.TaskQuery{AssignedTo: input.UserID})
	if err != nil {
		return nil, err
	}

	taskID := ""
	for _, a := range assignments {
		if a.Assignee.ID == input.UserID && onboarding.KeyOf(a) == input.Key {
			taskID = a.ID
			break
		}
	}
	if taskID == "" {
		return nil, ErrTaskNotFound
	}

	return s.UpdateStatus(ctx, token, taskID, input.Status, filter)
}

// UpdateOwnStatus lets an employee move one of their own tasks.
func (s *TaskService) UpdateOwnStatus(ctx context.Context, token, userID, taskID string, status models.TaskStatus, filter StatusFilter) (*UserTasks, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	tasks, err := s.backend(token).ListUserTasks(ctx, userID, remote.TaskQuery{})
	if err != nil {
		return nil, err
	}
	owned := false
	for _, t := range tasks {
		if t.ID == taskID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrTaskNotFound
	}

	if err := s.setStatus(ctx, token, taskID, status); err != nil {
		return nil, err
	}
	return s.ListForUser(ctx, token, userID, filter)
}

func (s *TaskService) setStatus(ctx context.Context, token, taskID string, status models.TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(taskID) == "" {
		return ErrTaskNotFound
	}

	if err := s.backend(token).UpdateTaskStatus(ctx, taskID, status); err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.Status == 404 {
			return ErrTaskNotFound
		}
		return err
	}

	log.WithFields(log.Fields{
		"task_id": taskID,
		"status":  status,
	}).Info("task status updated")
	return nil
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeIDs []string
	DueDate     string
	Picture     string
}

// Create assigns a new task to every listed employee and returns the
// rebuilt board.
func (s *TaskService) Create(ctx context.Context, token string, input CreateTaskInput) (*GroupedTasks, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	assignees := uniqueStrings(input.AssigneeIDs)
	if len(assignees) == 0 {
		return nil, ErrNoAssignees
	}

	due := strings.TrimSpace(input.DueDate)
	if due == "" {
		return nil, ErrDueDateRequired
	}
	if _, err := onboarding.ParseTimestamp("dueDate", "", due); err != nil {
		return nil, ErrInvalidDueDate
	}

	err := s.backend(token).CreateTask(ctx, remote.CreateTaskRequest{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		AssignedTo:  assignees,
		DueDate:     due,
		Picture:     strings.TrimSpace(input.Picture),
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"title":     title,
		"assignees": len(assignees),
	}).Info("task created")

	return s.ListGrouped(ctx, token, GroupedFilter{})
}

// GenerateDrafts uses AI to propose tasks from text
func (s *TaskService) GenerateDrafts(ctx context.Context, text string) ([]TaskDraft, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	if s.ai == nil {
		return nil, ErrAIServiceNotConfigured
	}

	now := s.now()
	drafts, err := s.ai.GenerateTaskDrafts(ctx, text, now)
	if err != nil {
		if errors.Is(err, ErrAIServiceNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, ErrAITooManyTasks
	}

	valid := make([]TaskDraft, 0, len(drafts))
	cutoff := now.Add(-24 * time.Hour)
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		d.Description = strings.TrimSpace(d.Description)

		if d.DueDate != nil && d.DueDate.Before(cutoff) {
			d.DueDate = nil
		}

		valid = append(valid, d)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

// uniqueStrings trims values and drops blanks and duplicates, keeping order
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
