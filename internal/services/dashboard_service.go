package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yukikurage/onboarding-portal/internal/constants"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

// DashboardService derives the landing page figures for both roles.
type DashboardService struct {
	backend BackendFor
}

func NewDashboardService(backend BackendFor) *DashboardService {
	return &DashboardService{backend: backend}
}

type AdminDashboard struct {
	TotalEmployees int
	TotalTasks     int
	CompletedTasks int
	PendingTasks   int
	TodaysCount    int
	TodaysTasks    []models.TaskAssignment
}

// Admin summarizes every assignment. Today is taken in now's location.
func (s *DashboardService) Admin(ctx context.Context, token string, now time.Time) (*AdminDashboard, error) {
	backend := s.backend(token)

	employees, err := backend.ListUsers(ctx, remote.UserQuery{Role: models.RoleUser})
	if err != nil {
		return nil, err
	}
	tasks, err := backend.ListTasks(ctx, remote.TaskQuery{})
	if err != nil {
		return nil, err
	}

	counts := onboarding.CountStatuses(onboarding.Statuses(tasks))
	today := onboarding.TasksDueToday(tasks, now)

	preview := today
	if len(preview) > constants.TodaysTasksPreview {
		preview = preview[:constants.TodaysTasksPreview]
	}

	return &AdminDashboard{
		TotalEmployees: len(withRole(employees, models.RoleUser)),
		TotalTasks:     len(tasks),
		CompletedTasks: counts.Completed,
		PendingTasks:   counts.Pending,
		TodaysCount:    len(today),
		TodaysTasks:    preview,
	}, nil
}

// UpcomingTask is an open task with its distance to the deadline.
type UpcomingTask struct {
	models.TaskAssignment
	DaysUntilDue         int
	CalendarDaysUntilDue int
}

type EmployeeDashboard struct {
	User           models.User
	Progress       int
	Counts         onboarding.StatusCounts
	TotalTasks     int
	Phase          string
	DaysSinceStart int
	Upcoming       []UpcomingTask
	Recent         []models.TaskAssignment
}

// Employee summarizes userID's own tasks. A missing start date is treated
// as starting now.
func (s *DashboardService) Employee(ctx context.Context, token, userID string, now time.Time) (*EmployeeDashboard, error) {
	backend := s.backend(token)

	user, err := backend.GetUser(ctx, userID)
	if err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	tasks, err := backend.ListUserTasks(ctx, userID, remote.TaskQuery{})
	if err != nil {
		return nil, err
	}

	start := user.StartDate
	if start.IsZero() {
		start = now
	}
	daysSince := onboarding.ElapsedDays(start, now)
	if daysSince < 0 {
		daysSince = 0
	}

	statuses := onboarding.Statuses(tasks)
	upcoming := onboarding.UpcomingTasks(tasks, constants.DefaultUpcomingLimit)
	dash := &EmployeeDashboard{
		User:           *user,
		Progress:       onboarding.CompletionPercentage(statuses),
		Counts:         onboarding.CountStatuses(statuses),
		TotalTasks:     len(tasks),
		Phase:          onboarding.Phase(start, now),
		DaysSinceStart: daysSince,
		Upcoming:       make([]UpcomingTask, 0, len(upcoming)),
	}

	for _, t := range upcoming {
		u := UpcomingTask{TaskAssignment: t}
		if t.HasDueDate() {
			u.DaysUntilDue = onboarding.DaysUntilDue(t.DueDate, now)
			u.CalendarDaysUntilDue = onboarding.CalendarDaysUntilDue(t.DueDate, now)
		}
		dash.Upcoming = append(dash.Upcoming, u)
	}

	dash.Recent = tasks
	if len(dash.Recent) > constants.RecentTasksPreview {
		dash.Recent = dash.Recent[:constants.RecentTasksPreview]
	}

	return dash, nil
}

// withRole keeps users whose role is role. The backend is asked to filter
// by role but is not trusted to; records without a role are kept.
func withRole(users []models.User, role models.Role) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == role || u.Role == "" {
			out = append(out, u)
		}
	}
	return out
}
