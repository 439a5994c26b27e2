package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/remote"
	"github.com/yukikurage/onboarding-portal/internal/repository"
	"github.com/yukikurage/onboarding-portal/internal/roster"
	"github.com/yukikurage/onboarding-portal/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidRoster      = errors.New("invalid roster file")
	ErrNoRosterEntries    = errors.New("roster contains no importable rows")
	ErrRunNotFound        = errors.New("bulk upload run not found")
	ErrNothingToUpdate    = errors.New("no fields to update")
	ErrFieldCannotBeBlank = errors.New("fields cannot be blank")
)

// EmployeeService manages employee accounts and bulk imports.
type EmployeeService struct {
	backend BackendFor
	auth    *AuthService
	runs    repository.BulkUploadRepository
	now     func() time.Time
}

func NewEmployeeService(backend BackendFor, auth *AuthService, runs repository.BulkUploadRepository) *EmployeeService {
	return &EmployeeService{
		backend: backend,
		auth:    auth,
		runs:    runs,
		now:     time.Now,
	}
}

type EmployeePage struct {
	Employees  []models.User
	Pagination utils.PaginationResponse
}

// List returns one page of employees whose name, email, phone or
// department contains search, ignoring case.
func (s *EmployeeService) List(ctx context.Context, token, search string, params utils.PaginationParams) (*EmployeePage, error) {
	users, err := s.backend(token).ListUsers(ctx, remote.UserQuery{Role: models.RoleUser})
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(search))
	matched := make([]models.User, 0, len(users))
	for _, u := range withRole(users, models.RoleUser) {
		if term == "" || employeeMatches(u, term) {
			matched = append(matched, u)
		}
	}

	start, end := params.Bounds(len(matched))
	return &EmployeePage{
		Employees:  matched[start:end],
		Pagination: params.Response(int64(len(matched))),
	}, nil
}

func employeeMatches(u models.User, term string) bool {
	for _, field := range []string{u.Name, u.Email, u.Phone, u.Department} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

type EmployeeProfile struct {
	User           models.User
	Tasks          []models.TaskAssignment
	Counts         onboarding.StatusCounts
	Completion     int
	Phase          string
	DaysSinceStart int
}

// Profile loads one employee with their tasks and progress.
func (s *EmployeeService) Profile(ctx context.Context, token, userID string) (*EmployeeProfile, error) {
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

	now := s.now()
	start := user.StartDate
	if start.IsZero() {
		start = now
	}
	days := onboarding.ElapsedDays(start, now)
	if days < 0 {
		days = 0
	}

	statuses := onboarding.Statuses(tasks)
	return &EmployeeProfile{
		User:           *user,
		Tasks:          tasks,
		Counts:         onboarding.CountStatuses(statuses),
		Completion:     onboarding.CompletionPercentage(statuses),
		Phase:          onboarding.Phase(start, now),
		DaysSinceStart: days,
	}, nil
}

// Create signs up a single employee. The role is always user.
func (s *EmployeeService) Create(ctx context.Context, token string, input SignupInput) (*models.User, error) {
	input.Role = models.RoleUser
	user, err := s.auth.Signup(ctx, token, input)
	if err != nil {
		return nil, err
	}

	log.WithField("email", user.Email).Info("employee created")
	return user, nil
}

// UpdateEmployeeInput is a partial update; nil fields are left unchanged.
type UpdateEmployeeInput struct {
	Name      *string
	Email     *string
	Phone     *string
	StartDate *string
}

func (s *EmployeeService) Update(ctx context.Context, token, userID string, input UpdateEmployeeInput) (*models.User, error) {
	update := remote.UserUpdate{}
	fields := 0
	for _, f := range []struct {
		in  *string
		out **string
	}{
		{input.Name, &update.Name},
		{input.Email, &update.Email},
		{input.Phone, &update.Phone},
		{input.StartDate, &update.StartDate},
	} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return nil, ErrFieldCannotBeBlank
		}
		*f.out = &v
		fields++
	}
	if fields == 0 {
		return nil, ErrNothingToUpdate
	}
	if update.StartDate != nil {
		if _, err := onboarding.ParseTimestamp("startDate", userID, *update.StartDate); err != nil {
			return nil, ErrInvalidStartDate
		}
	}

	user, err := s.backend(token).UpdateUser(ctx, userID, update)
	if err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// BulkUpload imports a roster CSV one signup at a time and records the
// outcome of every line. Lines the parser rejected are recorded as failed
// without a signup attempt.
func (s *EmployeeService) BulkUpload(ctx context.Context, token, actorID, fileName string, file io.Reader) (*models.BulkUploadRun, error) {
	parsed, err := roster.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}
	if len(parsed.Entries) == 0 {
		return nil, fmt.Errorf("%w (%d skipped)", ErrNoRosterEntries, len(parsed.Skipped))
	}

	run := &models.BulkUploadRun{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		FileName:  fileName,
		CreatedAt: s.now(),
		Rows:      make([]models.BulkUploadRow, 0, len(parsed.Entries)+len(parsed.Skipped)),
	}

	for _, skipped := range parsed.Skipped {
		run.Rows = append(run.Rows, models.BulkUploadRow{
			LineNumber: skipped.Line,
			Name:       skipped.Name,
			Email:      skipped.Email,
			Status:     models.BulkUploadRowFailed,
			Error:      "skipped: " + skipped.Reason,
		})
	}

	for _, entry := range parsed.Entries {
		row := models.BulkUploadRow{
			LineNumber: entry.Line,
			Name:       entry.Name,
			Email:      entry.Email,
			Status:     models.BulkUploadRowSuccess,
		}

		if ctx.Err() != nil {
			row.Status = models.BulkUploadRowFailed
			row.Error = "not attempted: " + ctx.Err().Error()
			run.Rows = append(run.Rows, row)
			continue
		}

		_, err := s.auth.Signup(ctx, token, SignupInput{
			Name:      entry.Name,
			Email:     entry.Email,
			Password:  entry.Password,
			Phone:     entry.Phone,
			Role:      models.RoleUser,
			StartDate: entry.StartDate,
		})
		if err != nil {
			row.Status = models.BulkUploadRowFailed
			row.Error = err.Error()
		}
		run.Rows = append(run.Rows, row)
	}

	sort.SliceStable(run.Rows, func(i, j int) bool {
		return run.Rows[i].LineNumber < run.Rows[j].LineNumber
	})
	for _, row := range run.Rows {
		if row.Status == models.BulkUploadRowSuccess {
			run.Succeeded++
		} else {
			run.Failed++
		}
	}
	run.Total = len(run.Rows)

	if err := s.runs.Create(run); err != nil {
		return nil, fmt.Errorf("failed to record bulk upload: %w", err)
	}

	log.WithFields(log.Fields{
		"run_id":    run.ID,
		"actor_id":  actorID,
		"total":     run.Total,
		"succeeded": run.Succeeded,
		"failed":    run.Failed,
	}).Info("bulk upload finished")

	return run, nil
}

// Template returns the roster CSV template.
func (s *EmployeeService) Template() []byte {
	return roster.Template()
}

// Runs lists recorded bulk uploads, newest first.
func (s *EmployeeService) Runs(params utils.PaginationParams) ([]models.BulkUploadRun, utils.PaginationResponse, error) {
	runs, total, err := s.runs.List(params)
	if err != nil {
		return nil, utils.PaginationResponse{}, fmt.Errorf("failed to list bulk uploads: %w", err)
	}
	return runs, params.Response(total), nil
}

// Run returns one recorded bulk upload with its rows.
func (s *EmployeeService) Run(id string) (*models.BulkUploadRun, error) {
	run, err := s.runs.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to find bulk upload: %w", err)
	}
	return run, nil
}
