package services

import (
	"context"
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

// fakeBackend is an in-memory Backend. Err fields force the matching call
// to fail; every call records the token it was made with.
type fakeBackend struct {
	tokens []string

	loginResult *remote.LoginResult
	loginErr    error

	users      []models.User
	usersErr   error
	signups    []remote.SignupRequest
	signupErrs map[string]error
	updates    map[string]remote.UserUpdate

	tasks        []models.TaskAssignment
	tasksErr     error
	created      []remote.CreateTaskRequest
	statusCalls  map[string]models.TaskStatus
	statusErr    error
	afterStatus  func(f *fakeBackend, taskID string, status models.TaskStatus)
	userTaskReqs []string

	resources []models.Resource
	uploads   []remote.UploadResourceRequest
	deleted   []string
	deleteErr error

	forms       []models.Form
	formQueries []remote.FormQuery
	createdForm []remote.CreateFormRequest
	submitted   map[string][]models.Answer
	responses   []models.FormResponse
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		signupErrs:  map[string]error{},
		updates:     map[string]remote.UserUpdate{},
		statusCalls: map[string]models.TaskStatus{},
		submitted:   map[string][]models.Answer{},
	}
}

func (f *fakeBackend) factory() BackendFor {
	return func(token string) Backend {
		f.tokens = append(f.tokens, token)
		return f
	}
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*remote.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeBackend) Signup(ctx context.Context, req remote.SignupRequest) (*models.User, error) {
	f.signups = append(f.signups, req)
	if err := f.signupErrs[req.Email]; err != nil {
		return nil, err
	}
	return &models.User{ID: "new-" + req.Email, Name: req.Name, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeBackend) ListUsers(ctx context.Context, q remote.UserQuery) ([]models.User, error) {
	return f.users, f.usersErr
}

func (f *fakeBackend) GetUser(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, &remote.Error{Status: 404, Message: "User not found"}
}

func (f *fakeBackend) UpdateUser(ctx context.Context, id string, update remote.UserUpdate) (*models.User, error) {
	f.updates[id] = update
	return f.GetUser(ctx, id)
}

func (f *fakeBackend) ListTasks(ctx context.Context, q remote.TaskQuery) ([]models.TaskAssignment, error) {
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	out := make([]models.TaskAssignment, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeBackend) ListUserTasks(ctx context.Context, userID string, q remote.TaskQuery) ([]models.TaskAssignment, error) {
	f.userTaskReqs = append(f.userTaskReqs, userID)
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	out := []models.TaskAssignment{}
	for _, t := range f.tasks {
		if t.Assignee.ID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateTask(ctx context.Context, req remote.CreateTaskRequest) error {
	f.created = append(f.created, req)
	return nil
}

func (f *fakeBackend) UpdateTaskStatus(ctx context.Context, taskID string, status models.TaskStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusCalls[taskID] = status
	if f.afterStatus != nil {
		f.afterStatus(f, taskID, status)
	}
	return nil
}

func (f *fakeBackend) ListResources(ctx context.Context, q remote.ResourceQuery) ([]models.Resource, error) {
	return f.resources, nil
}

func (f *fakeBackend) UploadResource(ctx context.Context, req remote.UploadResourceRequest) error {
	f.uploads = append(f.uploads, req)
	return nil
}

func (f *fakeBackend) DeleteResource(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) ListForms(ctx context.Context, q remote.FormQuery) ([]models.Form, error) {
	f.formQueries = append(f.formQueries, q)
	return f.forms, nil
}

func (f *fakeBackend) CreateForm(ctx context.Context, req remote.CreateFormRequest) error {
	f.createdForm = append(f.createdForm, req)
	return nil
}

func (f *fakeBackend) SubmitForm(ctx context.Context, formID string, answers []models.Answer) error {
	f.submitted[formID] = answers
	return nil
}

func (f *fakeBackend) FormResponses(ctx context.Context, formID string, q remote.ResponseQuery) ([]models.FormResponse, error) {
	out := []models.FormResponse{}
	for _, r := range f.responses {
		if r.FormID == formID && (q.UserID == "" || r.User.ID == q.UserID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// setStatus applies a status change to the stored tasks, the way the
// backend would.
func setStatus(f *fakeBackend, taskID string, status models.TaskStatus) {
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].Status = status
		}
	}
}

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func task(id, title, description, userID, name string, status models.TaskStatus, due time.Time) models.TaskAssignment {
	return models.TaskAssignment{
		ID:          id,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     due,
		Assignee:    models.UserRef{ID: userID, Name: name, Email: userID + "@example.com", Role: models.RoleUser},
		Kind:        models.TaskKindRecurring,
	}
}
