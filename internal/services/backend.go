package services

import (
	"context"

	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

// Backend is the part of the onboarding API the services call.
// *remote.Client satisfies it.
type Backend interface {
	Login(ctx context.Context, email, password string) (*remote.LoginResult, error)
	Signup(ctx context.Context, req remote.SignupRequest) (*models.User, error)
	ListUsers(ctx context.Context, q remote.UserQuery) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, update remote.UserUpdate) (*models.User, error)

	ListTasks(ctx context.Context, q remote.TaskQuery) ([]models.TaskAssignment, error)
	ListUserTasks(ctx context.Context, userID string, q remote.TaskQuery) ([]models.TaskAssignment, error)
	CreateTask(ctx context.Context, req remote.CreateTaskRequest) error
	UpdateTaskStatus(ctx context.Context, taskID string, status models.TaskStatus) error

	ListResources(ctx context.Context, q remote.ResourceQuery) ([]models.Resource, error)
	UploadResource(ctx context.Context, req remote.UploadResourceRequest) error
	DeleteResource(ctx context.Context, id string) error

	ListForms(ctx context.Context, q remote.FormQuery) ([]models.Form, error)
	CreateForm(ctx context.Context, req remote.CreateFormRequest) error
	SubmitForm(ctx context.Context, formID string, answers []models.Answer) error
	FormResponses(ctx context.Context, formID string, q remote.ResponseQuery) ([]models.FormResponse, error)
}

// BackendFor returns a Backend that authenticates as token. An empty
// token yields an anonymous Backend.
type BackendFor func(token string) Backend

// ClientBackend adapts a *remote.Client to BackendFor.
func ClientBackend(client *remote.Client) BackendFor {
	return func(token string) Backend {
		return client.WithToken(token)
	}
}
