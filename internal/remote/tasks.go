package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yukikurage/onboarding-portal/internal/models"
)

// TaskQuery filters the task list endpoints. Zero values are omitted.
type TaskQuery struct {
	AssignedTo string
	Status     models.TaskStatus
	Type       string
	Limit      int
	Page       int
	Sort       string
}

func (q TaskQuery) values() url.Values {
	v := url.Values{}
	if q.AssignedTo != "" {
		v.Set("assignedTo", q.AssignedTo)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

// CreateTaskRequest creates one assignment per id in AssignedTo.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssignedTo  []string `json:"assignedTo"`
	DueDate     string   `json:"dueDate"`
	Picture     string   `json:"picture,omitempty"`
}

// ListTasks returns every assignment visible to the caller.
func (c *Client) ListTasks(ctx context.Context, q TaskQuery) ([]models.TaskAssignment, error) {
	return c.listTasks(ctx, "/api/tasks", q)
}

// ListUserTasks returns the assignments of one user. AssignedTo and Page
// are ignored by this endpoint.
func (c *Client) ListUserTasks(ctx context.Context, userID string, q TaskQuery) ([]models.TaskAssignment, error) {
	q.AssignedTo = ""
	q.Page = 0
	return c.listTasks(ctx, "/api/tasks/"+url.PathEscape(userID), q)
}

func (c *Client) listTasks(ctx context.Context, endpoint string, q TaskQuery) ([]models.TaskAssignment, error) {
	raw, err := c.do(ctx, http.MethodGet, endpoint, q.values(), nil)
	if err != nil {
		return nil, err
	}

	payloads, err := decodeList[taskPayload](raw, "tasks")
	if err != nil {
		return nil, decodeFailure(endpoint, err)
	}

	tasks := make([]models.TaskAssignment, 0, len(payloads))
	for _, p := range payloads {
		t, err := p.normalize()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/api/tasks/create", nil, req)
	return err
}

func (c *Client) UpdateTaskStatus(ctx context.Context, taskID string, status models.TaskStatus) error {
	endpoint := "/api/tasks/" + url.PathEscape(taskID) + "/status"
	_, err := c.do(ctx, http.MethodPatch, endpoint, nil, map[string]models.TaskStatus{"status": status})
	return err
}
