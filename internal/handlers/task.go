package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/dto"
	apierrors "github.com/yukikurage/onboarding-portal/internal/errors"
	"github.com/yukikurage/onboarding-portal/internal/middleware"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type updateStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// ListMyTasks returns the caller's tasks, optionally narrowed by ?status=
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	filter, err := services.ParseStatusFilter(c.Query("status"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	list, err := h.taskService.ListForUser(c.Request.Context(), middleware.GetToken(c), userID, filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserTasksResponse(*list))
}

// UpdateMyTaskStatus lets an employee move one of their own tasks and
// returns their refreshed task list
func (h *TaskHandler) UpdateMyTaskStatus(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	filter, err := services.ParseStatusFilter(c.Query("status"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	list, err := h.taskService.UpdateOwnStatus(c.Request.Context(), middleware.GetToken(c), userID, c.Param("id"), req.Status, filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserTasksResponse(*list))
}

// groupedFilter reads ?search= and ?status= for the admin task board
func groupedFilter(c *gin.Context) (services.GroupedFilter, error) {
	status, err := services.ParseStatusFilter(c.Query("status"))
	if err != nil {
		return services.GroupedFilter{}, err
	}
	return services.GroupedFilter{Search: c.Query("search"), Status: status}, nil
}

// ListGrouped returns every task grouped by content with per-group progress
func (h *TaskHandler) ListGrouped(c *gin.Context) {
	filter, err := groupedFilter(c)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	board, err := h.taskService.ListGrouped(c.Request.Context(), middleware.GetToken(c), filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupedTasksResponse(*board))
}

// CreateTask assigns a new task to the listed employees
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		AssigneeIDs []string `json:"assignee_ids"`
		DueDate     string   `json:"due_date"`
		Picture     string   `json:"picture"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.taskService.Create(c.Request.Context(), middleware.GetToken(c), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeIDs: req.AssigneeIDs,
		DueDate:     req.DueDate,
		Picture:     req.Picture,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToGroupedTasksResponse(*board))
}

// GenerateDrafts proposes tasks from free text using AI. Nothing is
// created until an admin submits the drafts through CreateTask.
func (h *TaskHandler) GenerateDrafts(c *gin.Context) {
	type GenerateDraftsRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.GenerateDrafts(c.Request.Context(), req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"drafts": dto.ToTaskDraftDTOs(drafts),
	})
}

// UpdateTaskStatus sets the status of one assignment and returns the
// regrouped board
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	filter, err := groupedFilter(c)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	board, err := h.taskService.UpdateStatus(c.Request.Context(), middleware.GetToken(c), c.Param("id"), req.Status, filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupedTasksResponse(*board))
}

// UpdateAssigneeStatus sets one assignee's status on a grouped task
func (h *TaskHandler) UpdateAssigneeStatus(c *gin.Context) {
	type UpdateAssigneeStatusRequest struct {
		Title       string            `json:"title"`
		Description string            `json:"description"`
		UserID      string            `json:"user_id" binding:"required"`
		Status      models.TaskStatus `json:"status" binding:"required"`
	}

	var req UpdateAssigneeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	filter, err := groupedFilter(c)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	board, err := h.taskService.UpdateAssigneeStatus(c.Request.Context(), middleware.GetToken(c), services.AssigneeStatusInput{
		Key:    onboarding.GroupKey{Title: req.Title, Description: req.Description},
		UserID: req.UserID,
		Status: req.Status,
	}, filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToGroupedTasksResponse(*board))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidStatusFilter),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNoAssignees),
		errors.Is(err, services.ErrDueDateRequired),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrTextRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks),
		errors.Is(err, services.ErrAITooManyTasks):
		apierrors.UnprocessableData(c, err.Error())
	default:
		respondUpstreamError(c, err)
	}
}
