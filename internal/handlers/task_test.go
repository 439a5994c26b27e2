package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/dto"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

func (suite *PortalTestSuite) TestListGrouped() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodGet, "/api/admin/tasks", nil, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GroupedTasksResponse
	suite.decode(w, &resp)
	suite.Equal(2, resp.TotalGroups)
	suite.Equal(3, resp.TotalAssignments)
	suite.Require().Len(resp.Groups, 2)

	setup := resp.Groups[0]
	suite.Equal("Setup laptop", setup.Title)
	suite.Equal("t1", setup.ID)
	suite.Equal(50, setup.Completion)
	suite.Equal(1, setup.Counts.Completed)
	suite.Equal(1, setup.Counts.Pending)
	suite.Require().Len(setup.Assignees, 2)
	suite.Equal("u1", setup.Assignees[0].UserID)
	suite.Equal("u2", setup.Assignees[1].UserID)

	suite.Equal("Read handbook", resp.Groups[1].Title)
	suite.Equal(0, resp.Groups[1].Completion)
	suite.Equal("Bearer "+suite.adminToken, suite.lastAuthHeader())
}

func (suite *PortalTestSuite) TestListGrouped_Filters() {
	cookies := suite.asAdmin()

	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{"search by title", "?search=handbook", []string{"Read handbook"}},
		{"search by assignee", "?search=grace", []string{"Setup laptop"}},
		{"status matches any assignee", "?status=completed", []string{"Setup laptop"}},
		{"all", "?status=all", []string{"Setup laptop", "Read handbook"}},
		{"no match", "?search=payroll", []string{}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.request(http.MethodGet, "/api/admin/tasks"+tt.query, nil, cookies)
			suite.Require().Equal(http.StatusOK, w.Code)

			var resp dto.GroupedTasksResponse
			suite.decode(w, &resp)
			titles := []string{}
			for _, g := range resp.Groups {
				titles = append(titles, g.Title)
			}
			suite.Equal(tt.titles, titles)
			suite.Equal(2, resp.TotalGroups)
		})
	}
}

func (suite *PortalTestSuite) TestListGrouped_InvalidStatusFilter() {
	w := suite.request(http.MethodGet, "/api/admin/tasks?status=done", nil, suite.asAdmin())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("INVALID_INPUT", suite.errorCode(w))
}

func (suite *PortalTestSuite) TestListGrouped_UpstreamFailure() {
	cookies := suite.asAdmin()
	suite.api.mu.Lock()
	suite.api.failTasks = true
	suite.api.mu.Unlock()

	w := suite.request(http.MethodGet, "/api/admin/tasks", nil, cookies)

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.Equal("UPSTREAM_ERROR", suite.errorCode(w))
}

func (suite *PortalTestSuite) TestListGrouped_InvalidTimestamp() {
	cookies := suite.asAdmin()
	suite.api.mu.Lock()
	bad := suite.wireTask("t9", "Broken", "Bad date", "u2", "Grace Hopper", "pending", suite.now)
	bad["dueDate"] = "next tuesday"
	suite.api.tasks = append(suite.api.tasks, bad)
	suite.api.mu.Unlock()

	w := suite.request(http.MethodGet, "/api/admin/tasks", nil, cookies)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("INVALID_DATA", suite.errorCode(w))
}

func (suite *PortalTestSuite) TestUpdateTaskStatus_Regroups() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPatch, "/api/admin/tasks/t2/status", gin.H{"status": "completed"}, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GroupedTasksResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Groups, 2)
	suite.Equal(100, resp.Groups[0].Completion)
	suite.Equal(models.TaskStatusCompleted, resp.Groups[0].Assignees[1].Status)
}

func (suite *PortalTestSuite) TestUpdateTaskStatus_Errors() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPatch, "/api/admin/tasks/t2/status", gin.H{"status": "done"}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPatch, "/api/admin/tasks/missing/status", gin.H{"status": "completed"}, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PortalTestSuite) TestUpdateAssigneeStatus() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPatch, "/api/admin/task-groups/status", gin.H{
		"title":       "Setup laptop",
		"description": "Install tools",
		"user_id":     "u2",
		"status":      "in-progress",
	}, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GroupedTasksResponse
	suite.decode(w, &resp)
	suite.Equal(models.TaskStatusInProgress, resp.Groups[0].Assignees[1].Status)
	suite.Equal(1, resp.Groups[0].Counts.InProgress)

	w = suite.request(http.MethodPatch, "/api/admin/task-groups/status", gin.H{
		"title":       "Read handbook",
		"description": "Policies",
		"user_id":     "u2",
		"status":      "completed",
	}, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PortalTestSuite) TestCreateTask() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPost, "/api/admin/tasks", gin.H{
		"title":        "  Meet your buddy ",
		"description":  "Coffee chat",
		"assignee_ids": []string{"u1", "u2", "u1", " "},
		"due_date":     "2030-01-15",
	}, cookies)

	suite.Equal(http.StatusCreated, w.Code)
	suite.api.mu.Lock()
	defer suite.api.mu.Unlock()
	suite.Require().Len(suite.api.created, 1)
	created := suite.api.created[0]
	suite.Equal("Meet your buddy", created["title"])
	suite.Equal([]any{"u1", "u2"}, created["assignedTo"])
	suite.Equal("2030-01-15", created["dueDate"])
}

func (suite *PortalTestSuite) TestCreateTask_Validation() {
	cookies := suite.asAdmin()

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing title", gin.H{"assignee_ids": []string{"u1"}, "due_date": "2030-01-15"}},
		{"no assignees", gin.H{"title": "Badge", "assignee_ids": []string{}, "due_date": "2030-01-15"}},
		{"missing due date", gin.H{"title": "Badge", "assignee_ids": []string{"u1"}}},
		{"bad due date", gin.H{"title": "Badge", "assignee_ids": []string{"u1"}, "due_date": "soon"}},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.request(http.MethodPost, "/api/admin/tasks", tt.body, cookies)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.Empty(suite.api.created)
}

func (suite *PortalTestSuite) TestGenerateDrafts_NotConfigured() {
	w := suite.request(http.MethodPost, "/api/admin/tasks/drafts", gin.H{"text": "Week one: laptop, badge"}, suite.asAdmin())

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.Equal("SERVICE_UNAVAILABLE", suite.errorCode(w))
}

func (suite *PortalTestSuite) TestGenerateDrafts() {
	due := suite.now.Add(48 * time.Hour).Truncate(time.Second)
	h := suite.handlers
	h.Tasks = NewTaskHandler(services.NewTaskService(suite.backend, stubDrafts{drafts: []services.TaskDraft{
		{Title: " Get badge ", Description: "Security desk", DueDate: &due},
		{Title: "  "},
	}}))
	suite.router = suite.newRouter(h)
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPost, "/api/admin/tasks/drafts", gin.H{"text": "Week one: badge"}, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Drafts []dto.TaskDraftDTO `json:"drafts"`
	}
	suite.decode(w, &resp)
	suite.Require().Len(resp.Drafts, 1)
	suite.Equal("Get badge", resp.Drafts[0].Title)
	suite.Require().NotNil(resp.Drafts[0].DueDate)
	suite.True(due.Equal(*resp.Drafts[0].DueDate))

	w = suite.request(http.MethodPost, "/api/admin/tasks/drafts", gin.H{"text": ""}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PortalTestSuite) TestListMyTasks() {
	cookies := suite.asEmployee()

	w := suite.request(http.MethodGet, "/api/tasks?status=pending", nil, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserTasksResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Tasks, 1)
	suite.Equal("t3", resp.Tasks[0].ID)
	suite.Equal(2, resp.Counts.All)
	suite.Equal(1, resp.Counts.Completed)
	suite.Equal(50, resp.Completion)
}

func (suite *PortalTestSuite) TestUpdateMyTaskStatus() {
	cookies := suite.asEmployee()

	w := suite.request(http.MethodPatch, "/api/tasks/t3/status", gin.H{"status": "completed"}, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.UserTasksResponse
	suite.decode(w, &resp)
	suite.Equal(100, resp.Completion)
	suite.Equal(2, resp.Counts.Completed)
}

func (suite *PortalTestSuite) TestUpdateMyTaskStatus_OtherUsersTask() {
	cookies := suite.asEmployee()

	w := suite.request(http.MethodPatch, "/api/tasks/t2/status", gin.H{"status": "completed"}, cookies)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.api.mu.Lock()
	defer suite.api.mu.Unlock()
	suite.Equal("pending", suite.api.tasks[1]["status"])
}
