package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/dto"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
)

func (suite *PortalTestSuite) TestAdminDashboard() {
	w := suite.request(http.MethodGet, "/api/admin/dashboard", nil, suite.asAdmin())

	suite.Equal(http.StatusOK, w.Code)
	var dash dto.AdminDashboardDTO
	suite.decode(w, &dash)
	suite.Equal(3, dash.TotalEmployees)
	suite.Equal(3, dash.TotalTasks)
	suite.Equal(1, dash.CompletedTasks)
	suite.Equal(2, dash.PendingTasks)
	suite.Equal(1, dash.TodaysCount)
	suite.Require().Len(dash.TodaysTasks, 1)
	suite.Equal("Setup laptop", dash.TodaysTasks[0].Title)
}

func (suite *PortalTestSuite) TestEmployeeDashboard() {
	w := suite.request(http.MethodGet, "/api/dashboard", nil, suite.asEmployee())

	suite.Equal(http.StatusOK, w.Code)
	var dash dto.EmployeeDashboardDTO
	suite.decode(w, &dash)
	suite.Equal("u1", dash.User.ID)
	suite.Equal(50, dash.Progress)
	suite.Equal(2, dash.TotalTasks)
	suite.Equal(onboarding.PhaseMonthOne, dash.Phase)
	suite.Equal(10, dash.DaysSinceStart)
	suite.Require().Len(dash.Upcoming, 1)
	suite.Equal("t3", dash.Upcoming[0].ID)
	suite.Require().NotNil(dash.Upcoming[0].DaysUntilDue)
	suite.Equal(3, *dash.Upcoming[0].DaysUntilDue)
	suite.Len(dash.Recent, 2)
}

func (suite *PortalTestSuite) TestListEmployees() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodGet, "/api/admin/employees", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.EmployeeListResponse
	suite.decode(w, &resp)
	suite.Len(resp.Employees, 3)
	suite.Equal(int64(3), resp.Pagination.Total)

	w = suite.request(http.MethodGet, "/api/admin/employees?search=ENGINEERING", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &resp)
	suite.Require().Len(resp.Employees, 1)
	suite.Equal("u2", resp.Employees[0].ID)

	w = suite.request(http.MethodGet, "/api/admin/employees?page=2&limit=2", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &resp)
	suite.Len(resp.Employees, 1)
	suite.Equal(2, resp.Pagination.TotalPages)
}

func (suite *PortalTestSuite) TestGetEmployee() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodGet, "/api/admin/employees/u1", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var profile dto.EmployeeProfileDTO
	suite.decode(w, &profile)
	suite.Equal("Ada Lovelace", profile.User.Name)
	suite.Len(profile.Tasks, 2)
	suite.Equal(50, profile.Completion)
	suite.Equal(onboarding.PhaseMonthOne, profile.Phase)

	w = suite.request(http.MethodGet, "/api/admin/employees/nobody", nil, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PortalTestSuite) TestCreateEmployee() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPost, "/api/admin/employees", gin.H{
		"name":       "Katherine Johnson",
		"email":      "kj@example.com",
		"password":   "orbit",
		"phone":      "555-0199",
		"start_date": "2030-02-01",
	}, cookies)

	suite.Equal(http.StatusCreated, w.Code)
	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("kj@example.com", user.Email)
	suite.api.mu.Lock()
	suite.Equal("user", suite.api.signups[0]["role"])
	suite.api.mu.Unlock()

	w = suite.request(http.MethodPost, "/api/admin/employees", gin.H{"name": "No Email"}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/admin/employees", gin.H{
		"name":       "No Phone",
		"email":      "nophone@example.com",
		"password":   "orbit",
		"start_date": "2030-02-01",
	}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "phone is required")
	suite.api.mu.Lock()
	suite.Len(suite.api.signups, 1)
	suite.api.mu.Unlock()
}

func (suite *PortalTestSuite) TestUpdateEmployee() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPatch, "/api/admin/employees/u2", gin.H{"phone": "555-0142"}, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("555-0142", user.Phone)
	suite.Equal("Grace Hopper", user.Name)

	w = suite.request(http.MethodPatch, "/api/admin/employees/u2", gin.H{}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPatch, "/api/admin/employees/u2", gin.H{"name": "  "}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPatch, "/api/admin/employees/nobody", gin.H{"name": "X"}, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PortalTestSuite) TestEmployeeTemplate() {
	w := suite.request(http.MethodGet, "/api/admin/employees/template.csv", nil, suite.asAdmin())

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), "employee_template.csv")
	suite.Contains(w.Body.String(), "name,email,password,phone,startDate")
}

func (suite *PortalTestSuite) upload(path, field, fileName, content string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, fileName)
	suite.Require().NoError(err)
	_, err = part.Write([]byte(content))
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PortalTestSuite) TestBulkUpload() {
	cookies := suite.asAdmin()
	roster := strings.Join([]string{
		"name,email,password,phone,startDate",
		"Mary Jackson,mary@example.com,pw1,555-0110,2030-03-01",
		"Ada Again,ada@example.com,pw2,555-0111,2030-03-01",
		"Half Row,half@example.com",
	}, "\n") + "\n"

	w := suite.upload("/api/admin/employees/bulk", "file", "roster.csv", roster, cookies)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var run dto.BulkUploadRunDTO
	suite.decode(w, &run)
	suite.Equal("a1", run.ActorID)
	suite.Equal("roster.csv", run.FileName)
	suite.Equal(3, run.Total)
	suite.Equal(1, run.Succeeded)
	suite.Equal(2, run.Failed)
	suite.Require().Len(run.Rows, 3)
	suite.Equal(models.BulkUploadRowSuccess, run.Rows[0].Status)
	suite.Equal(models.BulkUploadRowFailed, run.Rows[1].Status)
	suite.True(strings.HasPrefix(run.Rows[2].Error, "skipped: "))

	w = suite.request(http.MethodGet, "/api/admin/employees/bulk", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var list dto.BulkUploadRunListResponse
	suite.decode(w, &list)
	suite.Require().Len(list.Runs, 1)
	suite.Equal(run.ID, list.Runs[0].ID)

	w = suite.request(http.MethodGet, "/api/admin/employees/bulk/"+run.ID, nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var stored dto.BulkUploadRunDTO
	suite.decode(w, &stored)
	suite.Len(stored.Rows, 3)
	suite.Equal(2, stored.Rows[0].LineNumber)
}

func (suite *PortalTestSuite) TestBulkUpload_Rejected() {
	cookies := suite.asAdmin()

	w := suite.upload("/api/admin/employees/bulk", "roster", "roster.csv", "name\n", cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.upload("/api/admin/employees/bulk", "file", "roster.csv", "name,email\nA,a@example.com\n", cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodGet, "/api/admin/employees/bulk/unknown", nil, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PortalTestSuite) TestListResources() {
	w := suite.request(http.MethodGet, "/api/resources", nil, suite.asEmployee())

	suite.Equal(http.StatusOK, w.Code)
	var lib dto.ResourceLibraryResponse
	suite.decode(w, &lib)
	suite.Require().Len(lib.Resources, 1)
	suite.Equal("Handbook", lib.Resources[0].Title)
	suite.Equal(models.RoleUser, lib.Resources[0].AccessLevel)

	w = suite.request(http.MethodGet, "/api/admin/resources", nil, suite.asAdmin())
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &lib)
	suite.Len(lib.Resources, 2)
	suite.Equal(1, lib.VisibleUser)
	suite.Equal(2, lib.VisibleAdmin)
}

func (suite *PortalTestSuite) TestUploadAndDeleteResource() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPost, "/api/admin/resources", gin.H{
		"title":       "Org chart",
		"description": "Who is who",
		"file_url":    "https://cdn.example.com/org.pdf",
		"visible_to":  []string{"user", "admin", "user"},
	}, cookies)
	suite.Equal(http.StatusCreated, w.Code)
	suite.api.mu.Lock()
	suite.Require().Len(suite.api.uploads, 1)
	suite.Equal([]any{"user", "admin"}, suite.api.uploads[0]["visibleTo"])
	suite.api.mu.Unlock()

	w = suite.request(http.MethodPost, "/api/admin/resources", gin.H{"title": "No URL", "description": "x", "visible_to": []string{"user"}}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodDelete, "/api/admin/resources/r2", nil, cookies)
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal([]string{"r2"}, suite.api.deleted)

	w = suite.request(http.MethodDelete, "/api/admin/resources/r404", nil, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PortalTestSuite) TestEmployeeFeedback() {
	cookies := suite.asEmployee()

	w := suite.request(http.MethodGet, "/api/feedback/forms", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var forms struct {
		Forms []dto.FormDTO `json:"forms"`
	}
	suite.decode(w, &forms)
	suite.Require().Len(forms.Forms, 1)
	suite.Equal("f1", forms.Forms[0].ID)
	suite.Equal(models.AudienceUser, forms.Forms[0].Audience)

	w = suite.request(http.MethodPost, "/api/feedback/forms/f1/submit", gin.H{"answers": []gin.H{
		{"field_id": "q1", "answer": " Smooth "},
		{"field_id": "q2", "answer": "Great"},
	}}, cookies)
	suite.Equal(http.StatusCreated, w.Code)
	suite.api.mu.Lock()
	submitted := suite.api.submissions["f1"]["answers"].([]any)
	suite.api.mu.Unlock()
	suite.Require().Len(submitted, 2)
	suite.Equal("Smooth", submitted[0].(map[string]any)["answer"])
}

func (suite *PortalTestSuite) TestSubmitFeedback_Rejected() {
	cookies := suite.asEmployee()

	w := suite.request(http.MethodPost, "/api/feedback/forms/f1/submit", gin.H{"answers": []gin.H{{"field_id": "q2", "answer": "Great"}}}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/feedback/forms/f1/submit", gin.H{"answers": []gin.H{
		{"field_id": "q1", "answer": "Fine"},
		{"field_id": "q2", "answer": "Terrible"},
	}}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/feedback/forms/f2/submit", gin.H{"answers": []gin.H{}}, cookies)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.Empty(suite.api.submissions)
}

func (suite *PortalTestSuite) TestAdminForms() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodGet, "/api/admin/feedback/forms?audience=user", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var overview dto.FormOverviewResponse
	suite.decode(w, &overview)
	suite.Require().Len(overview.Forms, 1)
	suite.Equal("f1", overview.Forms[0].ID)
	suite.Equal(2, overview.Counts.Total)
	suite.Equal(1, overview.Counts.Admin)

	w = suite.request(http.MethodGet, "/api/admin/feedback/forms?audience=everyone", nil, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PortalTestSuite) TestCreateForm() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodPost, "/api/admin/feedback/forms", gin.H{
		"title":       "30 day check-in",
		"description": "How is month one going?",
		"audience":    "both",
		"fields": []gin.H{
			{"label": "Anything blocking you?", "type": "text"},
			{"label": "Workload", "type": "radio", "options": []string{"Light", "Right", "Heavy"}, "required": true},
		},
	}, cookies)
	suite.Equal(http.StatusCreated, w.Code)
	suite.api.mu.Lock()
	suite.Require().Len(suite.api.createdForm, 1)
	suite.Equal("both", suite.api.createdForm[0]["assignedTo"])
	suite.api.mu.Unlock()

	w = suite.request(http.MethodPost, "/api/admin/feedback/forms", gin.H{
		"title":       "Pulse",
		"description": "Quick poll",
		"audience":    "user",
		"fields":      []gin.H{{"label": "Happy?", "type": "radio", "options": []string{"Yes"}}},
	}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PortalTestSuite) TestFormResponses() {
	cookies := suite.asAdmin()

	w := suite.request(http.MethodGet, "/api/admin/feedback/forms/f1/responses", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Responses []dto.FormResponseDTO `json:"responses"`
	}
	suite.decode(w, &resp)
	suite.Len(resp.Responses, 2)

	w = suite.request(http.MethodGet, "/api/admin/feedback/forms/f1/responses?user_id=u1", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &resp)
	suite.Require().Len(resp.Responses, 1)
	suite.Equal("Ada Lovelace", resp.Responses[0].User.Name)
	suite.Equal("Great", resp.Responses[0].Answers[0].Answer)
}
