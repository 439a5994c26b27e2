package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/middleware"
	"github.com/yukikurage/onboarding-portal/internal/models"
)

// Handlers groups every HTTP handler of the portal.
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Tasks     *TaskHandler
	Employees *EmployeeHandler
	Resources *ResourceHandler
	Feedback  *FeedbackHandler
}

// RegisterRoutes mounts the portal API on r. Session middleware must
// already be installed.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
	}

	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.GET("/dashboard", h.Dashboard.Employee)

		protected.GET("/tasks", h.Tasks.ListMyTasks)
		protected.PATCH("/tasks/:id/status", h.Tasks.UpdateMyTaskStatus)

		protected.GET("/resources", h.Resources.ListResources)

		protected.GET("/feedback/forms", h.Feedback.ListForms)
		protected.POST("/feedback/forms/:id/submit", h.Feedback.SubmitForm)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", h.Dashboard.Admin)

		admin.GET("/tasks", h.Tasks.ListGrouped)
		admin.POST("/tasks", h.Tasks.CreateTask)
		admin.POST("/tasks/drafts", h.Tasks.GenerateDrafts)
		admin.PATCH("/tasks/:id/status", h.Tasks.UpdateTaskStatus)
		admin.PATCH("/task-groups/status", h.Tasks.UpdateAssigneeStatus)

		admin.GET("/employees", h.Employees.ListEmployees)
		admin.POST("/employees", h.Employees.CreateEmployee)
		admin.GET("/employees/template.csv", h.Employees.Template)
		admin.POST("/employees/bulk", h.Employees.BulkUpload)
		admin.GET("/employees/bulk", h.Employees.ListBulkUploads)
		admin.GET("/employees/bulk/:id", h.Employees.GetBulkUpload)
		admin.GET("/employees/:id", h.Employees.GetEmployee)
		admin.PATCH("/employees/:id", h.Employees.UpdateEmployee)

		admin.GET("/resources", h.Resources.ListAllResources)
		admin.POST("/resources", h.Resources.UploadResource)
		admin.DELETE("/resources/:id", h.Resources.DeleteResource)

		admin.GET("/feedback/forms", h.Feedback.AdminForms)
		admin.POST("/feedback/forms", h.Feedback.CreateForm)
		admin.GET("/feedback/forms/:id/responses", h.Feedback.FormResponses)
	}
}
