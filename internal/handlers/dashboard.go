package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/dto"
	"github.com/yukikurage/onboarding-portal/internal/middleware"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
	now              func() time.Time
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		now:              time.Now,
	}
}

// Admin returns the organization-wide onboarding summary
func (h *DashboardHandler) Admin(c *gin.Context) {
	dash, err := h.dashboardService.Admin(c.Request.Context(), middleware.GetToken(c), h.now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDashboardDTO(*dash))
}

// Employee returns the caller's own onboarding summary
func (h *DashboardHandler) Employee(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	dash, err := h.dashboardService.Employee(c.Request.Context(), middleware.GetToken(c), userID, h.now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDashboardDTO(*dash))
}
