package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/constants"
	"github.com/yukikurage/onboarding-portal/internal/dto"
	apierrors "github.com/yukikurage/onboarding-portal/internal/errors"
	"github.com/yukikurage/onboarding-portal/internal/middleware"
	"github.com/yukikurage/onboarding-portal/internal/services"
	"github.com/yukikurage/onboarding-portal/internal/utils"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// ListEmployees returns a page of employees matching ?search=
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.employeeService.List(c.Request.Context(), middleware.GetToken(c), c.Query("search"), params)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeListResponse(*page))
}

// CreateEmployee signs up a single employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Phone     string `json:"phone"`
		StartDate string `json:"start_date"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.employeeService.Create(c.Request.Context(), middleware.GetToken(c), services.SignupInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		StartDate: req.StartDate,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// GetEmployee returns one employee's profile and progress
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	profile, err := h.employeeService.Profile(c.Request.Context(), middleware.GetToken(c), c.Param("id"))
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeProfileDTO(*profile))
}

// UpdateEmployee applies a partial profile update
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	type UpdateEmployeeRequest struct {
		Name      *string `json:"name"`
		Email     *string `json:"email"`
		Phone     *string `json:"phone"`
		StartDate *string `json:"start_date"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.employeeService.Update(c.Request.Context(), middleware.GetToken(c), c.Param("id"), services.UpdateEmployeeInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		StartDate: req.StartDate,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Template serves the roster CSV template as a download
func (h *EmployeeHandler) Template(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="employee_template.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", h.employeeService.Template())
}

// BulkUpload imports the roster sent as the multipart field "file"
func (h *EmployeeHandler) BulkUpload(c *gin.Context) {
	actorID, _ := middleware.GetUserID(c)

	header, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "A CSV file is required in the \"file\" field")
		return
	}
	if header.Size > constants.MaxBulkUploadBytes {
		apierrors.BadRequestWithDetails(c, "File is too large", gin.H{"max_bytes": constants.MaxBulkUploadBytes})
		return
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	run, err := h.employeeService.BulkUpload(c.Request.Context(), middleware.GetToken(c), actorID, header.Filename, file)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBulkUploadRunDTO(*run))
}

// ListBulkUploads returns recorded imports, newest first
func (h *EmployeeHandler) ListBulkUploads(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	runs, pagination, err := h.employeeService.Runs(params)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkUploadRunListResponse(runs, pagination))
}

// GetBulkUpload returns one recorded import with its rows
func (h *EmployeeHandler) GetBulkUpload(c *gin.Context) {
	run, err := h.employeeService.Run(c.Param("id"))
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkUploadRunDTO(*run))
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrPhoneRequired),
		errors.Is(err, services.ErrStartDateRequired),
		errors.Is(err, services.ErrInvalidStartDate),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrNothingToUpdate),
		errors.Is(err, services.ErrFieldCannotBeBlank),
		errors.Is(err, services.ErrInvalidRoster),
		errors.Is(err, services.ErrNoRosterEntries):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRunNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondUpstreamError(c, err)
	}
}
