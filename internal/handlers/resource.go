package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/dto"
	apierrors "github.com/yukikurage/onboarding-portal/internal/errors"
	"github.com/yukikurage/onboarding-portal/internal/middleware"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

type ResourceHandler struct {
	resourceService *services.ResourceService
}

func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// ListResources returns the resources published for the caller's role
func (h *ResourceHandler) ListResources(c *gin.Context) {
	h.list(c, middleware.GetRole(c))
}

// ListAllResources returns every resource regardless of visibility
func (h *ResourceHandler) ListAllResources(c *gin.Context) {
	h.list(c, "")
}

func (h *ResourceHandler) list(c *gin.Context, visibleTo models.Role) {
	lib, err := h.resourceService.List(c.Request.Context(), middleware.GetToken(c), visibleTo)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToResourceLibraryResponse(*lib))
}

// UploadResource publishes a document or link
func (h *ResourceHandler) UploadResource(c *gin.Context) {
	type UploadResourceRequest struct {
		Title       string        `json:"title"`
		Description string        `json:"description"`
		FileURL     string        `json:"file_url"`
		VisibleTo   []models.Role `json:"visible_to"`
		Language    string        `json:"language"`
	}

	var req UploadResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.resourceService.Upload(c.Request.Context(), middleware.GetToken(c), services.UploadResourceInput{
		Title:       req.Title,
		Description: req.Description,
		FileURL:     req.FileURL,
		VisibleTo:   req.VisibleTo,
		Language:    req.Language,
	})
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Resource uploaded successfully",
	})
}

func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	if err := h.resourceService.Delete(c.Request.Context(), middleware.GetToken(c), c.Param("id")); err != nil {
		respondResourceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrFileURLRequired),
		errors.Is(err, services.ErrVisibilityRequired),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondUpstreamError(c, err)
	}
}
