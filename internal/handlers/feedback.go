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

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// ListForms returns the forms the caller's role may fill in
func (h *FeedbackHandler) ListForms(c *gin.Context) {
	forms, err := h.feedbackService.ListForRole(c.Request.Context(), middleware.GetToken(c), middleware.GetRole(c))
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forms": dto.ToFormDTOs(forms),
	})
}

// SubmitForm sends the caller's answers for one form
func (h *FeedbackHandler) SubmitForm(c *gin.Context) {
	type AnswerRequest struct {
		FieldID string `json:"field_id"`
		Answer  string `json:"answer"`
	}
	type SubmitFormRequest struct {
		Answers []AnswerRequest `json:"answers"`
	}

	var req SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	answers := make([]models.Answer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = models.Answer{FieldID: a.FieldID, Answer: a.Answer}
	}

	err := h.feedbackService.Submit(c.Request.Context(), middleware.GetToken(c), middleware.GetRole(c), c.Param("id"), answers)
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Feedback submitted successfully",
	})
}

// AdminForms lists every form, narrowed by ?audience=, with counts
func (h *FeedbackHandler) AdminForms(c *gin.Context) {
	audience, err := services.ParseAudienceFilter(c.Query("audience"))
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	overview, err := h.feedbackService.AdminOverview(c.Request.Context(), middleware.GetToken(c), audience)
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFormOverviewResponse(*overview))
}

// CreateForm defines a new feedback form
func (h *FeedbackHandler) CreateForm(c *gin.Context) {
	type FieldRequest struct {
		Label    string           `json:"label"`
		Type     models.FieldType `json:"type"`
		Options  []string         `json:"options"`
		Required bool             `json:"required"`
	}
	type CreateFormRequest struct {
		Title       string          `json:"title"`
		Description string          `json:"description"`
		Audience    models.Audience `json:"audience"`
		Fields      []FieldRequest  `json:"fields"`
	}

	var req CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	fields := make([]models.FormField, len(req.Fields))
	for i, f := range req.Fields {
		fields[i] = models.FormField{
			Label:    f.Label,
			Type:     f.Type,
			Options:  f.Options,
			Required: f.Required,
		}
	}

	err := h.feedbackService.Create(c.Request.Context(), middleware.GetToken(c), services.CreateFormInput{
		Title:       req.Title,
		Description: req.Description,
		Audience:    req.Audience,
		Fields:      fields,
	})
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Form created successfully",
	})
}

// FormResponses returns submissions for a form, optionally for ?user_id=
func (h *FeedbackHandler) FormResponses(c *gin.Context) {
	responses, err := h.feedbackService.Responses(c.Request.Context(), middleware.GetToken(c), c.Param("id"), c.Query("user_id"))
	if err != nil {
		respondFeedbackError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responses": dto.ToFormResponseDTOs(responses),
	})
}

func respondFeedbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidAudience),
		errors.Is(err, services.ErrInvalidAudienceFilter),
		errors.Is(err, services.ErrNoFields),
		errors.Is(err, services.ErrFieldLabelRequired),
		errors.Is(err, services.ErrInvalidFieldType),
		errors.Is(err, services.ErrRadioNeedsOptions),
		errors.Is(err, services.ErrMissingRequiredAnswer),
		errors.Is(err, services.ErrInvalidOption):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFormNotForRole):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrFormNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		respondUpstreamError(c, err)
	}
}
