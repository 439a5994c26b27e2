package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

var (
	ErrFormNotFound          = errors.New("form not found")
	ErrInvalidAudience       = errors.New("audience must be user, admin or both")
	ErrInvalidAudienceFilter = errors.New("audience filter must be all, user, admin or both")
	ErrNoFields              = errors.New("a form needs at least one field")
	ErrFieldLabelRequired    = errors.New("every field needs a label")
	ErrInvalidFieldType      = errors.New("field type must be text or radio")
	ErrRadioNeedsOptions     = errors.New("radio fields need at least two options")
	ErrFormNotForRole        = errors.New("form is not assigned to your role")
	ErrMissingRequiredAnswer = errors.New("a required question was not answered")
	ErrInvalidOption         = errors.New("answer is not one of the field's options")
)

const minRadioOptions = 2

type FeedbackService struct {
	backend BackendFor
}

func NewFeedbackService(backend BackendFor) *FeedbackService {
	return &FeedbackService{backend: backend}
}

// ListForRole returns the forms accounts with role may fill in.
func (s *FeedbackService) ListForRole(ctx context.Context, token string, role models.Role) ([]models.Form, error) {
	q := remote.FormQuery{}
	if role == models.RoleUser {
		q.Audience = models.AudienceUser
	}

	forms, err := s.backend(token).ListForms(ctx, q)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Form, 0, len(forms))
	for _, f := range forms {
		if f.Audience.Includes(role) {
			visible = append(visible, f)
		}
	}
	return visible, nil
}

// AudienceCounts tallies forms by audience.
type AudienceCounts struct {
	User  int `json:"user"`
	Admin int `json:"admin"`
	Both  int `json:"both"`
	Total int `json:"total"`
}

type FormOverview struct {
	Forms  []models.Form
	Counts AudienceCounts
}

// ParseAudienceFilter accepts "", "all" or an audience. "" and "all" yield "".
func ParseAudienceFilter(raw string) (models.Audience, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "all" {
		return "", nil
	}
	a := models.Audience(raw)
	if !a.Valid() {
		return "", ErrInvalidAudienceFilter
	}
	return a, nil
}

// AdminOverview returns every form matching audience ("" for all). Counts
// always cover all forms.
func (s *FeedbackService) AdminOverview(ctx context.Context, token string, audience models.Audience) (*FormOverview, error) {
	forms, err := s.backend(token).ListForms(ctx, remote.FormQuery{})
	if err != nil {
		return nil, err
	}

	overview := &FormOverview{Forms: make([]models.Form, 0, len(forms))}
	for _, f := range forms {
		switch f.Audience {
		case models.AudienceUser:
			overview.Counts.User++
		case models.AudienceAdmin:
			overview.Counts.Admin++
		case models.AudienceBoth:
			overview.Counts.Both++
		}
		overview.Counts.Total++

		if audience == "" || f.Audience == audience {
			overview.Forms = append(overview.Forms, f)
		}
	}
	return overview, nil
}

// CreateFormInput represents input for creating a feedback form
type CreateFormInput struct {
	Title       string
	Description string
	Audience    models.Audience
	Fields      []models.FormField
}

func (in CreateFormInput) request() (remote.CreateFormRequest, error) {
	req := remote.CreateFormRequest{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Audience:    in.Audience,
	}
	switch {
	case req.Title == "":
		return req, ErrTitleRequired
	case req.Description == "":
		return req, ErrDescriptionRequired
	case !in.Audience.Valid():
		return req, ErrInvalidAudience
	case len(in.Fields) == 0:
		return req, ErrNoFields
	}

	for i, f := range in.Fields {
		field := remote.CreateFormField{
			Label:    strings.TrimSpace(f.Label),
			Type:     f.Type,
			Required: f.Required,
		}
		if field.Label == "" {
			return req, fmt.Errorf("%w (field %d)", ErrFieldLabelRequired, i+1)
		}
		switch f.Type {
		case models.FieldTypeText:
		case models.FieldTypeRadio:
			field.Options = uniqueStrings(f.Options)
			if len(field.Options) < minRadioOptions {
				return req, fmt.Errorf("%w (%q)", ErrRadioNeedsOptions, field.Label)
			}
		default:
			return req, fmt.Errorf("%w (%q)", ErrInvalidFieldType, field.Label)
		}
		req.Fields = append(req.Fields, field)
	}
	return req, nil
}

func (s *FeedbackService) Create(ctx context.Context, token string, input CreateFormInput) error {
	req, err := input.request()
	if err != nil {
		return err
	}

	if err := s.backend(token).CreateForm(ctx, req); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"title":    req.Title,
		"audience": req.Audience,
		"fields":   len(req.Fields),
	}).Info("feedback form created")
	return nil
}

// Submit validates answers against the form and sends them. Blank answers
// and answers to unknown fields are dropped before validation.
func (s *FeedbackService) Submit(ctx context.Context, token string, role models.Role, formID string, answers []models.Answer) error {
	backend := s.backend(token)

	form, err := s.findForm(ctx, backend, role, formID)
	if err != nil {
		return err
	}
	if !form.Audience.Includes(role) {
		return ErrFormNotForRole
	}

	byField := make(map[string]models.FormField, len(form.Fields))
	for _, f := range form.Fields {
		byField[f.ID] = f
	}

	given := make(map[string]string, len(answers))
	kept := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		value := strings.TrimSpace(a.Answer)
		field, ok := byField[a.FieldID]
		if !ok || value == "" {
			continue
		}
		if field.Type == models.FieldTypeRadio && !containsString(field.Options, value) {
			return fmt.Errorf("%w (%q)", ErrInvalidOption, field.Label)
		}
		if _, dup := given[a.FieldID]; dup {
			continue
		}
		given[a.FieldID] = value
		kept = append(kept, models.Answer{FieldID: a.FieldID, Question: field.Label, Answer: value})
	}

	for _, f := range form.Fields {
		if f.Required && given[f.ID] == "" {
			return fmt.Errorf("%w (%q)", ErrMissingRequiredAnswer, f.Label)
		}
	}

	if err := backend.SubmitForm(ctx, formID, kept); err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound {
			return ErrFormNotFound
		}
		return err
	}

	log.WithFields(log.Fields{
		"form_id": formID,
		"answers": len(kept),
	}).Info("feedback submitted")
	return nil
}

func (s *FeedbackService) findForm(ctx context.Context, backend Backend, role models.Role, formID string) (*models.Form, error) {
	q := remote.FormQuery{}
	if role == models.RoleUser {
		q.Audience = models.AudienceUser
	}
	forms, err := backend.ListForms(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range forms {
		if forms[i].ID == formID {
			return &forms[i], nil
		}
	}
	return nil, ErrFormNotFound
}

// Responses returns the submissions for formID, optionally for one user.
func (s *FeedbackService) Responses(ctx context.Context, token, formID, userID string) ([]models.FormResponse, error) {
	responses, err := s.backend(token).FormResponses(ctx, formID, remote.ResponseQuery{UserID: strings.TrimSpace(userID)})
	if err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound {
			return nil, ErrFormNotFound
		}
		return nil, err
	}
	return responses, nil
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
