package remote

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
)

// identity carries both spellings of a record id; the backend sends either.
type identity struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
}

func (i identity) value() string {
	if i.MongoID != "" {
		return i.MongoID
	}
	return i.ID
}

type userPayload struct {
	identity
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Department string `json:"department"`
	StartDate  string `json:"startDate"`
}

type taskPayload struct {
	identity
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	DueDate     string                 `json:"dueDate"`
	Type        string                 `json:"type"`
	Picture     string                 `json:"picture"`
	AssignedTo  sonic.NoCopyRawMessage `json:"assignedTo"`
	CreatedAt   string                 `json:"createdAt"`
	UpdatedAt   string                 `json:"updatedAt"`
}

type resourcePayload struct {
	identity
	Title       string   `json:"title"`
	Description string   `json:"description"`
	FileURL     string   `json:"fileUrl"`
	VisibleTo   []string `json:"visibleTo"`
	Language    string   `json:"language"`
	Category    string   `json:"category"`
	CreatedAt   string   `json:"createdAt"`
}

type fieldPayload struct {
	identity
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
}

type formPayload struct {
	identity
	Title       string         `json:"title"`
	Description string         `json:"description"`
	AssignedTo  string         `json:"assignedTo"`
	Fields      []fieldPayload `json:"fields"`
	Active      *bool          `json:"active"`
	CreatedAt   string         `json:"createdAt"`
}

type answerPayload struct {
	FieldID  string `json:"fieldId"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type responsePayload struct {
	identity
	FormID      string                 `json:"formId"`
	User        sonic.NoCopyRawMessage `json:"user"`
	Answers     []answerPayload        `json:"answers"`
	SubmittedAt string                 `json:"submittedAt"`
}

func (p userPayload) normalize() (models.User, error) {
	id := p.value()
	start, err := onboarding.ParseOptionalTimestamp("startDate", id, p.StartDate)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		ID:         id,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Role:       models.Role(p.Role),
		Status:     p.Status,
		Department: p.Department,
		StartDate:  start,
	}, nil
}

// userRef accepts either an embedded user object or a bare id string.
func userRef(raw []byte) (models.UserRef, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return models.UserRef{}, nil
	}
	if trimmed[0] == '"' {
		var id string
		if err := sonic.Unmarshal(trimmed, &id); err != nil {
			return models.UserRef{}, err
		}
		return models.UserRef{ID: id}, nil
	}
	var u userPayload
	if err := sonic.Unmarshal(trimmed, &u); err != nil {
		return models.UserRef{}, err
	}
	return models.UserRef{
		ID:    u.value(),
		Name:  u.Name,
		Email: u.Email,
		Role:  models.Role(u.Role),
	}, nil
}

func taskKind(t string) models.TaskKind {
	switch t {
	case "daily":
		return models.TaskKindRecurring
	case "form":
		return models.TaskKindFormBased
	}
	return models.TaskKind(t)
}

func (p taskPayload) normalize() (models.TaskAssignment, error) {
	id := p.value()

	assignee, err := userRef(p.AssignedTo)
	if err != nil {
		return models.TaskAssignment{}, fmt.Errorf("task %q: decode assignedTo: %w", id, err)
	}
	due, err := onboarding.ParseOptionalTimestamp("dueDate", id, p.DueDate)
	if err != nil {
		return models.TaskAssignment{}, err
	}
	created, err := onboarding.ParseOptionalTimestamp("createdAt", id, p.CreatedAt)
	if err != nil {
		return models.TaskAssignment{}, err
	}
	updated, err := onboarding.ParseOptionalTimestamp("updatedAt", id, p.UpdatedAt)
	if err != nil {
		return models.TaskAssignment{}, err
	}

	return models.TaskAssignment{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Status:      models.TaskStatus(p.Status),
		DueDate:     due,
		Assignee:    assignee,
		Kind:        taskKind(p.Type),
		Picture:     p.Picture,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func (p resourcePayload) normalize() (models.Resource, error) {
	id := p.value()
	created, err := onboarding.ParseOptionalTimestamp("createdAt", id, p.CreatedAt)
	if err != nil {
		return models.Resource{}, err
	}
	visible := make([]models.Role, 0, len(p.VisibleTo))
	for _, v := range p.VisibleTo {
		visible = append(visible, models.Role(v))
	}
	return models.Resource{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		FileURL:     p.FileURL,
		VisibleTo:   visible,
		Language:    p.Language,
		Category:    p.Category,
		CreatedAt:   created,
	}, nil
}

func (p formPayload) normalize() (models.Form, error) {
	id := p.value()
	created, err := onboarding.ParseOptionalTimestamp("createdAt", id, p.CreatedAt)
	if err != nil {
		return models.Form{}, err
	}

	fields := make([]models.FormField, len(p.Fields))
	for i, f := range p.Fields {
		fieldID := f.value()
		if fieldID == "" {
			fieldID = fmt.Sprintf("field_%d", i)
		}
		options := f.Options
		if options == nil {
			options = []string{}
		}
		fields[i] = models.FormField{
			ID:       fieldID,
			Label:    f.Label,
			Type:     models.FieldType(f.Type),
			Options:  options,
			Required: f.Required,
		}
	}

	active := true
	if p.Active != nil {
		active = *p.Active
	}

	return models.Form{
		ID:          id,
		Title:       p.Title,
		Description: p.Description,
		Audience:    models.Audience(p.AssignedTo),
		Fields:      fields,
		Active:      active,
		CreatedAt:   created,
	}, nil
}

func (p responsePayload) normalize() (models.FormResponse, error) {
	id := p.value()
	user, err := userRef(p.User)
	if err != nil {
		return models.FormResponse{}, fmt.Errorf("response %q: decode user: %w", id, err)
	}
	submitted, err := onboarding.ParseOptionalTimestamp("submittedAt", id, p.SubmittedAt)
	if err != nil {
		return models.FormResponse{}, err
	}
	answers := make([]models.Answer, len(p.Answers))
	for i, a := range p.Answers {
		answers[i] = models.Answer{FieldID: a.FieldID, Question: a.Question, Answer: a.Answer}
	}
	return models.FormResponse{
		ID:          id,
		FormID:      p.FormID,
		User:        user,
		Answers:     answers,
		SubmittedAt: submitted,
	}, nil
}

// decodeList reads a list that is either a bare array or wrapped in an
// object under key or "data". One level of nested wrapping is accepted.
func decodeList[T any](raw []byte, key string) ([]T, error) {
	return decodeListDepth[T](raw, key, 1)
}

func decodeListDepth[T any](raw []byte, key string, depth int) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []T{}, nil
	}

	if trimmed[0] == '[' {
		var items []T
		if err := sonic.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	if trimmed[0] != '{' {
		return nil, fmt.Errorf("expected list, got %q", preview(trimmed))
	}

	var envelope map[string]sonic.NoCopyRawMessage
	if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
		return nil, err
	}
	for _, k := range []string{key, "data"} {
		inner, ok := envelope[k]
		if !ok {
			continue
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '{' && depth == 0 {
			break
		}
		if len(inner) > 0 && (inner[0] == '[' || inner[0] == '{') {
			return decodeListDepth[T](inner, key, depth-1)
		}
		if string(inner) == "null" {
			return []T{}, nil
		}
	}
	return nil, fmt.Errorf("no %q list in response", key)
}

// decodeObject reads a single record that may be wrapped under key or "data".
func decodeObject[T any](raw []byte, key string) (T, error) {
	var out T
	trimmed := bytes.TrimSpace(raw)

	var envelope map[string]sonic.NoCopyRawMessage
	if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
		return out, err
	}
	for _, k := range []string{key, "data"} {
		inner := bytes.TrimSpace(envelope[k])
		if len(inner) > 0 && inner[0] == '{' {
			err := sonic.Unmarshal(inner, &out)
			return out, err
		}
	}
	err := sonic.Unmarshal(trimmed, &out)
	return out, err
}

func preview(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
