package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yukikurage/onboarding-portal/internal/models"
)

type FormQuery struct {
	Audience models.Audience
	Active   *bool
	Limit    int
}

func (q FormQuery) values() url.Values {
	v := url.Values{}
	if q.Audience != "" {
		v.Set("assignedTo", string(q.Audience))
	}
	if q.Active != nil {
		v.Set("active", strconv.FormatBool(*q.Active))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

type ResponseQuery struct {
	UserID string
	Limit  int
	Sort   string
}

func (q ResponseQuery) values() url.Values {
	v := url.Values{}
	if q.UserID != "" {
		v.Set("userId", q.UserID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

type CreateFormField struct {
	Label    string           `json:"label"`
	Type     models.FieldType `json:"type"`
	Options  []string         `json:"options,omitempty"`
	Required bool             `json:"required"`
}

type CreateFormRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Audience    models.Audience   `json:"assignedTo"`
	Fields      []CreateFormField `json:"fields"`
}

type submitAnswer struct {
	FieldID string `json:"fieldId"`
	Answer  string `json:"answer"`
}

func (c *Client) ListForms(ctx context.Context, q FormQuery) ([]models.Form, error) {
	const endpoint = "/api/forms"
	raw, err := c.do(ctx, http.MethodGet, endpoint, q.values(), nil)
	if err != nil {
		return nil, err
	}

	payloads, err := decodeList[formPayload](raw, "forms")
	if err != nil {
		return nil, decodeFailure(endpoint, err)
	}
	forms := make([]models.Form, 0, len(payloads))
	for _, p := range payloads {
		f, err := p.normalize()
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, nil
}

func (c *Client) CreateForm(ctx context.Context, req CreateFormRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/api/forms/create", nil, req)
	return err
}

// SubmitForm sends only field ids and answers; question text is not part
// of a submission.
func (c *Client) SubmitForm(ctx context.Context, formID string, answers []models.Answer) error {
	body := struct {
		Answers []submitAnswer `json:"answers"`
	}{Answers: make([]submitAnswer, len(answers))}
	for i, a := range answers {
		body.Answers[i] = submitAnswer{FieldID: a.FieldID, Answer: a.Answer}
	}

	_, err := c.do(ctx, http.MethodPost, "/api/forms/"+url.PathEscape(formID)+"/submit", nil, body)
	return err
}

func (c *Client) FormResponses(ctx context.Context, formID string, q ResponseQuery) ([]models.FormResponse, error) {
	endpoint := "/api/forms/" + url.PathEscape(formID) + "/responses"
	raw, err := c.do(ctx, http.MethodGet, endpoint, q.values(), nil)
	if err != nil {
		return nil, err
	}

	payloads, err := decodeList[responsePayload](raw, "responses")
	if err != nil {
		return nil, decodeFailure(endpoint, err)
	}
	responses := make([]models.FormResponse, 0, len(payloads))
	for _, p := range payloads {
		r, err := p.normalize()
		if err != nil {
			return nil, err
		}
		if r.FormID == "" {
			r.FormID = formID
		}
		responses = append(responses, r)
	}
	return responses, nil
}
