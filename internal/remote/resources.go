package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yukikurage/onboarding-portal/internal/models"
)

type ResourceQuery struct {
	Language  string
	VisibleTo models.Role
	Limit     int
	Sort      string
}

func (q ResourceQuery) values() url.Values {
	v := url.Values{}
	if q.Language != "" {
		v.Set("language", q.Language)
	}
	if q.VisibleTo != "" {
		v.Set("visibleTo", string(q.VisibleTo))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	return v
}

type UploadResourceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	FileURL     string   `json:"fileUrl"`
	VisibleTo   []string `json:"visibleTo"`
	Language    string   `json:"language,omitempty"`
}

func (c *Client) ListResources(ctx context.Context, q ResourceQuery) ([]models.Resource, error) {
	const endpoint = "/api/resources"
	raw, err := c.do(ctx, http.MethodGet, endpoint, q.values(), nil)
	if err != nil {
		return nil, err
	}

	payloads, err := decodeList[resourcePayload](raw, "resources")
	if err != nil {
		return nil, decodeFailure(endpoint, err)
	}
	resources := make([]models.Resource, 0, len(payloads))
	for _, p := range payloads {
		r, err := p.normalize()
		if err != nil {
			return nil, err
		}
		resources = append(resources, r)
	}
	return resources, nil
}

func (c *Client) UploadResource(ctx context.Context, req UploadResourceRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/api/resources/upload", nil, req)
	return err
}

func (c *Client) DeleteResource(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/resources/"+url.PathEscape(id), nil, nil)
	return err
}
