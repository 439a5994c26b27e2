package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yukikurage/onboarding-portal/internal/models"
)

// LoginResult is the token and account returned by a successful login.
type LoginResult struct {
	Token string
	User  models.User
}

type loginResponse struct {
	AccessToken string      `json:"accessToken"`
	Token       string      `json:"token"`
	User        userPayload `json:"user"`
}

// SignupRequest creates an account. StartDate is sent as given.
type SignupRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      models.Role `json:"role"`
	Phone     string      `json:"phone"`
	StartDate string      `json:"startDate"`
}

// UserQuery filters GET /api/users. Zero values are omitted.
type UserQuery struct {
	Role   models.Role
	Status string
	Limit  int
	Page   int
}

func (q UserQuery) values() url.Values {
	v := url.Values{}
	if q.Role != "" {
		v.Set("role", string(q.Role))
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	return v
}

// UserUpdate is a partial profile update; nil fields are not sent.
type UserUpdate struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const endpoint = "/api/users/login"
	raw, err := c.do(ctx, http.MethodPost, endpoint, nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, err := decodeObject[loginResponse](raw, "")
	if err != nil {
		return nil, decodeFailure(endpoint, err)
	}

	token := resp.AccessToken
	if token == "" {
		token = resp.Token
	}
	if token == "" {
		return nil, &Error{Status: http.StatusOK, Endpoint: endpoint, Message: "Login response carried no token"}
	}

	user, err := resp.User.normalize()
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	const endpoint = "/api/users/signup"
	raw, err := c.do(ctx, http.MethodPost, endpoint, nil, req)
	if err != nil {
		return nil, err
	}
	return decodeUser(endpoint, raw)
}

func (c *Client) ListUsers(ctx context.Context, q UserQuery) ([]models.User, error) {
	const endpoint = "/api/users"
	raw, err := c.do(ctx, http.MethodGet, endpoint, q.values(), nil)
	if err != nil {
		return nil, err
	}

	payloads, err := decodeList[userPayload](raw, "users")
	if err != nil {
		return nil, decodeFailure(endpoint, err)
	}
	users := make([]models.User, 0, len(payloads))
	for _, p := range payloads {
		u, err := p.normalize()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	endpoint := "/api/users/" + url.PathEscape(id)
	raw, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(endpoint, raw)
}

func (c *Client) UpdateUser(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	endpoint := "/api/users/" + url.PathEscape(id)
	raw, err := c.do(ctx, http.MethodPatch, endpoint, nil, update)
	if err != nil {
		return nil, err
	}
	return decodeUser(endpoint, raw)
}

func decodeUser(endpoint string, raw []byte) (*models.User, error) {
	if len(raw) == 0 {
		return &models.User{}, nil
	}
	p, err := decodeObject[userPayload](raw, "user")
	if err != nil {
		return nil, decodeFailure(endpoint, err)
	}
	u, err := p.normalize()
	if err != nil {
		return nil, err
	}
	return &u, nil
}
