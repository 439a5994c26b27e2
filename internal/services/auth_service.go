package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrNameRequired        = errors.New("name is required")
	ErrEmailRequired       = errors.New("email is required")
	ErrPasswordRequired    = errors.New("password is required")
	ErrPhoneRequired       = errors.New("phone is required")
	ErrStartDateRequired   = errors.New("start date is required")
	ErrInvalidStartDate    = errors.New("start date must be a date such as 2025-01-15")
	ErrInvalidRole         = errors.New("role must be admin or user")
	ErrUserNotFound        = errors.New("user not found")
)

// Session is what a successful login yields. ExpiresAt is zero when the
// token carries no readable expiry.
type Session struct {
	Token     string
	User      models.User
	ExpiresAt time.Time
}

// AuthService handles login against the onboarding backend and account creation.
type AuthService struct {
	backend BackendFor
}

// NewAuthService creates a new AuthService.
func NewAuthService(backend BackendFor) *AuthService {
	return &AuthService{
		backend: backend,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login exchanges credentials for a backend token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrCredentialsRequired
	}

	res, err := s.backend("").Login(ctx, email, input.Password)
	if err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) {
			switch remoteErr.Status {
			case http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, remoteErr.Message)
			}
		}
		return nil, err
	}

	session := &Session{
		Token:     res.Token,
		User:      res.User,
		ExpiresAt: TokenExpiry(res.Token),
	}

	log.WithFields(log.Fields{
		"user_id": res.User.ID,
		"role":    res.User.Role,
	}).Info("user logged in")

	return session, nil
}

// SignupInput represents the information needed to create an account.
// StartDate is a date or timestamp string and is forwarded unchanged.
type SignupInput struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	Role      models.Role
	StartDate string
}

func (in SignupInput) normalize() (SignupInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.StartDate = strings.TrimSpace(in.StartDate)

	switch {
	case in.Name == "":
		return in, ErrNameRequired
	case in.Email == "":
		return in, ErrEmailRequired
	case in.Password == "":
		return in, ErrPasswordRequired
	case in.Phone == "":
		return in, ErrPhoneRequired
	case in.StartDate == "":
		return in, ErrStartDateRequired
	}
	if _, err := onboarding.ParseTimestamp("startDate", in.Email, in.StartDate); err != nil {
		return in, ErrInvalidStartDate
	}

	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if in.Role != models.RoleUser && in.Role != models.RoleAdmin {
		return in, ErrInvalidRole
	}
	return in, nil
}

// Signup creates an account on behalf of the caller identified by token.
func (s *AuthService) Signup(ctx context.Context, token string, input SignupInput) (*models.User, error) {
	in, err := input.normalize()
	if err != nil {
		return nil, err
	}

	user, err := s.backend(token).Signup(ctx, remote.SignupRequest{
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      in.Role,
		Phone:     in.Phone,
		StartDate: in.StartDate,
	})
	if err != nil {
		return nil, err
	}

	// Some backends answer signup with a bare message.
	if user.ID == "" {
		user.Name, user.Email, user.Phone, user.Role = in.Name, in.Email, in.Phone, in.Role
	}
	return user, nil
}

// CurrentUser loads the caller's own account.
func (s *AuthService) CurrentUser(ctx context.Context, token, userID string) (*models.User, error) {
	user, err := s.backend(token).GetUser(ctx, userID)
	if err != nil {
		var remoteErr *remote.Error
		if errors.As(err, &remoteErr) && remoteErr.Status == http.StatusNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying it; the
// backend remains the authority on validity. Opaque tokens yield zero.
func TokenExpiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// TokenExpired reports whether token's exp claim is at or before now.
// Tokens without a readable expiry never expire here.
func TokenExpired(token string, now time.Time) bool {
	exp := TokenExpiry(token)
	return !exp.IsZero() && !now.Before(exp)
}
