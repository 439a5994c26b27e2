package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onboarding-portal/internal/dto"
)

func (suite *PortalTestSuite) TestLogin_Success() {
	w := suite.request(http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "admin-pass"}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Result().Cookies())

	var session dto.SessionDTO
	suite.decode(w, &session)
	suite.Equal("a1", session.User.ID)
	suite.Equal("admin", string(session.User.Role))
	suite.Require().NotNil(session.ExpiresAt)
	suite.WithinDuration(suite.now.Add(time.Hour), *session.ExpiresAt, 2*time.Second)

	// Login itself is unauthenticated upstream.
	suite.Equal("", suite.lastAuthHeader())
}

func (suite *PortalTestSuite) TestLogin_InvalidCredentials() {
	w := suite.request(http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "wrong"}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("INVALID_CREDENTIALS", suite.errorCode(w))
	suite.Empty(w.Result().Cookies())
}

func (suite *PortalTestSuite) TestLogin_MissingFields() {
	w := suite.request(http.MethodPost, "/api/auth/login", gin.H{"email": "admin@example.com"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *PortalTestSuite) TestMe_RequiresSession() {
	w := suite.request(http.MethodGet, "/api/auth/me", nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", suite.errorCode(w))
}

func (suite *PortalTestSuite) TestMe_ForwardsToken() {
	cookies := suite.asEmployee()

	w := suite.request(http.MethodGet, "/api/auth/me", nil, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("u1", user.ID)
	suite.Equal("Ada Lovelace", user.Name)
	suite.Equal("555-0100", user.Phone)
	suite.Require().NotNil(user.StartDate)
	suite.Equal("Bearer "+suite.employeeToken, suite.lastAuthHeader())
}

func (suite *PortalTestSuite) TestExpiredToken_EndsSession() {
	cookies := suite.login("expired@example.com", "old-pass")

	w := suite.request(http.MethodGet, "/api/auth/me", nil, cookies)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("SESSION_EXPIRED", suite.errorCode(w))
}

func (suite *PortalTestSuite) TestBackendRejection_ClearsSession() {
	cookies := suite.asAdmin()
	suite.api.mu.Lock()
	suite.api.rejectToken = suite.adminToken
	suite.api.mu.Unlock()

	w := suite.request(http.MethodGet, "/api/admin/tasks", nil, cookies)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("SESSION_EXPIRED", suite.errorCode(w))

	cleared := w.Result().Cookies()
	suite.Require().NotEmpty(cleared)
	suite.api.mu.Lock()
	suite.api.rejectToken = ""
	suite.api.mu.Unlock()

	w = suite.request(http.MethodGet, "/api/auth/me", nil, cleared)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", suite.errorCode(w))
}

func (suite *PortalTestSuite) TestLogout() {
	cookies := suite.asEmployee()

	w := suite.request(http.MethodPost, "/api/auth/logout", nil, cookies)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *PortalTestSuite) TestAdminRoutes_ForbiddenForEmployees() {
	cookies := suite.asEmployee()

	for _, path := range []string{"/api/admin/tasks", "/api/admin/dashboard", "/api/admin/employees", "/api/admin/feedback/forms"} {
		w := suite.request(http.MethodGet, path, nil, cookies)
		suite.Equal(http.StatusForbidden, w.Code, path)
		suite.Equal("FORBIDDEN", suite.errorCode(w), path)
	}
}
