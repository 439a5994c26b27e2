package middleware

import (
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/onboarding-portal/internal/constants"
	apierrors "github.com/yukikurage/onboarding-portal/internal/errors"
	"github.com/yukikurage/onboarding-portal/internal/models"
	"github.com/yukikurage/onboarding-portal/internal/services"
)

// RequireAuth checks that the session holds a backend token that has not
// expired, and copies the caller's identity into the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(constants.ContextKeyToken).(string)
		userID, _ := session.Get(constants.ContextKeyUserID).(string)

		if token == "" || userID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if services.TokenExpired(token, time.Now()) || sessionExpired(session, time.Now()) {
			session.Clear()
			if err := session.Save(); err != nil {
				log.WithError(err).Warn("failed to clear expired session")
			}
			apierrors.SessionExpired(c)
			c.Abort()
			return
		}

		role, _ := session.Get(constants.ContextKeyRole).(string)
		name, _ := session.Get(constants.ContextKeyName).(string)
		email, _ := session.Get(constants.ContextKeyEmail).(string)

		c.Set(constants.ContextKeyToken, token)
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyRole, models.Role(role))
		c.Set(constants.ContextKeyName, name)
		c.Set(constants.ContextKeyEmail, email)
		c.Next()
	}
}

// sessionExpired reports whether the expiry recorded at login has passed.
// Sessions saved without one never expire here.
func sessionExpired(session sessions.Session, now time.Time) bool {
	exp, ok := session.Get(constants.ContextKeyExpires).(int64)
	return ok && exp > 0 && !now.Before(time.Unix(exp, 0))
}

// RequireRole rejects callers whose session role is not role.
// It must run after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != role {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// SaveSession stores a fresh login in the session
func SaveSession(c *gin.Context, s *services.Session) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyToken, s.Token)
	session.Set(constants.ContextKeyUserID, s.User.ID)
	session.Set(constants.ContextKeyRole, string(s.User.Role))
	session.Set(constants.ContextKeyName, s.User.Name)
	session.Set(constants.ContextKeyEmail, s.User.Email)
	if !s.ExpiresAt.IsZero() {
		session.Set(constants.ContextKeyExpires, s.ExpiresAt.Unix())
	}
	return session.Save()
}

// GetToken retrieves the caller's backend token from context
func GetToken(c *gin.Context) string {
	return c.GetString(constants.ContextKeyToken)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

func GetRole(c *gin.Context) models.Role {
	v, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return ""
	}
	role, _ := v.(models.Role)
	return role
}
