package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/onboarding-portal/internal/errors"
	"github.com/yukikurage/onboarding-portal/internal/onboarding"
	"github.com/yukikurage/onboarding-portal/internal/remote"
)

// respondUpstreamError handles failures that are not specific to one
// handler: the backend rejecting the call, malformed backend data, and
// anything unexpected.
func respondUpstreamError(c *gin.Context, err error) {
	var remoteErr *remote.Error
	var dataErr *onboarding.DataError

	switch {
	case errors.Is(err, remote.ErrUnauthorized):
		session := sessions.Default(c)
		session.Clear()
		if saveErr := session.Save(); saveErr != nil {
			log.WithError(saveErr).Warn("failed to clear rejected session")
		}
		apierrors.SessionExpired(c)
	case errors.As(err, &dataErr) && errors.Is(err, onboarding.ErrInvalidTimestamp):
		log.WithFields(log.Fields{
			"record_id": dataErr.RecordID,
			"field":     dataErr.Field,
			"value":     dataErr.Value,
		}).Error("backend returned an invalid timestamp")
		apierrors.UnprocessableData(c, dataErr.Error())
	case errors.As(err, &remoteErr):
		log.WithFields(log.Fields{
			"endpoint": remoteErr.Endpoint,
			"status":   remoteErr.Status,
		}).WithError(err).Error("onboarding backend request failed")
		if remoteErr.Status == http.StatusForbidden {
			apierrors.Forbidden(c, remoteErr.Message)
			return
		}
		apierrors.BadGateway(c, remoteErr.Message)
	default:
		log.WithError(err).Error("unhandled error")
		apierrors.InternalError(c, "Internal server error")
	}
}
