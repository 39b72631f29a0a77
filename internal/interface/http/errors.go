package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnect-api/internal/application"
	"github.com/oksasatya/devconnect-api/pkg/response"
)

// writeServiceError maps application sentinel errors onto the HTTP error
// taxonomy. Anything unrecognized is logged and surfaced as a generic 500
// with no internal detail.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusBadRequest, "invalid credentials", nil)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error[any](c, http.StatusConflict, "user already exists", nil)
	case errors.Is(err, application.ErrAlreadyLiked),
		errors.Is(err, application.ErrNotLiked):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, "user not authorized", nil)
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrProfileNotFound),
		errors.Is(err, application.ErrPostNotFound),
		errors.Is(err, application.ErrCommentNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
	}
}
