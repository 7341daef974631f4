package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/application"
	"github.com/livity/realestate-api/pkg/helpers"
	"github.com/livity/realestate-api/pkg/response"
)

// statusFor maps service errors onto a status and a client-safe message.
func statusFor(err error) (int, string) {
	var verr *application.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, application.ErrValidation):
		return http.StatusBadRequest, "invalid payload"
	case errors.Is(err, application.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, application.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, application.ErrNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, application.ErrInvalidCredential):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, application.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, application.ErrImageUpload):
		return http.StatusBadGateway, "image upload failed"
	}
	return http.StatusInternalServerError, "server error"
}

// fail writes err as an error envelope. Server errors are logged and their
// details never leave the process.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := statusFor(err)

	var details any
	var verr *application.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		details = map[string]any{"fields": verr.Fields}
	}

	if status >= http.StatusInternalServerError {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
			"status":     status,
		})
	}
	response.Fail(c, status, msg, details)
}
