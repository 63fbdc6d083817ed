package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anonto42/publication-scheduler/backend/internal/apperrors"
	"github.com/anonto42/publication-scheduler/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// HTTPErrorHandler renders domain errors with their status and hides anything
// else behind a logged 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, message := resolveError(err)
	entry := logger.WithContext(c.Request().Context()).WithField("module", "http")
	if code >= http.StatusInternalServerError {
		entry.WithError(err).Errorf("%s %s failed", c.Request().Method, c.Path())
	} else if kind := apperrors.KindOf(err); kind != "" {
		entry.WithField("kind", kind).Debug(message)
	}

	body := ErrorResponse{StatusCode: code, Message: message, Error: http.StatusText(code)}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		logger.WithModule("http").WithError(err).Error("failed to write error response")
	}
}

func resolveError(err error) (int, string) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return apperrors.StatusCode(err), appErr.Message
	}

	var bindErr *echo.BindingError
	if errors.As(err, &bindErr) {
		return bindErr.Code, fmt.Sprint(bindErr.Message)
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Internal != nil {
			if code, message := resolveError(httpErr.Internal); code < http.StatusInternalServerError {
				return code, message
			}
		}
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	return http.StatusInternalServerError, "Internal server error"
}

// parseID reads the :id path parameter
func parseID(c echo.Context, resource string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid %s ID", resource))
	}
	return uint(id), nil
}

// bindAndValidate binds the request body into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
