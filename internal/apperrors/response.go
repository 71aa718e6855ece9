package apperrors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var kindStatus = map[Kind]int{
	Internal:         http.StatusInternalServerError,
	Unauthorized:     http.StatusUnauthorized,
	Forbidden:        http.StatusForbidden,
	NotFound:         http.StatusNotFound,
	Conflict:         http.StatusConflict,
	InvalidOperation: http.StatusUnprocessableEntity,
	ValidationFailed: http.StatusUnprocessableEntity,
}

// ErrorResponse is the JSON body rendered for every failure.
type ErrorResponse struct {
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewHTTPErrorHandler builds the central echo error handler. AppErrors render
// their kind and message; echo's own errors (404 route, bind failures) pass
// through; anything else becomes an opaque 500.
func NewHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == Internal {
				log.Error("internal error",
					zap.String("path", c.Path()),
					zap.Error(err),
				)
			}
			_ = c.JSON(HTTPStatus(appErr.Kind), ErrorResponse{
				Kind:    appErr.Kind.String(),
				Message: appErr.Message,
				Fields:  appErr.Fields,
			})
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			msg, ok := httpErr.Message.(string)
			if !ok {
				msg = http.StatusText(httpErr.Code)
			}
			_ = c.JSON(httpErr.Code, ErrorResponse{
				Kind:    kindForStatus(httpErr.Code),
				Message: msg,
			})
			return
		}

		log.Error("unhandled error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
			Kind:    Internal.String(),
			Message: "internal server error",
		})
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return Unauthorized.String()
	case http.StatusForbidden:
		return Forbidden.String()
	case http.StatusNotFound:
		return NotFound.String()
	case http.StatusConflict:
		return Conflict.String()
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ValidationFailed.String()
	default:
		return Internal.String()
	}
}
