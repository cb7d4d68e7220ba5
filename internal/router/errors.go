package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
)

var statusCodes = map[int]string{
	http.StatusBadRequest:            "BAD_REQUEST",
	http.StatusUnauthorized:          "UNAUTHORIZED",
	http.StatusForbidden:             "FORBIDDEN",
	http.StatusNotFound:              "NOT_FOUND",
	http.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	http.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	http.StatusUnsupportedMediaType:  "UNSUPPORTED_MEDIA_TYPE",
	http.StatusServiceUnavailable:    "UNAVAILABLE",
}

// ErrorHandler renders every error as an apperrors.ErrorResponse. 5xx bodies
// are always generic; the cause is logged instead.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := http.StatusInternalServerError, internalError()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body = apperrors.ErrorResponse{Error: msg, Code: codeFor(status)}
			default:
				body = apperrors.ErrorResponse{Error: http.StatusText(status), Code: codeFor(status)}
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", status,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
			if status == http.StatusInternalServerError {
				body = internalError()
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}

func internalError() apperrors.ErrorResponse {
	return apperrors.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}
}

func codeFor(status int) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return "HTTP_ERROR"
}
