package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPErrorHandler renders every error as {"error": message}. Server errors
// are logged and answered with a generic message.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		default:
			message = http.StatusText(code)
		}
		if he == echo.ErrNotFound || he == echo.ErrMethodNotAllowed {
			code = http.StatusNotFound
			message = "Route not found"
		}
	}

	if code >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
		)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Error: message})
	}
	if err != nil {
		h.Logger.Error("writing error response", zap.Error(err))
	}
}
