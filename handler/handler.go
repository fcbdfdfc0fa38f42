package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"miniblog/auth"
	"miniblog/store"
)

type Handler struct {
	Users     *store.UserStore
	Posts     *store.PostStore
	Passwords *auth.PasswordHasher
	Tokens    *auth.TokenService
	Logger    *zap.Logger
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Mini Blog API is running",
	})
}

type messageResponse struct {
	Message string `json:"message"`
}
