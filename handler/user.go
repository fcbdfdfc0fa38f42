package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"miniblog/domain"
	"miniblog/store"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

var errInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username, email, and password are required")
	}
	username := strings.TrimSpace(req.Username)
	if utf8.RuneCountInString(username) < domain.MinUsernameLength {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Username must be at least %d characters long", domain.MinUsernameLength))
	}
	if !domain.ValidEmail(req.Email) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid email format")
	}
	if utf8.RuneCountInString(req.Password) < domain.MinPasswordLength {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters long", domain.MinPasswordLength))
	}
	if len(req.Password) > domain.MaxPasswordBytes {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Password must be at most %d bytes long", domain.MaxPasswordBytes))
	}
	email := domain.NormalizeEmail(req.Email)

	// Cheap rejection before paying for the hash. CreateUserIfAbsent repeats
	// the check atomically.
	if _, ok := h.Users.FindUserByEmail(email); ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	}
	if _, ok := h.Users.FindUserByUsername(username); ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Username already taken")
	}

	hashed, err := h.Passwords.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := h.Users.CreateUserIfAbsent(username, email, hashed)
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	case errors.Is(err, store.ErrUsernameTaken):
		return echo.NewHTTPError(http.StatusBadRequest, "Username already taken")
	case err != nil:
		return err
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}

	h.Logger.Info("user registered", zap.Int64("user_id", user.ID))
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    user.Public(),
	})
}

// Login answers unknown emails and wrong passwords with the same 401.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	invalid := echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	user, ok := h.Users.FindUserByEmail(domain.NormalizeEmail(req.Email))
	if !ok {
		return invalid
	}
	match, err := h.Passwords.Verify(req.Password, user.Password)
	if err != nil {
		return fmt.Errorf("verifying password for user %d: %w", user.ID, err)
	}
	if !match {
		return invalid
	}

	token, err := h.Tokens.Issue(user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}

	h.Logger.Info("user logged in", zap.Int64("user_id", user.ID))
	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.Public(),
	})
}
