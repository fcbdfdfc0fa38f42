package handler

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"miniblog/auth"
	"miniblog/domain"
)

const (
	claimsContextKey = "claims"
	userContextKey   = "user"
)

// RequireAuth returns the chain guarding protected routes. A request without
// a bearer token gets 401, a bad or expired token 403, and a token whose user
// is gone 403. Otherwise the user is stored in the context.
func (h *Handler) RequireAuth() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		requireBearer,
		echojwt.WithConfig(echojwt.Config{
			ContextKey:  claimsContextKey,
			TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
			ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
				return h.Tokens.Verify(raw)
			},
			ErrorHandler: func(c echo.Context, err error) error {
				h.Logger.Debug("token rejected", zap.Error(err))
				return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
			},
		}),
		h.resolveUser,
	}
}

func requireBearer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		_, token, _ := strings.Cut(header, " ")
		if strings.TrimSpace(token) == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
		}
		return next(c)
	}
}

func (h *Handler) resolveUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsContextKey).(*auth.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusForbidden, "Invalid or expired token")
		}
		user, ok := h.Users.FindUserByID(claims.UserID)
		if !ok {
			return echo.NewHTTPError(http.StatusForbidden, "User not found")
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

func currentUser(c echo.Context) (domain.User, bool) {
	u, ok := c.Get(userContextKey).(domain.User)
	return u, ok
}
