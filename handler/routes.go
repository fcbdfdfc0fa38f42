package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Routes mounts the API on e and installs the JSON error handler.
func (h *Handler) Routes(e *echo.Echo) {
	e.Pre(middleware.RemoveTrailingSlash())
	e.HTTPErrorHandler = h.HTTPErrorHandler

	api := e.Group("/api")
	api.GET("/health", h.Health)

	users := api.Group("/auth")
	users.POST("/register", h.Register)
	users.POST("/login", h.Login)

	guard := h.RequireAuth()
	posts := api.Group("/posts")
	posts.GET("", h.GetPosts)
	posts.GET("/:id", h.GetByID)
	posts.GET("/:id/html", h.GetPostHTML)
	posts.POST("", h.NewPost, guard...)
	posts.PUT("/:id", h.EditPost, guard...)
	posts.DELETE("/:id", h.DeletePost, guard...)
}
