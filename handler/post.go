package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"miniblog/domain"
	"miniblog/store"
)

// optionalString tells a missing key apart from an explicit null.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// present reports a non-null, non-empty value.
func (o optionalString) present() bool {
	return o.Value != nil && *o.Value != ""
}

type postRequest struct {
	Title   optionalString `json:"title"`
	Content optionalString `json:"content"`
}

type postResponse struct {
	Message string      `json:"message,omitempty"`
	Post    domain.Post `json:"post"`
}

type pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalPosts  int `json:"total_posts"`
	Limit       int `json:"limit"`
}

type postListResponse struct {
	Posts      []domain.Post `json:"posts"`
	Pagination pagination    `json:"pagination"`
}

var errPostNotFound = echo.NewHTTPError(http.StatusNotFound, "Post not found")

func (h *Handler) GetPosts(c echo.Context) error {
	page, limit := store.DefaultPage, store.DefaultLimit
	var search string
	err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		String("search", &search).
		BindError()
	if err != nil || page < 1 || limit < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "Page and limit must be positive numbers")
	}

	result := h.Posts.GetAllPosts(store.ListOptions{
		Page:   page,
		Limit:  limit,
		Search: search,
	})

	return c.JSON(http.StatusOK, postListResponse{
		Posts: result.Posts,
		Pagination: pagination{
			CurrentPage: result.Page,
			TotalPages:  result.TotalPages,
			TotalPosts:  result.Total,
			Limit:       result.Limit,
		},
	})
}

func (h *Handler) GetByID(c echo.Context) error {
	p, err := h.findPost(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Post: p})
}

func (h *Handler) NewPost(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	if !req.Title.present() || !req.Content.present() {
		return echo.NewHTTPError(http.StatusBadRequest, "Title and content are required")
	}
	title, content := strings.TrimSpace(*req.Title.Value), strings.TrimSpace(*req.Content.Value)
	if title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Title cannot be empty")
	}
	if content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Content cannot be empty")
	}

	p := h.Posts.CreatePost(title, content, user.ID)
	h.Logger.Info("post created", zap.Int64("post_id", p.ID), zap.Int64("user_id", user.ID))
	return c.JSON(http.StatusCreated, postResponse{
		Message: "Post created successfully",
		Post:    p,
	})
}

func (h *Handler) EditPost(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	p, err := h.findPost(c)
	if err != nil {
		return err
	}
	if p.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own posts")
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	var patch domain.PostPatch
	if req.Title.Set {
		var title string
		if req.Title.Value != nil {
			title = strings.TrimSpace(*req.Title.Value)
		}
		if title == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Title cannot be empty")
		}
		patch.Title = &title
	}
	if req.Content.Set {
		var content string
		if req.Content.Value != nil {
			content = strings.TrimSpace(*req.Content.Value)
		}
		if content == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Content cannot be empty")
		}
		patch.Content = &content
	}

	updated, ok := h.Posts.UpdatePost(p.ID, patch)
	if !ok {
		return errPostNotFound
	}
	h.Logger.Info("post updated", zap.Int64("post_id", p.ID), zap.Int64("user_id", user.ID))
	return c.JSON(http.StatusOK, postResponse{
		Message: "Post updated successfully",
		Post:    updated,
	})
}

func (h *Handler) DeletePost(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
	}

	p, err := h.findPost(c)
	if err != nil {
		return err
	}
	if p.UserID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own posts")
	}

	if !h.Posts.DeletePost(p.ID) {
		return errPostNotFound
	}
	h.Logger.Info("post deleted", zap.Int64("post_id", p.ID), zap.Int64("user_id", user.ID))
	return c.JSON(http.StatusOK, messageResponse{Message: "Post deleted successfully"})
}

// findPost loads the post named by the :id path parameter. Ids that do not
// parse are reported as missing posts.
func (h *Handler) findPost(c echo.Context) (domain.Post, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.Post{}, errPostNotFound
	}
	p, ok := h.Posts.GetPostByID(id)
	if !ok {
		return domain.Post{}, errPostNotFound
	}
	return p, nil
}
