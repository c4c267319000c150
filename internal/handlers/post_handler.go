package handlers

import (
	"net/http"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/services"
	"github.com/labstack/echo/v4"
)

const postNotFound = "Post not found"

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
	g.POST("/posts/:id/comment", h.AddComment)
	g.GET("/user-status/:userId", h.GetUserStatus)
}

// GetPosts returns the feed, newest first.
func (h *PostHandler) GetPosts(c echo.Context) error {
	feed, err := h.posts.ListFeed(c.Request().Context())
	if err != nil {
		return toHTTPError(err, postNotFound)
	}
	return c.JSON(http.StatusOK, feed)
}

// CreatePost creates a new post if the author's daily quota allows it
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.CreatePost(c.Request().Context(), req.UserID, req.Caption)
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post by ID. Unknown ids succeed.
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.posts.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return toHTTPError(err, postNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

func (h *PostHandler) GetUserStatus(c echo.Context) error {
	status, err := h.posts.GetStatus(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, status)
}
