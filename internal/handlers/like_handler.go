package handlers

import (
	"net/http"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// ToggleLike likes the post for userId, or unlikes it if already liked.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	var req models.LikeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.posts.ToggleLike(c.Request().Context(), c.Param("id"), req.UserID)
	if err != nil {
		return toHTTPError(err, postNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"liked":   res.Liked,
		"likes":   res.Likes,
	})
}
