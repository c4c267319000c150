package handlers

import (
	"net/http"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/labstack/echo/v4"
)

func (h *PostHandler) AddComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.posts.AddComment(c.Request().Context(), c.Param("id"), req.UserName, req.Text); err != nil {
		return toHTTPError(err, postNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
