package handlers

import (
	"net/http"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friend references
type FriendshipHandler struct {
	accounts *services.AccountService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(accounts *services.AccountService) *FriendshipHandler {
	return &FriendshipHandler{accounts: accounts}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/users/:userId/friends", h.AddFriend)
	g.GET("/users/:userId/friends", h.GetFriends)
}

func (h *FriendshipHandler) AddFriend(c echo.Context) error {
	var req models.AddFriendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	count, err := h.accounts.AddFriend(c.Request().Context(), c.Param("userId"), req.FriendID)
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"friendCount": count})
}

func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	ids, err := h.accounts.ListFriends(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"friends": ids})
}
