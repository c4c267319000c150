package handlers

import (
	"net/http"

	"github.com/anonto42/public-space/backend/internal/middleware"
	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/anonto42/public-space/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.AccountService
	users    repositories.UserRepository
	tokens   middleware.TokenParser
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *services.AccountService, users repositories.UserRepository, tokens middleware.TokenParser) *AuthHandler {
	return &AuthHandler{accounts: accounts, users: users, tokens: tokens}
}

// RegisterAuthRoutes registers authentication-related routes. Firebase
// login is only mounted when a verifier is configured.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/forgot-password", h.ForgotPassword)
	if h.accounts.FirebaseEnabled() {
		g.POST("/firebase-login", h.FirebaseLogin)
	}
	g.GET("/me", h.Me, middleware.JWTAuthMiddleware(h.tokens))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.accounts.Register(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.accounts.Login(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, res)
}

// ForgotPassword resets the password and returns the new one in the body.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	password, err := h.accounts.ForgotPassword(c.Request().Context(), req.Identifier)
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Password reset successful",
		"newPassword": password,
	})
}

// FirebaseLogin handles Firebase ID token verification and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.accounts.FirebaseLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, res)
}

// Me returns the user behind the session token.
func (h *AuthHandler) Me(c echo.Context) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	user, err := h.users.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, models.AuthResponse{UserID: user.ID, Name: user.Name})
}
