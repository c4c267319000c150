package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "public-space-api",
	})
}

func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "Public Space API is Live",
		"message": "Post, like and comment within your daily quota",
	})
}
