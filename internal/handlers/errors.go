package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/public-space/backend/internal/logger"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/anonto42/public-space/backend/internal/services"
	"github.com/labstack/echo/v4"
)

var log = logger.New("handlers")

// toHTTPError maps service and repository errors to status codes.
// notFound is the message used for repositories.ErrNotFound.
func toHTTPError(err error, notFound string) *echo.HTTPError {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, services.ErrQuotaExceeded):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrDuplicateIdentity), errors.Is(err, services.ErrInvalidFriend):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrRateLimited):
		return echo.NewHTTPError(http.StatusTooManyRequests, err.Error())
	}
	log.Error("request failed", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Server Error").SetInternal(err)
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
