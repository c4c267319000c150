package handlers

import (
	"net/http"

	"github.com/anonto42/public-space/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SeedHandler resets the stores to demo data.
type SeedHandler struct {
	seeder *services.Seeder
}

func NewSeedHandler(seeder *services.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

func (h *SeedHandler) Seed(c echo.Context) error {
	userID, err := h.seeder.Seed(c.Request().Context())
	if err != nil {
		return toHTTPError(err, "User not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"userId": userID, "status": "Seeded"})
}
