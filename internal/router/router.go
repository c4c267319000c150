package router

import (
	"github.com/anonto42/public-space/backend/internal/handlers"
	"github.com/anonto42/public-space/backend/internal/logger"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/anonto42/public-space/backend/internal/services"
	"github.com/anonto42/public-space/backend/pkg/config"
	"github.com/anonto42/public-space/backend/validators"
	"github.com/labstack/echo/v4"
)

var log = logger.New("router")

// Dependencies are the services the HTTP layer is wired to.
type Dependencies struct {
	Users    repositories.UserRepository
	Posts    *services.PostService
	Accounts *services.AccountService
	Seeder   *services.Seeder
	Tokens   *services.TokenIssuer
}

// New builds an echo instance with middleware, validator and all routes.
func New(cfg *config.Config, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger = logger.New("echo").Base()
	e.Validator = validators.NewValidator()

	config.SetupMiddleware(e, cfg)
	SetupRoutes(e, deps)
	return e
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	e.GET("/", handlers.Root)
	e.GET("/health", handlers.HealthCheck)

	seedHandler := handlers.NewSeedHandler(deps.Seeder)
	e.GET("/seed", seedHandler.Seed)

	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(deps.Accounts, deps.Users, deps.Tokens)
	authHandler.RegisterAuthRoutes(api)
	log.Info("auth routes configured", logger.Fields{"firebase": deps.Accounts.FirebaseEnabled()})

	postHandler := handlers.NewPostHandler(deps.Posts)
	postHandler.RegisterPostRoutes(api)

	friendshipHandler := handlers.NewFriendshipHandler(deps.Accounts)
	friendshipHandler.RegisterFriendshipRoutes(api)

	log.Info("all routes configured")
}
