package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/reservation-service/internal/api/http/handlers"
	"github.com/spec-kit/reservation-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Facilities     *handlers.FacilitiesHandler
	Reservations   *handlers.ReservationsHandler
	Files          *handlers.FilesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)

	users := api.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Put("/profile", cfg.Users.UpdateProfile)
	users.Post("/avatar", cfg.Users.UploadAvatar)
	users.Put("/password", cfg.Auth.ChangePassword)

	usersAdmin := users.Group("", auth.RequireAdmin())
	usersAdmin.Get("/", cfg.Users.List)
	usersAdmin.Get("/username/:username", cfg.Users.GetByUsername)
	usersAdmin.Get("/:id", cfg.Users.GetByID)
	usersAdmin.Delete("/:id", cfg.Users.Delete)

	facilities := api.Group("/facilities", cfg.AuthMiddleware.Handle)
	facilities.Get("/", cfg.Facilities.List)
	facilities.Get("/search", cfg.Facilities.Search)
	facilities.Get("/:id", cfg.Facilities.GetByID)

	facilitiesAdmin := facilities.Group("", auth.RequireAdmin())
	facilitiesAdmin.Post("/", cfg.Facilities.Create)
	facilitiesAdmin.Put("/:id", cfg.Facilities.Update)
	facilitiesAdmin.Delete("/:id", cfg.Facilities.Delete)

	reservations := api.Group("/reservations", cfg.AuthMiddleware.Handle)
	reservations.Post("/", cfg.Reservations.Create)
	reservations.Get("/", cfg.Reservations.List)
	reservations.Get("/user/:id", cfg.Reservations.ListByUser)
	reservations.Get("/facility/:id", cfg.Reservations.ListByFacility)
	reservations.Get("/status/:status", cfg.Reservations.ListByStatus)
	reservations.Get("/:id", cfg.Reservations.GetByID)
	reservations.Patch("/:id/status", cfg.Reservations.UpdateStatus)
	reservations.Delete("/:id", cfg.Reservations.Delete)

	api.Get("/files/avatars/:filename", cfg.Files.GetAvatar)
}
