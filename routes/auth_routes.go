package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillshare/skillshare_hub/handlers"
	"github.com/skillshare/skillshare_hub/middleware"
)

func AuthRoutes(app *fiber.App, h *handlers.Handler, auth *middleware.Auth) {
	api := app.Group("/api")

	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", h.Logout)
	api.Get("/auth/user", auth.Protected(), h.GetCurrentUser)
}
