package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillshare/skillshare_hub/handlers"
	"github.com/skillshare/skillshare_hub/middleware"
)

func BookingRoutes(app *fiber.App, h *handlers.Handler, auth *middleware.Auth) {
	api := app.Group("/api")

	bookings := api.Group("/bookings", auth.Protected())
	bookings.Get("", h.GetMyBookings)
	bookings.Delete("/:id", h.CancelBooking)
}
