package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillshare/skillshare_hub/handlers"
	"github.com/skillshare/skillshare_hub/middleware"
)

func SessionRoutes(app *fiber.App, h *handlers.Handler, auth *middleware.Auth) {
	api := app.Group("/api")

	sessions := api.Group("/sessions", auth.Protected())
	// Static paths before the :id wildcard.
	sessions.Get("/recommended", h.GetRecommendedSessions)
	sessions.Get("/teaching", auth.TeacherRequired(), h.GetTeachingSessions)
	sessions.Get("", h.GetAllSessions)
	sessions.Get("/:id", h.GetSession)
	sessions.Post("", auth.TeacherRequired(), h.CreateSession)
	sessions.Patch("/:id", auth.TeacherRequired(), h.UpdateSession)
	sessions.Delete("/:id", auth.TeacherRequired(), h.DeleteSession)
	sessions.Post("/:id/book", auth.LearnerRequired(), h.BookSession)
}
