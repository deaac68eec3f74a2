package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/skillshare/skillshare_hub/models"
	"github.com/skillshare/skillshare_hub/storage"
)

const userIDKey = "user_id"

type Auth struct {
	sessions *session.Store
	store    storage.Storage
}

func NewAuth(sessions *session.Store, store storage.Storage) *Auth {
	return &Auth{sessions: sessions, store: store}
}

// Protected resolves the session cookie to a full user record and stores it
// in the request locals. Requests without a live session get a 401.
func (a *Auth) Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := a.resolveUser(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated"})
		}
		c.Locals("user", user)
		return c.Next()
	}
}

func (a *Auth) TeacherRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c).Role != models.RoleTeacher {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized as teacher"})
		}
		return c.Next()
	}
}

func (a *Auth) LearnerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c).Role != models.RoleLearner {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only learners can book sessions"})
		}
		return c.Next()
	}
}

// CurrentUser returns the principal set by Protected. Only valid on routes
// behind that middleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}

func (a *Auth) resolveUser(c *fiber.Ctx) (*models.User, error) {
	sess, err := a.sessions.Get(c)
	if err != nil {
		return nil, err
	}

	raw, ok := sess.Get(userIDKey).(string)
	if !ok || raw == "" {
		return nil, storage.ErrNotFound
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return a.store.GetUser(id)
}
