package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillshare/skillshare_hub/middleware"
	"github.com/skillshare/skillshare_hub/storage"
)

type CreateSessionRequest struct {
	Title         string  `json:"title" validate:"required,min=5"`
	SkillCategory string  `json:"skillCategory" validate:"required"`
	Description   string  `json:"description" validate:"required,min=10"`
	Date          string  `json:"date" validate:"required"`
	Duration      float64 `json:"duration" validate:"required,min=0.5"`
	Capacity      int     `json:"capacity" validate:"required,min=1"`
}

type UpdateSessionRequest struct {
	Title         *string  `json:"title" validate:"omitempty,min=5"`
	SkillCategory *string  `json:"skillCategory" validate:"omitempty,min=1"`
	Description   *string  `json:"description" validate:"omitempty,min=10"`
	Date          *string  `json:"date"`
	Duration      *float64 `json:"duration" validate:"omitempty,min=0.5"`
	Capacity      *int     `json:"capacity" validate:"omitempty,min=1"`
}

func (h *Handler) GetAllSessions(c *fiber.Ctx) error {
	sessions, err := h.store.GetAllSessions()
	if err != nil {
		log.Printf("failed to fetch sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch sessions"})
	}
	return c.JSON(sessions)
}

func (h *Handler) GetRecommendedSessions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	sessions, err := h.store.GetRecommendedSessions(user.ID)
	if err != nil {
		log.Printf("failed to fetch recommended sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch recommended sessions"})
	}
	return c.JSON(sessions)
}

func (h *Handler) GetTeachingSessions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	sessions, err := h.store.GetSessionsByTeacherID(user.ID)
	if err != nil {
		log.Printf("failed to fetch teaching sessions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch teacher sessions"})
	}
	return c.JSON(sessions)
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	session, err := h.store.GetSessionByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch session"})
	}
	return c.JSON(session)
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid session data",
			"details": validationDetails(err),
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid session data",
			"details": map[string]string{"date": "Invalid date format. Please use ISO format (YYYY-MM-DD or with time component)."},
		})
	}

	session, err := h.store.CreateSession(storage.CreateSessionInput{
		Title:         req.Title,
		SkillCategory: req.SkillCategory,
		Description:   req.Description,
		Date:          date,
		Duration:      req.Duration,
		Capacity:      req.Capacity,
		TeacherID:     user.ID,
	})
	if errors.Is(err, storage.ErrTeacherNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	if err != nil {
		log.Printf("failed to create session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *Handler) UpdateSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	existing, err := h.store.GetSessionByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update session"})
	}
	if existing.TeacherID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to update this session"})
	}

	var req UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid session data",
			"details": validationDetails(err),
		})
	}

	input := storage.UpdateSessionInput{
		Title:         req.Title,
		SkillCategory: req.SkillCategory,
		Description:   req.Description,
		Duration:      req.Duration,
		Capacity:      req.Capacity,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "Invalid session data",
				"details": map[string]string{"date": "Invalid date format. Please use ISO format (YYYY-MM-DD or with time component)."},
			})
		}
		input.Date = &date
	}

	session, err := h.store.UpdateSession(id, input)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if err != nil {
		log.Printf("failed to update session %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update session"})
	}
	return c.JSON(session)
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	existing, err := h.store.GetSessionByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete session"})
	}
	if existing.TeacherID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to delete this session"})
	}

	if err := h.store.DeleteSession(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		}
		log.Printf("failed to delete session %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete session"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
