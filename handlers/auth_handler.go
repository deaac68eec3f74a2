package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/skillshare/skillshare_hub/middleware"
	"github.com/skillshare/skillshare_hub/models"
	"github.com/skillshare/skillshare_hub/storage"
	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Username       string  `json:"username" validate:"required,min=3"`
	Password       string  `json:"password" validate:"required,min=6"`
	FirstName      string  `json:"firstName" validate:"required"`
	LastName       string  `json:"lastName" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Role           string  `json:"role" validate:"omitempty,oneof=teacher learner"`
	Specialization *string `json:"specialization,omitempty"`
	Experience     *int    `json:"experience,omitempty"`
	Bio            *string `json:"bio,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid registration data",
			"details": validationDetails(err),
		})
	}

	if _, err := h.store.GetUserByUsername(req.Username); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
	} else if !errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	role := req.Role
	if role == "" {
		role = models.RoleLearner
	}

	user, err := h.store.CreateUser(storage.CreateUserInput{
		Username:       req.Username,
		Password:       string(hashedPassword),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Role:           role,
		Specialization: req.Specialization,
		Experience:     req.Experience,
		Bio:            req.Bio,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	if err := h.logIn(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid login data",
			"details": validationDetails(err),
		})
	}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid username or password"})
	}

	if err := h.logIn(c, user); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
	}
	return c.JSON(user)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		_ = sess.Destroy()
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

func (h *Handler) GetCurrentUser(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

func (h *Handler) logIn(c *fiber.Ctx, user *models.User) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set("user_id", user.ID.String())
	return sess.Save()
}
