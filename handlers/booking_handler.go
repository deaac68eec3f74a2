package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillshare/skillshare_hub/middleware"
	"github.com/skillshare/skillshare_hub/models"
	"github.com/skillshare/skillshare_hub/storage"
)

func (h *Handler) GetMyBookings(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	bookings, err := h.store.GetBookingsByUserID(user.ID)
	if err != nil {
		log.Printf("failed to fetch bookings for %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

func (h *Handler) BookSession(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	booking, err := h.store.CreateBooking(storage.CreateBookingInput{
		SessionID: sessionID,
		LearnerID: user.ID,
		Status:    models.BookingConfirmed,
	})
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	case errors.Is(err, storage.ErrDuplicateBooking):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You have already booked this session"})
	case errors.Is(err, storage.ErrCapacityExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Session is full"})
	case err != nil:
		log.Printf("failed to book session %s: %v", sessionID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to book session"})
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.store.GetBookingByID(id)
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if err != nil {
		log.Printf("failed to load booking %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}
	if booking.LearnerID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized to cancel this booking"})
	}

	if err := h.store.DeleteBooking(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		log.Printf("failed to delete booking %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
