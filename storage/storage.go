package storage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/skillshare/skillshare_hub/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrTeacherNotFound is returned by CreateSession when the teacher id
	// does not reference an existing user.
	ErrTeacherNotFound = errors.New("teacher not found")
	// ErrDuplicateBooking is returned when the learner already holds a
	// booking for the session.
	ErrDuplicateBooking = errors.New("session already booked by this learner")
	// ErrCapacityExceeded is returned when the session has no free seats.
	ErrCapacityExceeded = errors.New("session is full")
	// ErrIntegrityViolation is returned when a stored booking references a
	// session or learner that no longer exists.
	ErrIntegrityViolation = errors.New("booking references a missing record")
)

type CreateUserInput struct {
	Username       string
	Password       string
	FirstName      string
	LastName       string
	Email          string
	Role           string
	Specialization *string
	Experience     *int
	Bio            *string
}

type CreateSessionInput struct {
	Title         string
	SkillCategory string
	Description   string
	Date          time.Time
	Duration      float64
	Capacity      int
	TeacherID     uuid.UUID
}

// UpdateSessionInput carries a partial update: nil fields are left untouched.
type UpdateSessionInput struct {
	Title         *string
	SkillCategory *string
	Description   *string
	Date          *time.Time
	Duration      *float64
	Capacity      *int
}

type CreateBookingInput struct {
	SessionID uuid.UUID
	LearnerID uuid.UUID
	Status    string
}

// Storage is the persistence contract shared by the Postgres and in-memory
// backends. Both must behave identically at this boundary; they differ only
// in whether the enrolled count is cached (memory) or derived (Postgres).
type Storage interface {
	GetUser(id uuid.UUID) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(input CreateUserInput) (*models.User, error)

	GetAllSessions() ([]models.SessionView, error)
	GetSessionByID(id uuid.UUID) (*models.SessionView, error)
	GetSessionsByTeacherID(teacherID uuid.UUID) ([]models.SessionView, error)
	GetRecommendedSessions(userID uuid.UUID) ([]models.SessionView, error)
	CreateSession(input CreateSessionInput) (*models.SessionView, error)
	UpdateSession(id uuid.UUID, input UpdateSessionInput) (*models.SessionView, error)
	DeleteSession(id uuid.UUID) error
	GetSessionEnrollmentCount(sessionID uuid.UUID) (int, error)

	GetBookingByID(id uuid.UUID) (*models.BookingView, error)
	GetBookingsByUserID(learnerID uuid.UUID) ([]models.BookingView, error)
	GetBookingBySessionAndLearner(sessionID, learnerID uuid.UUID) (*models.BookingView, error)
	CreateBooking(input CreateBookingInput) (*models.BookingView, error)
	DeleteBooking(id uuid.UUID) error
}
