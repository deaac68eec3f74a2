package storage

import (
	"errors"

	"github.com/google/uuid"
	"github.com/skillshare/skillshare_hub/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStorage is the durable backend. It never stores an enrolled
// counter: the count is recomputed by aggregation on every read, so it cannot
// diverge from the bookings table. Seat-sensitive writes run inside a
// transaction holding a FOR UPDATE lock on the session row, which serializes
// concurrent bookings against the same session.
type PostgresStorage struct {
	db *gorm.DB
}

func NewPostgresStorage(db *gorm.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (s *PostgresStorage) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (s *PostgresStorage) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("LOWER(username) = LOWER(?)", username).First(&user).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &user, nil
}

func (s *PostgresStorage) CreateUser(input CreateUserInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleLearner
	}

	user := models.User{
		ID:             uuid.New(),
		Username:       input.Username,
		Password:       input.Password,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Role:           role,
		Specialization: input.Specialization,
		Experience:     input.Experience,
		Bio:            input.Bio,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStorage) GetAllSessions() ([]models.SessionView, error) {
	var sessions []models.Session
	if err := s.db.Order("created_at asc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return s.sessionViews(s.db, sessions)
}

func (s *PostgresStorage) GetSessionByID(id uuid.UUID) (*models.SessionView, error) {
	var session models.Session
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return s.sessionView(s.db, session)
}

func (s *PostgresStorage) GetSessionsByTeacherID(teacherID uuid.UUID) ([]models.SessionView, error) {
	var sessions []models.Session
	if err := s.db.Where("teacher_id = ?", teacherID).Order("created_at asc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return s.sessionViews(s.db, sessions)
}

func (s *PostgresStorage) GetRecommendedSessions(userID uuid.UUID) ([]models.SessionView, error) {
	var sessions []models.Session
	err := s.db.
		Where("id NOT IN (?)", s.db.Model(&models.Booking{}).Select("session_id").Where("learner_id = ?", userID)).
		Order("date asc").
		Order("created_at asc").
		Limit(3).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return s.sessionViews(s.db, sessions)
}

func (s *PostgresStorage) CreateSession(input CreateSessionInput) (*models.SessionView, error) {
	var teacher models.User
	if err := s.db.First(&teacher, "id = ?", input.TeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	session := models.Session{
		ID:            uuid.New(),
		Title:         input.Title,
		SkillCategory: input.SkillCategory,
		Description:   input.Description,
		Date:          input.Date,
		Duration:      input.Duration,
		Capacity:      input.Capacity,
		TeacherID:     input.TeacherID,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &models.SessionView{
		Session:       session,
		TeacherName:   teacher.DisplayName(),
		TeacherTitle:  teacher.Title(),
		EnrolledCount: 0,
	}, nil
}

func (s *PostgresStorage) UpdateSession(id uuid.UUID, input UpdateSessionInput) (*models.SessionView, error) {
	var session models.Session
	if err := s.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.SkillCategory != nil {
		updates["skill_category"] = *input.SkillCategory
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Duration != nil {
		updates["duration"] = *input.Duration
	}
	if input.Capacity != nil {
		updates["capacity"] = *input.Capacity
	}

	if len(updates) > 0 {
		if err := s.db.Model(&session).Updates(updates).Error; err != nil {
			return nil, err
		}
		if err := s.db.First(&session, "id = ?", id).Error; err != nil {
			return nil, mapNotFound(err)
		}
	}
	return s.sessionView(s.db, session)
}

func (s *PostgresStorage) DeleteSession(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", id).Error; err != nil {
			return mapNotFound(err)
		}

		// Cascade: bookings first, then the session itself.
		if err := tx.Where("session_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
}

func (s *PostgresStorage) GetSessionEnrollmentCount(sessionID uuid.UUID) (int, error) {
	return s.enrollmentCount(s.db, sessionID)
}

func (s *PostgresStorage) GetBookingByID(id uuid.UUID) (*models.BookingView, error) {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return s.bookingView(s.db, booking)
}

func (s *PostgresStorage) GetBookingsByUserID(learnerID uuid.UUID) ([]models.BookingView, error) {
	var bookings []models.Booking
	if err := s.db.Where("learner_id = ?", learnerID).Order("created_at asc").Find(&bookings).Error; err != nil {
		return nil, err
	}

	views := []models.BookingView{}
	for _, booking := range bookings {
		view, err := s.bookingView(s.db, booking)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *PostgresStorage) GetBookingBySessionAndLearner(sessionID, learnerID uuid.UUID) (*models.BookingView, error) {
	var booking models.Booking
	err := s.db.Where("session_id = ? AND learner_id = ?", sessionID, learnerID).First(&booking).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return s.bookingView(s.db, booking)
}

func (s *PostgresStorage) CreateBooking(input CreateBookingInput) (*models.BookingView, error) {
	status := input.Status
	if status == "" {
		status = models.BookingConfirmed
	}

	booking := models.Booking{
		ID:        uuid.New(),
		SessionID: input.SessionID,
		LearnerID: input.LearnerID,
		Status:    status,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", input.SessionID).Error; err != nil {
			return mapNotFound(err)
		}
		var learner models.User
		if err := tx.First(&learner, "id = ?", input.LearnerID).Error; err != nil {
			return mapNotFound(err)
		}

		var existing int64
		if err := tx.Model(&models.Booking{}).
			Where("session_id = ? AND learner_id = ?", input.SessionID, input.LearnerID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateBooking
		}

		enrolled, err := s.enrollmentCount(tx, input.SessionID)
		if err != nil {
			return err
		}
		if enrolled >= session.Capacity {
			return ErrCapacityExceeded
		}

		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetBookingByID(booking.ID)
}

func (s *PostgresStorage) DeleteBooking(id uuid.UUID) error {
	var booking models.Booking
	if err := s.db.First(&booking, "id = ?", id).Error; err != nil {
		return mapNotFound(err)
	}
	// No counter to decrement here: the enrolled count is derived from the
	// bookings table, so the delete is the whole story.
	return s.db.Delete(&booking).Error
}

func (s *PostgresStorage) enrollmentCount(tx *gorm.DB, sessionID uuid.UUID) (int, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("session_id = ? AND status = ?", sessionID, models.BookingConfirmed).
		Count(&count).Error
	return int(count), err
}

func (s *PostgresStorage) sessionView(tx *gorm.DB, session models.Session) (*models.SessionView, error) {
	view := models.SessionView{
		Session:      session,
		TeacherName:  "Unknown Teacher",
		TeacherTitle: "Teacher",
	}

	var teacher models.User
	err := tx.First(&teacher, "id = ?", session.TeacherID).Error
	if err == nil {
		view.TeacherName = teacher.DisplayName()
		view.TeacherTitle = teacher.Title()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrolled, err := s.enrollmentCount(tx, session.ID)
	if err != nil {
		return nil, err
	}
	view.EnrolledCount = enrolled
	return &view, nil
}

func (s *PostgresStorage) sessionViews(tx *gorm.DB, sessions []models.Session) ([]models.SessionView, error) {
	views := make([]models.SessionView, 0, len(sessions))
	for _, session := range sessions {
		view, err := s.sessionView(tx, session)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *PostgresStorage) bookingView(tx *gorm.DB, booking models.Booking) (*models.BookingView, error) {
	var session models.Session
	if err := tx.First(&session, "id = ?", booking.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrityViolation
		}
		return nil, err
	}
	var learner models.User
	if err := tx.First(&learner, "id = ?", booking.LearnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntegrityViolation
		}
		return nil, err
	}

	sessionView, err := s.sessionView(tx, session)
	if err != nil {
		return nil, err
	}
	return &models.BookingView{
		Booking: booking,
		Session: *sessionView,
		Learner: learner,
	}, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var _ Storage = (*PostgresStorage)(nil)
var _ Storage = (*MemoryStorage)(nil)
