package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skillshare/skillshare_hub/models"
)

// MemoryStorage keeps everything in process memory. It exists so the API can
// run without a live database during development and in tests. Unlike the
// Postgres backend it maintains the enrolled count as a denormalized counter,
// updated whenever a confirmed booking is created or deleted.
//
// A single mutex serializes every operation, so the capacity check and the
// booking insert can never interleave between two requests.
type MemoryStorage struct {
	mu sync.Mutex

	users    map[uuid.UUID]models.User
	sessions map[uuid.UUID]models.Session
	bookings map[uuid.UUID]models.Booking
	enrolled map[uuid.UUID]int

	sessionOrder []uuid.UUID
	bookingOrder []uuid.UUID
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[uuid.UUID]models.User),
		sessions: make(map[uuid.UUID]models.Session),
		bookings: make(map[uuid.UUID]models.Booking),
		enrolled: make(map[uuid.UUID]int),
	}
}

func (s *MemoryStorage) GetUser(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getUser(id)
}

func (s *MemoryStorage) getUser(id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStorage) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) CreateUser(input CreateUserInput) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

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
		CreatedAt:      time.Now(),
	}
	s.users[user.ID] = user
	return &user, nil
}

func (s *MemoryStorage) GetAllSessions() ([]models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]models.SessionView, 0, len(s.sessionOrder))
	for _, id := range s.sessionOrder {
		views = append(views, s.sessionView(s.sessions[id]))
	}
	return views, nil
}

func (s *MemoryStorage) GetSessionByID(id uuid.UUID) (*models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	view := s.sessionView(session)
	return &view, nil
}

func (s *MemoryStorage) GetSessionsByTeacherID(teacherID uuid.UUID) ([]models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := []models.SessionView{}
	for _, id := range s.sessionOrder {
		if session := s.sessions[id]; session.TeacherID == teacherID {
			views = append(views, s.sessionView(session))
		}
	}
	return views, nil
}

func (s *MemoryStorage) GetRecommendedSessions(userID uuid.UUID) ([]models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booked := make(map[uuid.UUID]bool)
	for _, booking := range s.bookings {
		if booking.LearnerID == userID {
			booked[booking.SessionID] = true
		}
	}

	views := []models.SessionView{}
	for _, id := range s.sessionOrder {
		if !booked[id] {
			views = append(views, s.sessionView(s.sessions[id]))
		}
	}

	// Soonest first; equal dates keep insertion order.
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date.Before(views[j].Date)
	})

	if len(views) > 3 {
		views = views[:3]
	}
	return views, nil
}

func (s *MemoryStorage) CreateSession(input CreateSessionInput) (*models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[input.TeacherID]; !ok {
		return nil, ErrTeacherNotFound
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
		CreatedAt:     time.Now(),
	}
	s.sessions[session.ID] = session
	s.sessionOrder = append(s.sessionOrder, session.ID)

	view := s.sessionView(session)
	return &view, nil
}

func (s *MemoryStorage) UpdateSession(id uuid.UUID, input UpdateSessionInput) (*models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}

	if input.Title != nil {
		session.Title = *input.Title
	}
	if input.SkillCategory != nil {
		session.SkillCategory = *input.SkillCategory
	}
	if input.Description != nil {
		session.Description = *input.Description
	}
	if input.Date != nil {
		session.Date = *input.Date
	}
	if input.Duration != nil {
		session.Duration = *input.Duration
	}
	if input.Capacity != nil {
		session.Capacity = *input.Capacity
	}
	s.sessions[id] = session

	view := s.sessionView(session)
	return &view, nil
}

func (s *MemoryStorage) DeleteSession(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}

	// Cascade: drop every booking on the session before the session itself.
	for _, bookingID := range s.bookingIDsForSession(id) {
		s.removeBooking(bookingID)
	}

	delete(s.sessions, id)
	delete(s.enrolled, id)
	s.sessionOrder = removeID(s.sessionOrder, id)
	return nil
}

func (s *MemoryStorage) GetSessionEnrollmentCount(sessionID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enrolled[sessionID], nil
}

func (s *MemoryStorage) GetBookingByID(id uuid.UUID) (*models.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.bookingView(booking)
}

func (s *MemoryStorage) GetBookingsByUserID(learnerID uuid.UUID) ([]models.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := []models.BookingView{}
	for _, id := range s.bookingOrder {
		booking := s.bookings[id]
		if booking.LearnerID != learnerID {
			continue
		}
		view, err := s.bookingView(booking)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *MemoryStorage) GetBookingBySessionAndLearner(sessionID, learnerID uuid.UUID) (*models.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.bookingOrder {
		booking := s.bookings[id]
		if booking.SessionID == sessionID && booking.LearnerID == learnerID {
			return s.bookingView(booking)
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStorage) CreateBooking(input CreateBookingInput) (*models.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[input.SessionID]
	if !ok {
		return nil, ErrNotFound
	}
	if _, ok := s.users[input.LearnerID]; !ok {
		return nil, ErrNotFound
	}

	for _, booking := range s.bookings {
		if booking.SessionID == input.SessionID && booking.LearnerID == input.LearnerID {
			return nil, ErrDuplicateBooking
		}
	}
	if s.enrolled[session.ID] >= session.Capacity {
		return nil, ErrCapacityExceeded
	}

	status := input.Status
	if status == "" {
		status = models.BookingConfirmed
	}

	booking := models.Booking{
		ID:        uuid.New(),
		SessionID: input.SessionID,
		LearnerID: input.LearnerID,
		Status:    status,
		CreatedAt: time.Now(),
	}
	s.bookings[booking.ID] = booking
	s.bookingOrder = append(s.bookingOrder, booking.ID)

	if status == models.BookingConfirmed {
		s.enrolled[session.ID]++
	}

	return s.bookingView(booking)
}

func (s *MemoryStorage) DeleteBooking(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return ErrNotFound
	}
	s.removeBooking(id)
	return nil
}

// removeBooking deletes the booking and reverses its effect on the owning
// session's enrolled counter. Callers must hold the mutex.
func (s *MemoryStorage) removeBooking(id uuid.UUID) {
	booking, ok := s.bookings[id]
	if !ok {
		return
	}
	if booking.Status == models.BookingConfirmed {
		if s.enrolled[booking.SessionID] > 0 {
			s.enrolled[booking.SessionID]--
		}
	}
	delete(s.bookings, id)
	s.bookingOrder = removeID(s.bookingOrder, id)
}

func (s *MemoryStorage) bookingIDsForSession(sessionID uuid.UUID) []uuid.UUID {
	ids := []uuid.UUID{}
	for _, id := range s.bookingOrder {
		if s.bookings[id].SessionID == sessionID {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *MemoryStorage) sessionView(session models.Session) models.SessionView {
	view := models.SessionView{
		Session:       session,
		TeacherName:   "Unknown Teacher",
		TeacherTitle:  "Teacher",
		EnrolledCount: s.enrolled[session.ID],
	}
	if teacher, ok := s.users[session.TeacherID]; ok {
		view.TeacherName = teacher.DisplayName()
		view.TeacherTitle = teacher.Title()
	}
	return view
}

func (s *MemoryStorage) bookingView(booking models.Booking) (*models.BookingView, error) {
	session, ok := s.sessions[booking.SessionID]
	if !ok {
		return nil, ErrIntegrityViolation
	}
	learner, ok := s.users[booking.LearnerID]
	if !ok {
		return nil, ErrIntegrityViolation
	}
	return &models.BookingView{
		Booking: booking,
		Session: s.sessionView(session),
		Learner: learner,
	}, nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, candidate := range ids {
		if candidate == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
