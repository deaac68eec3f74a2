package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingConfirmed  = "confirmed"
	BookingCancelled  = "cancelled"
	BookingWaitlisted = "waitlisted"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null" json:"sessionId"`
	LearnerID uuid.UUID `gorm:"type:uuid;not null" json:"learnerId"`
	Status    string    `gorm:"size:20;not null;default:'confirmed'" json:"status"`

	Learner User `gorm:"foreignkey:LearnerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingView embeds full snapshots of the booked session and the learner,
// matching what booking listings render.
type BookingView struct {
	Booking
	Session SessionView `json:"session"`
	Learner User        `json:"learner"`
}
