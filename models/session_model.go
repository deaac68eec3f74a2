package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	SkillCategory string    `gorm:"size:100;not null" json:"skillCategory"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Date          time.Time `gorm:"not null" json:"date"`
	Duration      float64   `gorm:"not null" json:"duration"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	TeacherID     uuid.UUID `gorm:"type:uuid;not null" json:"teacherId"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// SessionView is the read form of a Session: the stored record plus the
// teacher's display fields and the live count of confirmed bookings.
// It is computed per read and never persisted.
type SessionView struct {
	Session
	TeacherName   string `json:"teacherName"`
	TeacherTitle  string `json:"teacherTitle"`
	EnrolledCount int    `json:"enrolledCount"`
}
