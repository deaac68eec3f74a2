package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTeacher = "teacher"
	RoleLearner = "learner"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username  string    `gorm:"size:100;not null;unique" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"size:100;not null" json:"firstName"`
	LastName  string    `gorm:"size:100;not null" json:"lastName"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Role      string    `gorm:"size:20;not null;default:'learner'" json:"role"`

	Specialization *string `gorm:"size:255" json:"specialization"`
	Experience     *int    `json:"experience"`
	Bio            *string `gorm:"type:text" json:"bio"`

	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName is what session listings show as the teacher's name.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Title is the teacher's headline shown next to their name. Users without
// a specialization fall back to a generic label.
func (u *User) Title() string {
	if u.Specialization != nil && *u.Specialization != "" {
		return *u.Specialization
	}
	return "Teacher"
}
