package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Attendee struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	RegistrationID *string   `gorm:"uniqueIndex;size:20" json:"registration_id"` // set once, after the first successful payment
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	Email          string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone          string    `gorm:"size:15;not null" json:"phone"`
	Department     string    `gorm:"size:100;not null" json:"department"`
	LevelOfStudy   int       `gorm:"not null" json:"level_of_study"`
	Category       string    `gorm:"size:20;not null" json:"category"`
	Paid           bool      `gorm:"not null;default:false;index" json:"paid"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Attendee) TableName() string {
	return "attendees"
}

func (a *Attendee) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Attendee) FullName() string {
	return a.FirstName + " " + a.LastName
}

// Registered reports whether a registration ID has been issued.
func (a *Attendee) Registered() bool {
	return a.RegistrationID != nil && *a.RegistrationID != ""
}
