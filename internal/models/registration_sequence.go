package models

import "time"

// RegistrationSequence is the row-locked counter behind registration IDs.
type RegistrationSequence struct {
	Prefix    string    `gorm:"primaryKey;size:16" json:"prefix"`
	LastValue string    `gorm:"size:20;not null;default:''" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RegistrationSequence) TableName() string {
	return "registration_sequences"
}
