package models

import "time"

// EventPayment is a registration fee payment attempt owned by an attendee.
type EventPayment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	AttendeeID  string     `gorm:"size:36;not null;index" json:"attendee_id"`
	Reference   string     `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	Status      string     `gorm:"size:20;not null;index" json:"status"` // initialized, success, failed
	AmountMinor int64      `gorm:"not null;default:0" json:"amount_minor"`
	Message     string     `gorm:"size:255" json:"message"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Attendee *Attendee `gorm:"foreignKey:AttendeeID" json:"attendee,omitempty"`
}

func (EventPayment) TableName() string {
	return "event_payments"
}

// Donation is a donation payment attempt owned by a donor.
type Donation struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DonorID     uint       `gorm:"not null;index" json:"donor_id"`
	Reference   string     `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	Status      string     `gorm:"size:20;not null;index" json:"status"`
	AmountMinor int64      `gorm:"not null;default:0" json:"amount_minor"`
	Message     string     `gorm:"size:255" json:"message"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Donor *Donor `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
}

func (Donation) TableName() string {
	return "donations"
}
