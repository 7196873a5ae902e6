package models

import "time"

// Notification is one outbound email delivery attempt.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:50;not null;index" json:"kind"`
	Recipient string    `gorm:"size:255;not null;index" json:"recipient"`
	Subject   string    `gorm:"size:255" json:"subject"`
	Status    string    `gorm:"size:20;not null;index" json:"status"` // sent, failed
	Error     string    `gorm:"size:512" json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
