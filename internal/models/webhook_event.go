package models

import "time"

// WebhookEvent logs every inbound gateway callback.
type WebhookEvent struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Provider        string     `gorm:"size:32;not null;index" json:"provider"`
	EventType       string     `gorm:"size:64;index" json:"event_type"`
	Reference       string     `gorm:"size:64;index" json:"reference"`
	Payload         string     `gorm:"type:text" json:"payload"`
	SignatureValid  bool       `json:"signature_valid"`
	ProcessedAt     *time.Time `json:"processed_at"`
	ProcessingError string     `gorm:"size:255" json:"processing_error"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (WebhookEvent) TableName() string {
	return "webhook_events"
}
