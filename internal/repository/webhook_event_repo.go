package repository

import (
	"context"
	"time"

	"eventreg/internal/models"

	"gorm.io/gorm"
)

type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

func (r *WebhookEventRepository) Create(ctx context.Context, e *models.WebhookEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// MarkProcessed stamps the event with its outcome. An empty procErr means success.
func (r *WebhookEventRepository) MarkProcessed(ctx context.Context, id uint, procErr string) error {
	if len(procErr) > 255 {
		procErr = procErr[:255]
	}
	return r.db.WithContext(ctx).Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"processed_at":     time.Now(),
		"processing_error": procErr,
	}).Error
}

func (r *WebhookEventRepository) ListByReference(ctx context.Context, ref string) ([]models.WebhookEvent, error) {
	var list []models.WebhookEvent
	err := r.db.WithContext(ctx).Where("reference = ?", ref).Order("id ASC").Find(&list).Error
	return list, err
}
