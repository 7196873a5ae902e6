package repository

import (
	"context"

	"eventreg/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *AttendeeRepository) WithTx(tx *gorm.DB) *AttendeeRepository {
	return &AttendeeRepository{db: tx}
}

func (r *AttendeeRepository) Create(ctx context.Context, a *models.Attendee) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AttendeeRepository) GetByID(ctx context.Context, id string) (*models.Attendee, error) {
	var a models.Attendee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendeeRepository) GetByRegistrationID(ctx context.Context, regID string) (*models.Attendee, error) {
	var a models.Attendee
	if err := r.db.WithContext(ctx).Where("registration_id = ?", regID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendeeRepository) GetByEmail(ctx context.Context, email string) (*models.Attendee, error) {
	var a models.Attendee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByEmailForUpdate locks the attendee row until the surrounding transaction ends.
func (r *AttendeeRepository) GetByEmailForUpdate(ctx context.Context, email string) (*models.Attendee, error) {
	var a models.Attendee
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("email = ?", email).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttendeeRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Attendee, error) {
	var a models.Attendee
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// LastRegistrationID returns the greatest issued registration ID, or "" when none exists.
func (r *AttendeeRepository) LastRegistrationID(ctx context.Context) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Attendee{}).
		Where("registration_id IS NOT NULL AND registration_id <> ''").
		Order("registration_id DESC").Limit(1).Pluck("registration_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[0], nil
}

func (r *AttendeeRepository) Update(ctx context.Context, a *models.Attendee) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AttendeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Attendee{}).Count(&n).Error
	return n, err
}
