package repository

import (
	"context"
	"errors"

	"eventreg/internal/domain"
	"eventreg/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaymentRepository stores both payment record variants: event payments and donations.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) GetEventPaymentByReference(ctx context.Context, ref string) (*models.EventPayment, error) {
	var p models.EventPayment
	if err := r.db.WithContext(ctx).Where("reference = ?", ref).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetEventPaymentForUpdate(ctx context.Context, ref string) (*models.EventPayment, error) {
	var p models.EventPayment
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reference = ?", ref).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetEventPaymentByID(ctx context.Context, id uint) (*models.EventPayment, error) {
	var p models.EventPayment
	if err := r.db.WithContext(ctx).Preload("Attendee").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertEventPayment creates the record for p.Reference, or resets an existing
// one to p's status and amount. A record that already succeeded is left as is
// and ok is false.
func (r *PaymentRepository) UpsertEventPayment(ctx context.Context, p *models.EventPayment) (ok bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.WithTx(tx).GetEventPaymentForUpdate(ctx, p.Reference)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ok = true
			return tx.Create(p).Error
		}
		if err != nil {
			return err
		}
		if existing.Status == domain.PaymentSuccess {
			return nil
		}
		existing.Status, existing.AmountMinor, existing.Message = p.Status, p.AmountMinor, p.Message
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		*p = *existing
		ok = true
		return nil
	})
	return ok, err
}

func (r *PaymentRepository) UpdateEventPayment(ctx context.Context, p *models.EventPayment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) ListEventPayments(ctx context.Context, status string, page, limit int) ([]models.EventPayment, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.EventPayment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.EventPayment
	err := q.Preload("Attendee").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func (r *PaymentRepository) GetDonationByReference(ctx context.Context, ref string) (*models.Donation, error) {
	var d models.Donation
	if err := r.db.WithContext(ctx).Where("reference = ?", ref).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PaymentRepository) GetDonationForUpdate(ctx context.Context, ref string) (*models.Donation, error) {
	var d models.Donation
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("reference = ?", ref).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UpsertDonation is UpsertEventPayment for donations.
func (r *PaymentRepository) UpsertDonation(ctx context.Context, d *models.Donation) (ok bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.WithTx(tx).GetDonationForUpdate(ctx, d.Reference)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ok = true
			return tx.Create(d).Error
		}
		if err != nil {
			return err
		}
		if existing.Status == domain.PaymentSuccess {
			return nil
		}
		existing.Status, existing.AmountMinor, existing.Message = d.Status, d.AmountMinor, d.Message
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		*d = *existing
		ok = true
		return nil
	})
	return ok, err
}

func (r *PaymentRepository) UpdateDonation(ctx context.Context, d *models.Donation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *PaymentRepository) ListDonations(ctx context.Context, status string, page, limit int) ([]models.Donation, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Donation{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Donation
	err := q.Preload("Donor").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
