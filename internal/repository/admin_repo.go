package repository

import (
	"context"

	"eventreg/internal/domain"
	"eventreg/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalAttendees      int64 `json:"total_attendees"`
	PaidAttendees       int64 `json:"paid_attendees"`
	PendingAttendees    int64 `json:"pending_attendees"`
	TotalDonors         int64 `json:"total_donors"`
	RegistrationRevenue int64 `json:"registration_revenue_minor"`
	DonationRevenue     int64 `json:"donation_revenue_minor"`
	FailedPayments      int64 `json:"failed_payments"`
	FailedNotifications int64 `json:"failed_notifications"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := r.db.WithContext(ctx)
	var s DashboardStats
	counts := []struct {
		q   *gorm.DB
		dst *int64
	}{
		{db.Model(&models.Attendee{}), &s.TotalAttendees},
		{db.Model(&models.Attendee{}).Where("paid = ?", true), &s.PaidAttendees},
		{db.Model(&models.Attendee{}).Where("paid = ?", false), &s.PendingAttendees},
		{db.Model(&models.Donor{}), &s.TotalDonors},
		{db.Model(&models.EventPayment{}).Where("status = ?", domain.PaymentFailed), &s.FailedPayments},
		{db.Model(&models.Notification{}).Where("status = ?", domain.DeliveryFailed), &s.FailedNotifications},
	}
	for _, c := range counts {
		if err := c.q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	var rev struct{ Total int64 }
	if err := db.Model(&models.EventPayment{}).Select("COALESCE(SUM(amount_minor), 0) as total").
		Where("status = ?", domain.PaymentSuccess).Scan(&rev).Error; err != nil {
		return nil, err
	}
	s.RegistrationRevenue = rev.Total

	var don struct{ Total int64 }
	if err := db.Model(&models.Donation{}).Select("COALESCE(SUM(amount_minor), 0) as total").
		Where("status = ?", domain.PaymentSuccess).Scan(&don).Error; err != nil {
		return nil, err
	}
	s.DonationRevenue = don.Total
	return &s, nil
}

// ListAttendees returns attendees with search, paid filter and pagination.
func (r *AdminRepository) ListAttendees(ctx context.Context, search string, paid *bool, page, limit int) ([]models.Attendee, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Attendee{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR registration_id LIKE ?", like, like, like, like)
	}
	if paid != nil {
		q = q.Where("paid = ?", *paid)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Attendee
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
