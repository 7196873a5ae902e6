package repository

import (
	"context"
	"testing"
	"time"

	"eventreg/internal/database"
	"eventreg/internal/domain"
	"eventreg/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory("repo_" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func strPtr(s string) *string { return &s }

func newAttendee(email string) *models.Attendee {
	return &models.Attendee{
		FirstName:    "Aisha",
		LastName:     "Bello",
		Email:        email,
		Phone:        "08031234567",
		Department:   "Computer Science",
		LevelOfStudy: 300,
		Category:     domain.CategoryBeginner,
	}
}

func TestAttendeeRepositoryCreateAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendeeRepository(newTestDB(t))

	a := newAttendee("aisha@example.com")
	require.NoError(t, repo.Create(ctx, a))
	assert.NotEmpty(t, a.ID)

	got, err := repo.GetByEmail(ctx, "aisha@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.False(t, got.Paid)
	assert.Nil(t, got.RegistrationID)
}

func TestAttendeeRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendeeRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newAttendee("dup@example.com")))
	err := repo.Create(ctx, newAttendee("dup@example.com"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestAttendeeRepositoryLastRegistrationID(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendeeRepository(newTestDB(t))

	last, err := repo.LastRegistrationID(ctx)
	require.NoError(t, err)
	assert.Empty(t, last)

	for i, id := range []string{"DWR-0003", "DWR-0005", "DWR-0004"} {
		a := newAttendee(uuid.NewString() + "@example.com")
		a.RegistrationID = strPtr(id)
		a.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, a))
	}
	require.NoError(t, repo.Create(ctx, newAttendee("pending@example.com")))

	last, err = repo.LastRegistrationID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "DWR-0005", last)
}

func TestSequenceRepositoryAdvance(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSequenceRepository(db)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	next := func(last string) string { return domain.NextRegistrationID("DWR", last, now) }

	seeded := 0
	seed := func() (string, error) {
		seeded++
		return "DWR-0005", nil
	}

	var got []string
	for i := 0; i < 3; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			v, err := repo.WithTx(tx).Advance(ctx, "DWR", seed, next)
			got = append(got, v)
			return err
		})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"DWR-0006", "DWR-0007", "DWR-0008"}, got)
	assert.Equal(t, 1, seeded)
}

func TestSequenceRepositoryAdvanceEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewSequenceRepository(newTestDB(t))
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	v, err := repo.Advance(ctx, "DWR", func() (string, error) { return "", nil }, func(last string) string {
		return domain.NextRegistrationID("DWR", last, now)
	})
	require.NoError(t, err)
	assert.Equal(t, "DWR-2601", v)
}

func TestPaymentRepositoryUpsertResetsStatus(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	attendees := NewAttendeeRepository(db)
	payments := NewPaymentRepository(db)

	a := newAttendee("pay@example.com")
	require.NoError(t, attendees.Create(ctx, a))

	p := &models.EventPayment{AttendeeID: a.ID, Reference: "REG-1-ABCDEF", Status: domain.PaymentInitialized, AmountMinor: 210000}
	ok, err := payments.UpsertEventPayment(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := payments.GetEventPaymentByReference(ctx, "REG-1-ABCDEF")
	require.NoError(t, err)
	stored.Status = domain.PaymentFailed
	stored.Message = "Declined"
	require.NoError(t, payments.UpdateEventPayment(ctx, stored))

	again := &models.EventPayment{AttendeeID: a.ID, Reference: "REG-1-ABCDEF", Status: domain.PaymentInitialized, AmountMinor: 210000}
	ok, err = payments.UpsertEventPayment(ctx, again)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err = payments.GetEventPaymentByReference(ctx, "REG-1-ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentInitialized, stored.Status)
	assert.Empty(t, stored.Message)

	list, total, err := payments.ListEventPayments(ctx, "", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Attendee)
	assert.Equal(t, "pay@example.com", list[0].Attendee.Email)
}

func TestPaymentRepositoryUpsertKeepsSuccess(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	attendees := NewAttendeeRepository(db)
	payments := NewPaymentRepository(db)

	a := newAttendee("done@example.com")
	require.NoError(t, attendees.Create(ctx, a))
	paidAt := time.Now()
	require.NoError(t, db.Create(&models.EventPayment{
		AttendeeID: a.ID, Reference: "REG-2-ABCDEF", Status: domain.PaymentSuccess, AmountMinor: 210000, Message: "Approved", PaidAt: &paidAt,
	}).Error)

	ok, err := payments.UpsertEventPayment(ctx, &models.EventPayment{
		AttendeeID: a.ID, Reference: "REG-2-ABCDEF", Status: domain.PaymentInitialized, AmountMinor: 100000,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := payments.GetEventPaymentByReference(ctx, "REG-2-ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, stored.Status)
	assert.Equal(t, int64(210000), stored.AmountMinor)
	assert.Equal(t, "Approved", stored.Message)

	d := &models.Donor{FirstName: "Musa", LastName: "Ade", Email: "musa@example.com", Phone: "08021234567", Amount: 5000}
	require.NoError(t, NewDonorRepository(db).Create(ctx, d))
	require.NoError(t, db.Create(&models.Donation{
		DonorID: d.ID, Reference: "REG-3-ABCDEF", Status: domain.PaymentSuccess, AmountMinor: 500000, PaidAt: &paidAt,
	}).Error)
	ok, err = payments.UpsertDonation(ctx, &models.Donation{
		DonorID: d.ID, Reference: "REG-3-ABCDEF", Status: domain.PaymentInitialized, AmountMinor: 500000,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	don, err := payments.GetDonationByReference(ctx, "REG-3-ABCDEF")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentSuccess, don.Status)
}

func TestDonorRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewDonorRepository(newTestDB(t))

	d := &models.Donor{FirstName: "Musa", LastName: "Ade", Email: "musa@example.com", Phone: "08021234567", Amount: 5000}
	require.NoError(t, repo.Create(ctx, d))

	require.NoError(t, repo.Delete(ctx, d.ID))
	_, err := repo.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, d.ID), gorm.ErrRecordNotFound)
}

func TestSettingRepositorySetOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingRepository(newTestDB(t))

	require.NoError(t, repo.Set(ctx, domain.SettingRegistrationFee, "100000"))
	require.NoError(t, repo.Set(ctx, domain.SettingRegistrationFee, "150000"))

	v, err := repo.Get(ctx, domain.SettingRegistrationFee)
	require.NoError(t, err)
	assert.Equal(t, "150000", v)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAdminRepositoryDashboardStats(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	attendees := NewAttendeeRepository(db)
	payments := NewPaymentRepository(db)

	paid := newAttendee("paid@example.com")
	paid.Paid = true
	paid.RegistrationID = strPtr("DWR-2601")
	require.NoError(t, attendees.Create(ctx, paid))
	require.NoError(t, attendees.Create(ctx, newAttendee("pending@example.com")))
	_, err := payments.UpsertEventPayment(ctx, &models.EventPayment{
		AttendeeID: paid.ID, Reference: "REG-1-AAAAAA", Status: domain.PaymentSuccess, AmountMinor: 210000,
	})
	require.NoError(t, err)

	stats, err := NewAdminRepository(db).GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalAttendees)
	assert.Equal(t, int64(1), stats.PaidAttendees)
	assert.Equal(t, int64(1), stats.PendingAttendees)
	assert.Equal(t, int64(210000), stats.RegistrationRevenue)

	yes := true
	list, total, err := NewAdminRepository(db).ListAttendees(ctx, "", &yes, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "paid@example.com", list[0].Email)
}
