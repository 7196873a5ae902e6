package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"eventreg/internal/database"
	"eventreg/internal/domain"
	"eventreg/internal/models"
	"eventreg/internal/repository"
	"eventreg/pkg/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testFee    = int64(210000)
	testSecret = "sk_test_secret"
)

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

type fakeGateway struct {
	mu    sync.Mutex
	calls []payment.InitializeRequest
	err   error
	// onInitialize runs before the response is returned.
	onInitialize func(req payment.InitializeRequest)
}

func (g *fakeGateway) Initialize(ctx context.Context, req payment.InitializeRequest) (*payment.InitializeResponse, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req)
	hook, err := g.onInitialize, g.err
	g.mu.Unlock()
	if hook != nil {
		hook(req)
	}
	if err != nil {
		return nil, err
	}
	return &payment.InitializeResponse{
		Reference:        req.Reference,
		AuthorizationURL: "https://checkout.test/" + req.Reference,
	}, nil
}

func (g *fakeGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type retryCall struct {
	name, email, reference string
}

type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []models.Attendee
	retries   []retryCall
}

func (n *fakeNotifier) RegistrationConfirmed(ctx context.Context, a *models.Attendee) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, *a)
}

func (n *fakeNotifier) PaymentRetry(ctx context.Context, name, email, reference string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.retries = append(n.retries, retryCall{name: name, email: email, reference: reference})
}

type fixture struct {
	db            *gorm.DB
	attendees     *repository.AttendeeRepository
	donors        *repository.DonorRepository
	payments      *repository.PaymentRepository
	settings      *repository.SettingRepository
	events        *repository.WebhookEventRepository
	gateway       *fakeGateway
	notifier      *fakeNotifier
	ids           *RegistrationIDAllocator
	paymentSvc    *PaymentService
	registrations *RegistrationService
	donations     *DonationService
	webhooks      *WebhookService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenMemory("svc_" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	log := zerolog.Nop()
	f := &fixture{
		db:        db,
		attendees: repository.NewAttendeeRepository(db),
		donors:    repository.NewDonorRepository(db),
		payments:  repository.NewPaymentRepository(db),
		settings:  repository.NewSettingRepository(db),
		events:    repository.NewWebhookEventRepository(db),
		gateway:   &fakeGateway{},
		notifier:  &fakeNotifier{},
	}
	f.ids = NewRegistrationIDAllocator("DWR", f.attendees, repository.NewSequenceRepository(db))
	f.ids.now = func() time.Time { return testNow }
	f.paymentSvc = NewPaymentService(f.payments, f.attendees, f.donors, f.gateway, "https://dawrah.test/callback", "REG", &log)
	f.registrations = NewRegistrationService(db, f.attendees, f.settings, f.paymentSvc, testFee, &log)
	f.donations = NewDonationService(f.donors, f.payments, f.paymentSvc, 100, &log)
	f.webhooks = NewWebhookService(db, f.payments, f.attendees, f.donors, f.events, f.ids, f.notifier, testSecret, &log)
	f.webhooks.now = func() time.Time { return testNow }
	return f
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		FirstName:    "Aisha",
		LastName:     "Bello",
		Email:        email,
		Phone:        "08031234567",
		Department:   "Computer Science",
		LevelOfStudy: 300,
		Category:     domain.CategoryBeginner,
	}
}

func chargeEvent(event, reference string, amount int64, gatewayResponse string) *payment.WebhookEvent {
	return &payment.WebhookEvent{
		Event: event,
		Data:  payment.WebhookData{Reference: reference, Amount: amount, GatewayResponse: gatewayResponse},
	}
}

func (f *fixture) countAttendees(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Attendee{}).Count(&n).Error)
	return n
}
