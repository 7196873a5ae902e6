package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventreg/internal/domain"
	"eventreg/internal/models"
	"eventreg/internal/repository"
	"eventreg/pkg/payment"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Checkout is an initialized hosted payment.
type Checkout struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
}

type PaymentService struct {
	payments        *repository.PaymentRepository
	attendees       *repository.AttendeeRepository
	donors          *repository.DonorRepository
	gateway         payment.Provider
	callbackURL     string
	referencePrefix string
	log             *zerolog.Logger
	now             func() time.Time
}

func NewPaymentService(
	payments *repository.PaymentRepository,
	attendees *repository.AttendeeRepository,
	donors *repository.DonorRepository,
	gateway payment.Provider,
	callbackURL, referencePrefix string,
	log *zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments:        payments,
		attendees:       attendees,
		donors:          donors,
		gateway:         gateway,
		callbackURL:     callbackURL,
		referencePrefix: referencePrefix,
		log:             log,
		now:             time.Now,
	}
}

// InitEventPayment opens a checkout for the attendee registered under email and
// records it as initialized. An empty reference gets a fresh one; an existing
// record for reference is reset to initialized.
func (s *PaymentService) InitEventPayment(ctx context.Context, email string, amountMinor int64, reference string) (*Checkout, error) {
	if amountMinor <= 0 {
		return nil, ErrInvalidAmount
	}
	a, err := s.attendees.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendeeNotFound
	}
	if err != nil {
		return nil, err
	}
	resp, err := s.initialize(ctx, a.Email, amountMinor, reference, "event")
	if err != nil {
		return nil, err
	}
	rec := &models.EventPayment{
		AttendeeID:  a.ID,
		Reference:   resp.Reference,
		Status:      domain.PaymentInitialized,
		AmountMinor: amountMinor,
	}
	ok, err := s.payments.UpsertEventPayment(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPaymentCompleted
	}
	return &Checkout{Reference: resp.Reference, AuthorizationURL: resp.AuthorizationURL}, nil
}

// InitDonationPayment is InitEventPayment for a donor.
func (s *PaymentService) InitDonationPayment(ctx context.Context, d *models.Donor, amountMinor int64, reference string) (*Checkout, error) {
	if amountMinor <= 0 {
		return nil, ErrInvalidAmount
	}
	resp, err := s.initialize(ctx, d.Email, amountMinor, reference, "donation")
	if err != nil {
		return nil, err
	}
	rec := &models.Donation{
		DonorID:     d.ID,
		Reference:   resp.Reference,
		Status:      domain.PaymentInitialized,
		AmountMinor: amountMinor,
	}
	ok, err := s.payments.UpsertDonation(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPaymentCompleted
	}
	return &Checkout{Reference: resp.Reference, AuthorizationURL: resp.AuthorizationURL}, nil
}

// Retry re-opens the checkout for an unpaid reference, reusing the reference,
// the owner's email and the recorded amount.
func (s *PaymentService) Retry(ctx context.Context, reference string) (*Checkout, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrMissingReference
	}

	ev, err := s.payments.GetEventPaymentByReference(ctx, reference)
	if err == nil {
		if ev.Status == domain.PaymentSuccess {
			return nil, ErrPaymentCompleted
		}
		a, err := s.attendees.GetByID(ctx, ev.AttendeeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendeeNotFound
		}
		if err != nil {
			return nil, err
		}
		if a.Registered() || a.Paid {
			return nil, ErrAlreadyRegistered
		}
		return s.InitEventPayment(ctx, a.Email, ev.AmountMinor, reference)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	don, err := s.payments.GetDonationByReference(ctx, reference)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReferenceNotFound
	}
	if err != nil {
		return nil, err
	}
	if don.Status == domain.PaymentSuccess {
		return nil, ErrPaymentCompleted
	}
	d, err := s.donors.GetByID(ctx, don.DonorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDonorNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.InitDonationPayment(ctx, d, don.AmountMinor, reference)
}

func (s *PaymentService) initialize(ctx context.Context, email string, amountMinor int64, reference, kind string) (*payment.InitializeResponse, error) {
	if reference == "" {
		reference = payment.NewReference(s.referencePrefix, s.now())
	}
	resp, err := s.gateway.Initialize(ctx, payment.InitializeRequest{
		Email:       email,
		AmountMinor: amountMinor,
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Metadata:    map[string]string{"kind": kind},
	})
	if err != nil {
		s.log.Error().Err(err).Str("reference", reference).Str("kind", kind).Msg("payment initialization failed")
		return nil, wrap(ErrGatewayFailure, err)
	}
	if resp.Reference == "" {
		resp.Reference = reference
	}
	s.log.Info().Str("reference", resp.Reference).Str("kind", kind).Int64("amount_minor", amountMinor).Msg("payment initialized")
	return resp, nil
}

func (s *PaymentService) ListEventPayments(ctx context.Context, status string, page, limit int) ([]models.EventPayment, int64, error) {
	return s.payments.ListEventPayments(ctx, status, page, limit)
}

func (s *PaymentService) GetEventPayment(ctx context.Context, id uint) (*models.EventPayment, error) {
	p, err := s.payments.GetEventPaymentByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}
	return p, err
}
