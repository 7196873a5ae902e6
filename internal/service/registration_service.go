package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"eventreg/internal/domain"
	"eventreg/internal/models"
	"eventreg/internal/repository"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type RegistrationOutcome int

const (
	// OutcomeCreated: a new attendee was stored and a checkout opened.
	OutcomeCreated RegistrationOutcome = iota + 1
	// OutcomeResumed: an unpaid attendee already existed; a new checkout was opened.
	OutcomeResumed
	// OutcomeAlreadyRegistered: the attendee already holds a registration ID.
	OutcomeAlreadyRegistered
)

type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Department   string
	LevelOfStudy int
	Category     string
}

type RegistrationResult struct {
	Outcome  RegistrationOutcome
	Attendee *models.Attendee
	Checkout *Checkout
}

type EmailStatus struct {
	Exists     bool `json:"exists"`
	Registered bool `json:"registered"`
	Paid       bool `json:"paid"`
}

type RegistrationService struct {
	db        *gorm.DB
	attendees *repository.AttendeeRepository
	settings  *repository.SettingRepository
	payments  *PaymentService
	feeMinor  int64
	log       *zerolog.Logger
}

func NewRegistrationService(
	db *gorm.DB,
	attendees *repository.AttendeeRepository,
	settings *repository.SettingRepository,
	payments *PaymentService,
	feeMinor int64,
	log *zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{db: db, attendees: attendees, settings: settings, payments: payments, feeMinor: feeMinor, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates or resumes the registration for in.Email and opens a
// checkout for the registration fee.
//
// When the email already holds a registration ID the result carries the
// stored attendee together with ErrAlreadyRegistered.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (*RegistrationResult, error) {
	email := normalizeEmail(in.Email)
	res := &RegistrationResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		attendees := s.attendees.WithTx(tx)
		existing, err := attendees.GetByEmailForUpdate(ctx, email)
		switch {
		case err == nil:
			res.Attendee = existing
			if existing.Registered() || existing.Paid {
				res.Outcome = OutcomeAlreadyRegistered
			} else {
				res.Outcome = OutcomeResumed
			}
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		a := &models.Attendee{
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			Email:        email,
			Phone:        strings.TrimSpace(in.Phone),
			Department:   strings.TrimSpace(in.Department),
			LevelOfStudy: in.LevelOfStudy,
			Category:     in.Category,
		}
		if err := attendees.Create(ctx, a); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrRegistrationInProgress
			}
			return err
		}
		res.Attendee = a
		res.Outcome = OutcomeCreated
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Outcome == OutcomeAlreadyRegistered {
		return res, ErrAlreadyRegistered
	}

	checkout, err := s.payments.InitEventPayment(ctx, email, s.Fee(ctx), "")
	if err != nil {
		return nil, err
	}
	res.Checkout = checkout
	s.log.Info().
		Str("attendee_id", res.Attendee.ID).
		Str("reference", checkout.Reference).
		Bool("resumed", res.Outcome == OutcomeResumed).
		Msg("registration checkout opened")
	return res, nil
}

// Fee returns the registration fee in minor units. The admin setting wins over
// the configured default.
func (s *RegistrationService) Fee(ctx context.Context) int64 {
	if s.settings != nil {
		if v, err := s.settings.Get(ctx, domain.SettingRegistrationFee); err == nil {
			if fee, perr := strconv.ParseInt(strings.TrimSpace(v), 10, 64); perr == nil && fee > 0 {
				return fee
			}
			s.log.Warn().Str("value", v).Msg("ignoring invalid registration fee setting")
		}
	}
	return s.feeMinor
}

// CheckEmail reports the registration state of email.
func (s *RegistrationService) CheckEmail(ctx context.Context, email string) (*EmailStatus, error) {
	a, err := s.attendees.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &EmailStatus{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &EmailStatus{Exists: true, Registered: a.Registered(), Paid: a.Paid}, nil
}

func (s *RegistrationService) GetAttendee(ctx context.Context, idOrRegistrationID string) (*models.Attendee, error) {
	a, err := s.attendees.GetByID(ctx, idOrRegistrationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		a, err = s.attendees.GetByRegistrationID(ctx, idOrRegistrationID)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendeeNotFound
	}
	return a, err
}
