package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventreg/internal/domain"
	"eventreg/internal/models"
	"eventreg/internal/repository"
	"eventreg/pkg/payment"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type WebhookOutcome string

const (
	OutcomePaid      WebhookOutcome = "paid"
	OutcomeFailed    WebhookOutcome = "failed"
	OutcomeDuplicate WebhookOutcome = "duplicate"
	OutcomeIgnored   WebhookOutcome = "ignored"
)

type WebhookResult struct {
	Outcome   WebhookOutcome
	Reference string
	Message   string
}

// WebhookService reconciles gateway charge callbacks with stored payments.
// Deliveries are at-least-once: a replayed event finds the record already in
// its target state and produces no side effects.
type WebhookService struct {
	db        *gorm.DB
	payments  *repository.PaymentRepository
	attendees *repository.AttendeeRepository
	donors    *repository.DonorRepository
	events    *repository.WebhookEventRepository
	ids       *RegistrationIDAllocator
	notifier  Notifier
	secret    string
	log       *zerolog.Logger
	now       func() time.Time
}

func NewWebhookService(
	db *gorm.DB,
	payments *repository.PaymentRepository,
	attendees *repository.AttendeeRepository,
	donors *repository.DonorRepository,
	events *repository.WebhookEventRepository,
	ids *RegistrationIDAllocator,
	notifier Notifier,
	secret string,
	log *zerolog.Logger,
) *WebhookService {
	return &WebhookService{
		db:        db,
		payments:  payments,
		attendees: attendees,
		donors:    donors,
		events:    events,
		ids:       ids,
		notifier:  notifier,
		secret:    secret,
		log:       log,
		now:       time.Now,
	}
}

// Receive verifies, logs and handles a raw webhook delivery.
func (s *WebhookService) Receive(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	valid := payment.VerifySignature(s.secret, body, signature)
	evt, parseErr := payment.ParseWebhook(body)

	row := &models.WebhookEvent{Provider: domain.ProviderPaystack, Payload: string(body), SignatureValid: valid}
	if evt != nil {
		row.EventType = evt.Event
		row.Reference = evt.Data.Reference
	}
	if err := s.events.Create(ctx, row); err != nil {
		s.log.Warn().Err(err).Msg("failed to log webhook event")
		row = nil
	}

	var (
		res *WebhookResult
		err error
	)
	switch {
	case !valid:
		err = ErrInvalidSignature
	case parseErr != nil:
		err = wrap(ErrInvalidPayload, parseErr)
	default:
		res, err = s.Handle(ctx, evt)
	}

	if row != nil {
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		if merr := s.events.MarkProcessed(ctx, row.ID, msg); merr != nil {
			s.log.Warn().Err(merr).Uint("webhook_event_id", row.ID).Msg("failed to mark webhook event")
		}
	}
	return res, err
}

// effects are run once the reconciliation transaction has committed.
type effects struct {
	confirm *models.Attendee
	retry   *retryTarget
}

type retryTarget struct {
	name  string
	email string
}

// Handle applies a parsed charge event.
func (s *WebhookService) Handle(ctx context.Context, evt *payment.WebhookEvent) (*WebhookResult, error) {
	ref := evt.Data.Reference
	if ref == "" {
		return nil, ErrMissingReference
	}
	if evt.Event != domain.EventChargeSuccess && evt.Event != domain.EventChargeFailed {
		s.log.Info().Str("event", evt.Event).Str("reference", ref).Msg("ignoring webhook event")
		return &WebhookResult{Outcome: OutcomeIgnored, Reference: ref}, nil
	}

	res := &WebhookResult{Reference: ref}
	var fx effects
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payments := s.payments.WithTx(tx)
		ev, err := payments.GetEventPaymentForUpdate(ctx, ref)
		if err == nil {
			return s.applyEventPayment(ctx, tx, ev, evt, res, &fx)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		don, err := payments.GetDonationForUpdate(ctx, ref)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReferenceNotFound
		}
		if err != nil {
			return err
		}
		return s.applyDonation(ctx, tx, don, evt, res, &fx)
	})
	if err != nil {
		if KindOf(err) == KindInternal {
			s.log.Error().Err(err).Str("reference", ref).Str("event", evt.Event).Msg("webhook reconciliation failed")
		}
		return nil, err
	}

	if fx.confirm != nil {
		s.notifier.RegistrationConfirmed(ctx, fx.confirm)
	}
	if fx.retry != nil {
		s.notifier.PaymentRetry(ctx, fx.retry.name, fx.retry.email, ref)
	}
	s.log.Info().Str("reference", ref).Str("event", evt.Event).Str("outcome", string(res.Outcome)).Msg("webhook reconciled")
	return res, nil
}

func (s *WebhookService) applyEventPayment(ctx context.Context, tx *gorm.DB, p *models.EventPayment, evt *payment.WebhookEvent, res *WebhookResult, fx *effects) error {
	if done, outcome := settled(p.Status, evt.Event); done {
		res.Outcome = outcome
		res.Message = p.Message
		return nil
	}
	payments := s.payments.WithTx(tx)
	attendees := s.attendees.WithTx(tx)

	a, err := attendees.GetByIDForUpdate(ctx, p.AttendeeID)
	if err != nil {
		return fmt.Errorf("load attendee %s for %s: %w", p.AttendeeID, p.Reference, err)
	}

	if evt.Event == domain.EventChargeFailed {
		p.Status = domain.PaymentFailed
		p.Message = failureMessage(evt)
		if err := payments.UpdateEventPayment(ctx, p); err != nil {
			return err
		}
		if !a.Registered() && !a.Paid {
			fx.retry = &retryTarget{name: a.FullName(), email: a.Email}
		}
		res.Outcome, res.Message = OutcomeFailed, p.Message
		return nil
	}

	now := s.now()
	p.Status = domain.PaymentSuccess
	p.Message = evt.Data.GatewayResponse
	p.PaidAt = &now
	if evt.Data.Amount > 0 {
		p.AmountMinor = evt.Data.Amount
	}
	if err := payments.UpdateEventPayment(ctx, p); err != nil {
		return err
	}

	a.Paid = true
	assigned, err := s.ids.Assign(ctx, tx, a)
	if err != nil {
		return err
	}
	if err := attendees.Update(ctx, a); err != nil {
		return err
	}
	if assigned {
		confirmed := *a
		fx.confirm = &confirmed
	}
	res.Outcome, res.Message = OutcomePaid, "Payment successful"
	return nil
}

func (s *WebhookService) applyDonation(ctx context.Context, tx *gorm.DB, d *models.Donation, evt *payment.WebhookEvent, res *WebhookResult, fx *effects) error {
	if done, outcome := settled(d.Status, evt.Event); done {
		res.Outcome = outcome
		res.Message = d.Message
		return nil
	}
	payments := s.payments.WithTx(tx)
	donors := s.donors.WithTx(tx)

	donor, err := donors.GetByIDForUpdate(ctx, d.DonorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if evt.Event == domain.EventChargeFailed {
		d.Status = domain.PaymentFailed
		d.Message = failureMessage(evt)
		if err := payments.UpdateDonation(ctx, d); err != nil {
			return err
		}
		if donor != nil {
			fx.retry = &retryTarget{name: donor.FullName(), email: donor.Email}
		}
		res.Outcome, res.Message = OutcomeFailed, d.Message
		return nil
	}

	now := s.now()
	d.Status = domain.PaymentSuccess
	d.Message = evt.Data.GatewayResponse
	d.PaidAt = &now
	if evt.Data.Amount > 0 {
		d.AmountMinor = evt.Data.Amount
	}
	if err := payments.UpdateDonation(ctx, d); err != nil {
		return err
	}
	if donor != nil && !donor.Donated {
		donor.Donated = true
		if err := donors.Update(ctx, donor); err != nil {
			return err
		}
	}
	res.Outcome, res.Message = OutcomePaid, "Donation successful"
	return nil
}

// settled reports whether a record in status needs no change for event. A
// success is final: a later failure for the same reference does not undo it.
func settled(status, event string) (bool, WebhookOutcome) {
	switch {
	case status == domain.PaymentSuccess:
		return true, OutcomeDuplicate
	case status == domain.PaymentFailed && event == domain.EventChargeFailed:
		return true, OutcomeDuplicate
	}
	return false, ""
}

func failureMessage(evt *payment.WebhookEvent) string {
	if evt.Data.GatewayResponse != "" {
		return evt.Data.GatewayResponse
	}
	return "Payment failed"
}
