package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"eventreg/internal/domain"
	"eventreg/internal/mailer"
	"eventreg/internal/models"
	"eventreg/internal/notify"

	"github.com/rs/zerolog"
)

// Notifier sends the emails triggered by payment reconciliation.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, a *models.Attendee)
	PaymentRetry(ctx context.Context, name, email, reference string)
}

type NotificationService struct {
	dispatcher  notify.Dispatcher
	eventName   string
	frontendURL string
	log         *zerolog.Logger
}

func NewNotificationService(d notify.Dispatcher, eventName, frontendURL string, log *zerolog.Logger) *NotificationService {
	return &NotificationService{dispatcher: d, eventName: eventName, frontendURL: frontendURL, log: log}
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<html>
  <body>
    <p>Assalamu 'alaykum wa rahmatullahi wa barakatuhu, <strong>{{.Name}}</strong>.</p>
    <p>Thank you for registering for the {{.Event}} program.</p>
    <p>Your {{.Event}} ID is <strong>{{.RegistrationID}}</strong>.</p>
    <p>Kindly keep this ID safe as you will need it to access the program.</p>
    <p>We look forward to seeing you at the {{.Event}}, inshaAllah.</p>
  </body>
</html>`))

var retryHTML = template.Must(template.New("retry").Parse(`<html>
  <body>
    <p>Assalamu 'alaykum {{.Name}},</p>
    <p>We could not complete your {{.Event}} payment.</p>
    <p>You can retry your payment by clicking the link below:</p>
    <p><a href="{{.Link}}">Retry payment</a></p>
  </body>
</html>`))

// RegistrationConfirmed emails the attendee their registration ID.
func (s *NotificationService) RegistrationConfirmed(ctx context.Context, a *models.Attendee) {
	if !a.Registered() {
		return
	}
	data := map[string]string{"Name": a.FullName(), "Event": s.eventName, "RegistrationID": *a.RegistrationID}
	text := fmt.Sprintf("Assalamu alaikum wa rahmatullahi wa barakatuhu, %s. Thank you for registering for the %s. "+
		"Your %s ID is %s. Kindly keep this ID safe as you will need it to access the %s. "+
		"We look forward to seeing you at the %s, inshaAllah.",
		a.FullName(), s.eventName, s.eventName, *a.RegistrationID, s.eventName, s.eventName)
	s.send(ctx, domain.NotificationRegistrationConfirmed, a.Email, s.eventName+" Registration Confirmation", text, confirmationHTML, data)
}

// PaymentRetry emails a link the payer can use to retry reference.
func (s *NotificationService) PaymentRetry(ctx context.Context, name, email, reference string) {
	link := s.RetryLink(reference)
	data := map[string]string{"Name": name, "Event": s.eventName, "Link": link}
	text := "You can retry your payment by clicking the link below:\n" + link
	s.send(ctx, domain.NotificationPaymentRetry, email, s.eventName+" - Payment Retry Link", text, retryHTML, data)
}

func (s *NotificationService) RetryLink(reference string) string {
	return s.frontendURL + "/retry-payment?reference=" + url.QueryEscape(reference)
}

func (s *NotificationService) send(ctx context.Context, kind, to, subject, text string, tmpl *template.Template, data interface{}) {
	var html bytes.Buffer
	if err := tmpl.Execute(&html, data); err != nil {
		s.log.Error().Err(err).Str("kind", kind).Msg("render email")
		html.Reset()
	}
	job := notify.Job{
		Kind: kind,
		Message: mailer.Message{
			To:      []string{to},
			Subject: subject,
			Text:    text,
			HTML:    html.String(),
		},
	}
	if err := s.dispatcher.Dispatch(ctx, job); err != nil {
		s.log.Error().Err(err).Str("kind", kind).Str("to", to).Msg("dispatch notification")
	}
}
