package mailer

import (
	"context"
	"strings"

	"eventreg/config"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer, or a LogMailer when no SMTP host is configured.
func New(cfg config.MailConfig, log *zerolog.Logger) Mailer {
	if cfg.Host == "" {
		return &LogMailer{log: log}
	}
	return NewSMTPMailer(cfg)
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.dialer.DialAndSend(m.build(msg))
}

func (m *SMTPMailer) build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}
	return gm
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct {
	log *zerolog.Logger
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info().
		Str("to", strings.Join(msg.To, ",")).
		Str("subject", msg.Subject).
		Msg("mail not sent: no SMTP host configured")
	return nil
}
