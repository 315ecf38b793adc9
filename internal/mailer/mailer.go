// Package mailer sends transactional mail over SMTP. With no SMTP host
// configured it degrades to logging the message, so local setups work
// without a mail server.
package mailer

import (
	"context"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/crimebase/crimebase/internal/config"
)

// Mailer delivers HTML mail. The zero value is not usable; call New.
type Mailer struct {
	cfg *config.MailConfig
}

// New builds a Mailer from SMTP settings.
func New(cfg *config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers one HTML message. When mail is not configured the message is
// logged at info level and no error is returned.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.cfg.Enabled() {
		slog.InfoContext(ctx, "mail disabled, skipping delivery",
			slog.String("to", to),
			slog.String("subject", subject))
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
