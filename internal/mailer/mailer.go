// Package mailer sends transactional email. It is optional: with no SMTP
// host configured the mailer is disabled and sends become no-ops.
package mailer

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/braincarehq/backend/internal/config"
)

const welcomeTpl = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Welcome to BrainCare</h2>
    <p>Hi {{.Name}},</p>
    <p>Your account is ready. You can start recording health metrics and
    journal entries right away; analysis results appear once your first
    measurements arrive.</p>
    <p>The BrainCare team</p>
</body>
</html>
`

// Mailer sends account email through the configured SMTP relay.
type Mailer struct {
	client  *mail.Client
	sender  string
	welcome *template.Template
	logger  *slog.Logger
}

// New creates a mailer from SMTP config. A nil mailer is returned (without
// error) when no host is configured.
func New(log *slog.Logger, cfg config.SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	if log == nil {
		log = slog.Default()
	}
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
	)
	if err != nil {
		return nil, err
	}
	return &Mailer{
		client:  client,
		sender:  cfg.Sender,
		welcome: template.Must(template.New("welcome").Parse(welcomeTpl)),
		logger:  log.With(slog.String("component", "mailer")),
	}, nil
}

// SendWelcome sends the post-signup welcome email. Safe to call on a nil
// mailer.
func (m *Mailer) SendWelcome(ctx context.Context, email, name string) error {
	if m == nil {
		return nil
	}
	if name == "" {
		name = "there"
	}

	var body bytes.Buffer
	if err := m.welcome.Execute(&body, struct{ Name string }{Name: name}); err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return err
	}
	if err := msg.To(email); err != nil {
		return err
	}
	msg.Subject("Welcome to BrainCare")
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return err
	}
	m.logger.Info("welcome email sent", slog.String("to", email))
	return nil
}
