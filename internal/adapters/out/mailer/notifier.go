// Package mailer implements the Notifier port over SMTP.
package mailer

import (
	"context"
	"fmt"

	"dispatch/internal/pkg/errs"

	"github.com/wneessen/go-mail"
)

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends transactional mail through an SMTP relay.
type SMTPNotifier struct {
	client *mail.Client
	from   string
}

// NewSMTPNotifier creates a notifier connected to the configured relay.
func NewSMTPNotifier(cfg Config) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, errs.NewValueIsRequiredError("smtp host")
	}
	if cfg.From == "" {
		return nil, errs.NewValueIsRequiredError("smtp from address")
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &SMTPNotifier{
		client: client,
		from:   cfg.From,
	}, nil
}

// SendPasswordReset emails the plain reset token to the address.
// The token is only ever transmitted here; storage holds its digest.
func (n *SMTPNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("setting recipient: %w", err)
	}

	msg.Subject("Password reset")
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"A password reset was requested for your account.\n\n"+
			"Reset token: %s\n\n"+
			"The token expires shortly. If you did not request a reset, ignore this message.\n",
		token,
	))

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending password reset mail: %w", err)
	}

	return nil
}
