package notify

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/smartdetector/moderation/internal/models"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// EmailNotifier delivers alerts over SMTP. An image attachment is embedded
// inline under its filename, which matches the cid: reference the composer
// wrote into the HTML body.
type EmailNotifier struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewEmailNotifier(cfg SMTPConfig, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, msg models.AlertMessage) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.cfg.From, n.cfg.FromName)
	m.SetHeader("To", msg.RecipientEmail)
	m.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}
	if att := msg.Attachment; att != nil {
		m.Embed(att.Path, gomail.Rename(att.Filename))
	}

	// Transient SMTP hiccups get a couple of retries; the alert is still
	// best-effort and the final error goes back to the orchestrator to log.
	send := func() error { return n.dialer.DialAndSend(m) }
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	if err := backoff.Retry(send, policy); err != nil {
		return fmt.Errorf("error sending alert email to %s: %v", msg.RecipientEmail, err)
	}

	n.logger.Info("alert email sent",
		zap.String("to", msg.RecipientEmail),
		zap.String("subject", msg.Subject))
	return nil
}
