package email

import (
	"context"

	"fieldservice_backend/platform/config"
)

// Sender delivers transactional email to customers.
type Sender interface {
	SendFeedbackRequestEmail(ctx context.Context, toEmail, customerName, jobTitle, feedbackURL string) error
	SendScheduleChangeEmail(ctx context.Context, toEmail, customerName, jobTitle, newDate, newTime string) error
}

// NoopSender is used when email delivery is disabled. All sends succeed
// without doing anything.
type NoopSender struct{}

func (NoopSender) SendFeedbackRequestEmail(ctx context.Context, toEmail, customerName, jobTitle, feedbackURL string) error {
	return nil
}

func (NoopSender) SendScheduleChangeEmail(ctx context.Context, toEmail, customerName, jobTitle, newDate, newTime string) error {
	return nil
}

// NewSender builds a Sender from configuration. Returns a NoopSender when
// email is disabled so callers never need a nil check.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
