package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// SMTPSender implements the Sender interface using a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSMTPSender creates a new SMTPSender with the given SMTP credentials.
func NewSMTPSender(host string, port int, username, password, fromEmail, fromName string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendFeedbackRequestEmail(ctx context.Context, toEmail, customerName, jobTitle, feedbackURL string) error {
	content, err := renderEmailTemplate("feedback_request.html", feedbackRequestEmailData{
		baseEmailData: baseEmailData{
			Title:    "How did we do?",
			Heading:  "How did we do?",
			CTALabel: "Leave feedback",
			CTAURL:   feedbackURL,
		},
		CustomerName: customerName,
		JobTitle:     jobTitle,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectFeedbackRequest, content)
}

func (s *SMTPSender) SendScheduleChangeEmail(ctx context.Context, toEmail, customerName, jobTitle, newDate, newTime string) error {
	content, err := renderEmailTemplate("schedule_change.html", scheduleChangeEmailData{
		baseEmailData: baseEmailData{
			Title:   "Your visit has been rescheduled",
			Heading: "Your visit has been rescheduled",
		},
		CustomerName: customerName,
		JobTitle:     jobTitle,
		NewDate:      newDate,
		NewTime:      newTime,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subjectScheduleChange, content)
}
