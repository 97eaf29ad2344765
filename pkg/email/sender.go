package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"fleet-manager/internal/config"
	"fleet-manager/internal/logger"
	appErrors "fleet-manager/pkg/errors"
)

// Sender delivers outbound mail through SendGrid. Only the password reset
// flow uses it; fleet alerts stay in-app.
type Sender struct {
	cfg config.EmailConfig
}

func NewSender(cfg config.EmailConfig) *Sender {
	return &Sender{cfg: cfg}
}

// Send delivers the same message to every recipient. The plain text body is
// mandatory, htmlBody may be empty.
func (s *Sender) Send(subject string, recipients []string, body, htmlBody string) error {
	if len(recipients) == 0 {
		return nil
	}

	if s.cfg.SendGridAPIKey == "" || s.cfg.FromAddress == "" {
		return appErrors.ErrEmailNotConfigured
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromAddress)
	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)

	var firstErr error
	for _, recipient := range recipients {
		to := mail.NewEmail("", recipient)
		message := mail.NewSingleEmail(from, subject, to, body, htmlBody)

		response, err := client.Send(message)
		if err != nil {
			logger.Error("Failed to send email",
				zap.String("recipient", recipient),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to send email to %s: %w", recipient, err)
			}
			continue
		}

		if response.StatusCode >= 200 && response.StatusCode < 300 {
			logger.Info("Email sent",
				zap.String("recipient", recipient),
				zap.Int("status_code", response.StatusCode),
			)
		} else {
			logger.Warn("Email sent with non-2xx status",
				zap.String("recipient", recipient),
				zap.Int("status_code", response.StatusCode),
				zap.String("body", response.Body),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("email provider returned status %d", response.StatusCode)
			}
		}
	}

	return firstErr
}
