package service

import (
	"github.com/resend/resend-go/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"redirectflow-go/pkg/logging"
)

// Mailer delivers summary notifications. The default implementation talks
// to Resend; tests substitute a recorder.
type Mailer interface {
	Send(to, subject, html string) error
}

var mailer Mailer

// InitMailer builds the Resend-backed mailer from config. A missing API
// key keeps the client constructible with a placeholder so the batch path
// stays usable mid-provisioning (sends will fail and be logged).
func InitMailer() {
	apiKey := viper.GetString("mail.api_key")
	if apiKey == "" {
		apiKey = "re_placeholder"
		logging.Logger.Warn("mail.api_key is not configured, summary emails will fail")
	}

	from := viper.GetString("mail.from")
	if from == "" {
		from = "RedirectFlow <notifications@myclaw.ai>"
	}

	mailer = &resendMailer{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// SetMailer swaps the delivery backend (tests).
func SetMailer(m Mailer) {
	mailer = m
}

type resendMailer struct {
	client *resend.Client
	from   string
}

func (m *resendMailer) Send(to, subject, html string) error {
	sent, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return err
	}

	logging.Logger.Info("summary email sent",
		zap.String("to", to),
		zap.String("mail_id", sent.Id))
	return nil
}
