package mailer

import (
	"fmt"

	"github.com/parulcreation/projectshop/internal/adapter/config"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	logger *zap.Logger
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Email, log *zap.Logger) (*SMTPMailer, error) {
	if cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("email credentials are not configured")
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &SMTPMailer{
		logger: log,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   from,
	}, nil
}

const bodyTemplate = `<html>
  <body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #0F172A;">Thank You for Your Purchase!</h1>
    <p>Hi %s,</p>
    <p>Thank you for purchasing from <strong>Parul Creation</strong>.</p>
    <p>Your project PDF "<strong>%s</strong>" is attached to this email.</p>
    <hr style="border: 1px solid #E2E8F0; margin: 20px 0;">
    <p style="color: #64748B; font-size: 14px;">
      If you have any questions, please contact us.<br>
      Best regards,<br>
      Parul Creation Team
    </p>
  </body>
</html>`

func (m *SMTPMailer) SendArtifact(to string, customerName string, projectTitle string, filePath string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Your Project PDF - %s", projectTitle))
	msg.SetBody("text/html", fmt.Sprintf(bodyTemplate, customerName, projectTitle))
	msg.Attach(filePath, gomail.Rename(projectTitle+".pdf"))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("smtp send failed", zap.String("to", to), zap.Error(err))
		return err
	}

	m.logger.Info("artifact delivered", zap.String("to", to), zap.String("project", projectTitle))
	return nil
}
