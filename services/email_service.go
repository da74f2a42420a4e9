package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"motor-api/config"
	"motor-api/logger"
)

// EmailService sends the welcome mail after registration. It is entirely
// optional: without SMTP configuration every send is a no-op, which also
// keeps tests offline.
type EmailService struct {
	config  *config.Config
	dialer  *gomail.Dialer
	enabled bool
}

func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{config: cfg}

	if cfg.SMTPHost != "" {
		service.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
		service.enabled = true
	}

	return service
}

func (es *EmailService) Enabled() bool {
	return es.enabled
}

// SendWelcomeEmail greets a freshly registered user.
func (es *EmailService) SendWelcomeEmail(email, username string) error {
	if !es.enabled {
		logger.Log.WithField("component", "email").Debugf("SMTP not configured, skipping welcome mail for %s", email)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Motor API")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Welcome</title>
</head>
<body>
    <h2>Hello %s!</h2>
    <p>Your account has been created. You can now upload a profile picture and browse the bike catalog.</p>
</body>
</html>`, username)

	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
