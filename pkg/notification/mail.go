package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/code-100-precent/LingChat/pkg/utils"
)

// MailConfig holds the SMTP transport settings
type MailConfig struct {
	Host     string `json:"host"`
	Port     int64  `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// MailConfigFromEnv reads the SMTP settings from the environment
func MailConfigFromEnv() MailConfig {
	return MailConfig{
		Host:     utils.GetEnv("MAIL_HOST"),
		Port:     utils.GetIntEnv("MAIL_PORT"),
		Username: utils.GetEnv("MAIL_USERNAME"),
		Password: utils.GetEnv("MAIL_PASSWORD"),
		From:     utils.GetEnv("MAIL_FROM"),
	}
}

// MailNotification sends email over SMTP with STARTTLS.
type MailNotification struct {
	Config MailConfig
}

// NewMailNotification creates a new email notification instance
func NewMailNotification(config MailConfig) *MailNotification {
	return &MailNotification{Config: config}
}

const verificationHTML = `<html>
<body style="font-family: sans-serif">
  <h2>Welcome, {{.Username}}!</h2>
  <p>Confirm your email address to activate your account:</p>
  <p><a href="{{.VerifyURL}}">Verify my email</a></p>
  <p>If you did not sign up, you can ignore this message.</p>
</body>
</html>`

// SendVerificationEmail renders the verification template and mails it.
func (m *MailNotification) SendVerificationEmail(to, username, verifyURL string) error {
	if m.Config.Host == "" {
		return ErrNotConfigured
	}
	if to == "" {
		return ErrInvalidRecipient
	}

	tmpl, err := template.New("verify").Parse(verificationHTML)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	data := struct {
		Username  string
		VerifyURL string
	}{Username: username, VerifyURL: verifyURL}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	return m.sendHTML(to, "Verify your email", body.String())
}

// SendPlain sends a plain text email
func (m *MailNotification) SendPlain(to, subject, body string) error {
	if m.Config.Host == "" {
		return ErrNotConfigured
	}
	if to == "" {
		return ErrInvalidRecipient
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.Config.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.Config.Host, m.Config.Port)
	auth := smtp.PlainAuth("", m.Config.Username, m.Config.Password, m.Config.Host)
	return smtp.SendMail(addr, auth, m.Config.From, []string{to}, []byte(msg))
}

func (m *MailNotification) sendHTML(to, subject, htmlBody string) error {
	msg := "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", m.Config.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + htmlBody

	addr := fmt.Sprintf("%s:%d", m.Config.Host, m.Config.Port)
	auth := smtp.PlainAuth("", m.Config.Username, m.Config.Password, m.Config.Host)
	// smtp.SendMail only speaks STARTTLS; implicit-TLS port 465 needs a
	// different transport.
	return smtp.SendMail(addr, auth, m.Config.From, []string{to}, []byte(msg))
}
