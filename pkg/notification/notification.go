// Package notification delivers outbound email for the account flows:
// verification mail on signup and acknowledgements for the contact form.
package notification

import "errors"

var (
	ErrInvalidRecipient = errors.New("invalid recipient")
	ErrNotConfigured    = errors.New("mail transport not configured")
)

// Mailer sends account email. Implemented by MailNotification; handlers
// accept the interface so tests can substitute a recorder.
type Mailer interface {
	SendVerificationEmail(to, username, verifyURL string) error
	SendPlain(to, subject, body string) error
}
