package utilities

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends best-effort notification mail. A zero-valued Mailer is
// disabled and silently drops everything.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

func NewMailer(host string, port int, user, pass string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.host != ""
}

// SendRegistrationConfirmation mails the user a confirmation for a new
// event registration.
func (m *Mailer) SendRegistrationConfirmation(toEmail, eventName, eventDate string) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Registration Confirmed")
	msg.SetBody("text/html", fmt.Sprintf(
		"<h3>You're registered!</h3><p><b>%s</b></p><p>Date: %s</p>", eventName, eventDate))

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}
