package utils

import (
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// Mailer sends patient-facing mail over SMTP. A nil Mailer drops every
// message, so mail stays optional in development and tests.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

// NewMailerFromEnv returns nil when SMTP_HOST is not configured.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &Mailer{
		host: host,
		port: port,
		user: os.Getenv("EMAIL_USER"),
		pass: os.Getenv("EMAIL_PASS"),
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}
