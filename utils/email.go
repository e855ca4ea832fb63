package utils

import (
	"crypto/tls"

	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text notifications over SMTP.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	from := m.From
	if from == "" {
		from = m.Username
	}
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	d.TLSConfig = &tls.Config{ServerName: m.Host, MinVersion: tls.VersionTLS12}

	return d.DialAndSend(msg)
}
