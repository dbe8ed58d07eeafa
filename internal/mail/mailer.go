// Package mail composes and sends the transactional notifications for the
// reservation workflow. Sending is best-effort by contract: callers log
// failures and never surface them to the request.
package mail

import (
	"fmt"
	"html"
	"log"

	"gopkg.in/gomail.v2"

	"pawmart/internal/config"
)

// Notifier is the outbound-email seam; tests substitute a recorder.
type Notifier interface {
	Send(to, subject, htmlBody string) error
}

type SMTP struct {
	host string
	port int
	user string
	pass string
	from string
}

// New returns an SMTP notifier, or a log-only one when no host is
// configured (local development).
func New(cfg config.Config) Notifier {
	if cfg.SMTPHost == "" {
		log.Println("[mail] SMTP_HOST not set, notifications will only be logged")
		return logOnly{}
	}
	return &SMTP{host: cfg.SMTPHost, port: cfg.SMTPPort, user: cfg.SMTPUser, pass: cfg.SMTPPass, from: cfg.MailFrom}
}

func (m *SMTP) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	return d.DialAndSend(msg)
}

type logOnly struct{}

func (logOnly) Send(to, subject, _ string) error {
	log.Printf("[mail] (dev) to=%s subject=%q", to, subject)
	return nil
}

// ReservationStatusEmail returns the template for a status transition.
// Only confirmed and cancelled have templates; a transition to any other
// status is persisted without a notification.
func ReservationStatusEmail(status, name, date string) (subject, body string, ok bool) {
	n := html.EscapeString(name)
	d := html.EscapeString(date)
	switch status {
	case "confirmed":
		return "Your appointment is confirmed",
			fmt.Sprintf(`<p>Hi %s,</p><p>Your appointment on <b>%s</b> has been confirmed. We look forward to seeing you!</p><p>— The PawMart team</p>`, n, d),
			true
	case "cancelled":
		return "Your appointment was cancelled",
			fmt.Sprintf(`<p>Hi %s,</p><p>Unfortunately your appointment on <b>%s</b> has been cancelled. Please get in touch to reschedule.</p><p>— The PawMart team</p>`, n, d),
			true
	}
	return "", "", false
}

// ReservationRemovedEmail is sent whenever a reservation record is
// deleted, regardless of its prior status.
func ReservationRemovedEmail(name string) (subject, body string) {
	n := html.EscapeString(name)
	return "Your appointment was cancelled",
		fmt.Sprintf(`<p>Hi %s,</p><p>Your appointment was cancelled because the reservation was removed. Please contact us if you would like to rebook.</p><p>— The PawMart team</p>`, n)
}
