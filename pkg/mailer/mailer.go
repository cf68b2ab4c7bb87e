// Package mailer sends transactional mail with a small bounded retry. Mail is
// always best-effort: callers fire it from a goroutine and booking or approval
// state never depends on delivery.
package mailer

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"ticket-portal/pkg/utils"
)

// Sender delivers one composed message. The production implementation dials
// SMTP per send; tests swap in a fake.
type Sender interface {
	Send(m *gomail.Message) error
}

type smtpSender struct {
	dialer *gomail.Dialer
}

func (s *smtpSender) Send(m *gomail.Message) error {
	return s.dialer.DialAndSend(m)
}

type Mailer struct {
	sender  Sender
	from    string
	retries int
	delay   time.Duration
	log     *zap.Logger
}

func New(cfg utils.EmailConfig, log *zap.Logger) *Mailer {
	return NewWithSender(
		&smtpSender{dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)},
		cfg.From, cfg.Retries, cfg.RetryDelay, log,
	)
}

// NewWithSender builds a Mailer around a custom Sender.
func NewWithSender(sender Sender, from string, retries int, delay time.Duration, log *zap.Logger) *Mailer {
	return &Mailer{
		sender:  sender,
		from:    from,
		retries: retries,
		delay:   delay,
		log:     log.With(zap.String("component", "mailer")),
	}
}

// send attempts delivery up to retries+1 times with a fixed delay between
// attempts, then gives up.
func (m *Mailer) send(msg *gomail.Message) error {
	var err error
	for attempt := 0; attempt <= m.retries; attempt++ {
		if err = m.sender.Send(msg); err == nil {
			return nil
		}
		m.log.Warn("Mail delivery failed",
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", m.retries+1),
			zap.Error(err))
		if attempt < m.retries {
			time.Sleep(m.delay)
		}
	}
	return err
}

func (m *Mailer) compose(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}

func (m *Mailer) SendOTP(to, code string, expiry time.Duration) error {
	body := fmt.Sprintf(`<p>Dear user,</p>
<p>Your one-time passcode is: <strong>%s</strong></p>
<p>It is valid for %d minutes.</p>`, code, int(expiry/time.Minute))
	return m.send(m.compose(to, "Your one-time passcode | Ticket Portal", body))
}

func (m *Mailer) SendUserApproved(to, name string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Your profile has been approved. You can now book tickets on the portal.</p>`, name)
	return m.send(m.compose(to, "Profile approved | Ticket Portal", body))
}

func (m *Mailer) SendDependentApproved(to, name, dependentName string) error {
	body := fmt.Sprintf(`<p>Dear %s,</p>
<p>Your dependent <strong>%s</strong> has been approved and can be included in bookings.</p>`, name, dependentName)
	return m.send(m.compose(to, "Dependent approved | Ticket Portal", body))
}

// BookingMail carries the confirmation details. Seats are display labels.
type BookingMail struct {
	MovieTitle    string
	ShowDate      string
	ShowTime      string
	SeatLabels    []string
	ExtraGuests   int
	PaymentStatus string
}

func (m *Mailer) SendBookingConfirmed(to string, data BookingMail) error {
	body := fmt.Sprintf(`<p>Your booking is confirmed.</p>
<p>%s — %s %s<br>Seats: %s<br>Extra guests: %d<br>Payment: %s</p>`,
		data.MovieTitle, data.ShowDate, data.ShowTime,
		strings.Join(data.SeatLabels, ", "), data.ExtraGuests, data.PaymentStatus)
	return m.send(m.compose(to, "Booking confirmed | Ticket Portal", body))
}
