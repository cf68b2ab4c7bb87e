package mailer

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	failures int
	attempts int
}

func (f *fakeSender) Send(m *gomail.Message) error {
	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("smtp unavailable")
	}
	return nil
}

func newTestMailer(sender Sender, retries int) *Mailer {
	return NewWithSender(sender, "portal@example.com", retries, 0, zap.NewNop())
}

func TestSendRetriesThenSucceeds(t *testing.T) {
	sender := &fakeSender{failures: 2}
	m := newTestMailer(sender, 2)

	if err := m.SendOTP("user@example.com", "123456", 5*time.Minute); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if sender.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", sender.attempts)
	}
}

func TestSendGivesUpAfterRetriesExhausted(t *testing.T) {
	sender := &fakeSender{failures: 10}
	m := newTestMailer(sender, 2)

	if err := m.SendUserApproved("user@example.com", "Jo"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if sender.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", sender.attempts)
	}
}

func TestSendNoRetryOnFirstSuccess(t *testing.T) {
	sender := &fakeSender{}
	m := newTestMailer(sender, 2)

	if err := m.SendBookingConfirmed("user@example.com", BookingMail{
		MovieTitle:    "Top Gun",
		ShowDate:      "2026-09-01",
		ShowTime:      "18:00",
		SeatLabels:    []string{"A1", "A2"},
		ExtraGuests:   1,
		PaymentStatus: "Pay at Counter",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sender.attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", sender.attempts)
	}
}
