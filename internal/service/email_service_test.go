package service

import (
	"errors"
	"testing"

	"github.com/shopkart-next/internal/config"
)

func TestSendNotificationEmailDisabled(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: false})
	err := svc.SendNotificationEmail("ops@example.com", "Product Created", "body")
	if !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("want ErrEmailServiceDisabled got %v", err)
	}
}

func TestSendNotificationEmailNotConfigured(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{Enabled: true})
	err := svc.SendNotificationEmail("ops@example.com", "Product Created", "body")
	if !errors.Is(err, ErrEmailServiceNotConfigured) {
		t.Fatalf("want ErrEmailServiceNotConfigured got %v", err)
	}
}

func TestSendNotificationEmailInvalidRecipient(t *testing.T) {
	svc := NewEmailService(&config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
	})
	err := svc.SendNotificationEmail("not-an-address", "Product Created", "body")
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "direct keyword", err: errors.New("550 5.1.1 No such recipient here"), want: true},
		{name: "user unknown", err: errors.New("user unknown in virtual mailbox table"), want: true},
		{name: "550 with hint", err: errors.New("550 requested action not taken: mailbox busy"), want: true},
		{name: "transient", err: errors.New("421 service not available"), want: false},
		{name: "unrelated", err: errors.New("dial tcp: connection refused"), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tc.err); got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}
