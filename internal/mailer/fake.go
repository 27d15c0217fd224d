package mailer

import (
	"context"

	"github.com/gearlog/gearlog-backend/maintenance"
)

// SentSummary is one delivery recorded by the fake.
type SentSummary struct {
	Recipient string
	Alerts    []maintenance.Alert
}

// FakeMailer is a test implementation of Mailer.
type FakeMailer struct {
	Sent []SentSummary
	// FailFor makes sends to a recipient fail, for exercising batch
	// failure isolation.
	FailFor map[string]bool
}

func NewFakeMailer() *FakeMailer {
	return &FakeMailer{
		FailFor: make(map[string]bool),
	}
}

func (m *FakeMailer) SendSummary(ctx context.Context, recipient string, alerts []maintenance.Alert) error {
	if m.FailFor[recipient] {
		return ErrSendFailed
	}
	m.Sent = append(m.Sent, SentSummary{Recipient: recipient, Alerts: alerts})
	return nil
}
