// Package mailer delivers maintenance summary emails. The core only sees the
// Mailer interface; SMTP wiring lives in the process entry point.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gearlog/gearlog-backend/maintenance"
)

var ErrSendFailed = errors.New("failed to send summary email")

// Mailer renders and delivers one maintenance summary notice. No retry
// guarantee; a failed send is the caller's to count.
type Mailer interface {
	SendSummary(ctx context.Context, recipient string, alerts []maintenance.Alert) error
}

// renderSummary produces the plain-text body. Alerts arrive already sorted
// overdue-first.
func renderSummary(alerts []maintenance.Alert) string {
	var b strings.Builder

	overdue := maintenance.OverdueCount(alerts)
	soon := maintenance.SoonCount(alerts)

	fmt.Fprintf(&b, "You have %d overdue and %d upcoming maintenance task(s).\n\n", overdue, soon)

	for _, a := range alerts {
		switch a.Status {
		case maintenance.StatusOverdue:
			days := 0
			if a.DaysLeft != nil {
				days = -*a.DaysLeft
			}
			fmt.Fprintf(&b, "- %s: %s is overdue by %d day(s)", a.Bike.DisplayName(), a.Type.Name, days)
		case maintenance.StatusSoon:
			days := 0
			if a.DaysLeft != nil {
				days = *a.DaysLeft
			}
			fmt.Fprintf(&b, "- %s: %s is due in %d day(s)", a.Bike.DisplayName(), a.Type.Name, days)
		}
		if a.NextDate != nil {
			fmt.Fprintf(&b, " (due %s)", a.NextDate.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nLog the work in gearlog to clear these reminders.\n")
	return b.String()
}

func summarySubject(alerts []maintenance.Alert) string {
	if n := maintenance.OverdueCount(alerts); n > 0 {
		return fmt.Sprintf("gearlog: %d maintenance task(s) overdue", n)
	}
	return fmt.Sprintf("gearlog: %d maintenance task(s) due soon", len(alerts))
}
