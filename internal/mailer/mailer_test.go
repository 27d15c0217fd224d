package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gearlog/gearlog-backend/bike"
	"github.com/gearlog/gearlog-backend/maintenance"
)

func testAlerts() []maintenance.Alert {
	next := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)
	overdueBy := -12
	dueIn := 5
	return []maintenance.Alert{
		{
			Bike:     bike.Bike{Brand: "Surly", Model: "Straggler"},
			Type:     maintenance.Type{Name: "Chain lube"},
			Status:   maintenance.StatusOverdue,
			NextDate: &next,
			DaysLeft: &overdueBy,
		},
		{
			Bike:     bike.Bike{Name: "Commuter"},
			Type:     maintenance.Type{Name: "Brake bleed"},
			Status:   maintenance.StatusSoon,
			DaysLeft: &dueIn,
		},
	}
}

func TestRenderSummary(t *testing.T) {
	body := renderSummary(testAlerts())

	assert.Contains(t, body, "1 overdue and 1 upcoming")
	assert.Contains(t, body, "Surly Straggler: Chain lube is overdue by 12 day(s)")
	assert.Contains(t, body, "(due 2024-05-20)")
	assert.Contains(t, body, "Commuter: Brake bleed is due in 5 day(s)")
}

func TestSummarySubject(t *testing.T) {
	assert.Equal(t, "gearlog: 1 maintenance task(s) overdue", summarySubject(testAlerts()))

	soonOnly := testAlerts()[1:]
	assert.Equal(t, "gearlog: 1 maintenance task(s) due soon", summarySubject(soonOnly))
}
