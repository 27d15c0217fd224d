package maintenance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gearlog/gearlog-backend/bike"
)

func testBike(name string) bike.Bike {
	return bike.Bike{ID: uuid.New(), Name: name}
}

func bikeRecord(b bike.Bike, typeName string, performed time.Time) Record {
	return Record{
		ID:          uuid.New(),
		BikeID:      b.ID,
		TypeName:    typeName,
		PerformedAt: performed,
		CreatedAt:   performed,
	}
}

func TestComputeAlerts_EmitsOnlySoonAndOverdue(t *testing.T) {
	today := date(2024, time.June, 1)
	b := testBike("Commuter")
	chainLube := intervalType(100)

	records := []Record{
		bikeRecord(b, "Chain lube", today.AddDate(0, 0, -10)), // ok
	}
	alerts := ComputeAlerts(today, []bike.Bike{b}, []Type{chainLube}, records, nil)
	assert.Empty(t, alerts)

	records[0].PerformedAt = today.AddDate(0, 0, -80) // soon
	alerts = ComputeAlerts(today, []bike.Bike{b}, []Type{chainLube}, records, nil)
	require.Len(t, alerts, 1)
	assert.Equal(t, StatusSoon, alerts[0].Status)
}

func TestComputeAlerts_NoHistoryNeverAlerts(t *testing.T) {
	today := date(2024, time.June, 1)
	b := testBike("Commuter")

	alerts := ComputeAlerts(today, []bike.Bike{b}, []Type{intervalType(30)}, nil, nil)
	assert.Empty(t, alerts)
}

func TestComputeAlerts_IntervalLessTypeIsExempt(t *testing.T) {
	today := date(2024, time.June, 1)
	b := testBike("Commuter")
	noInterval := Type{ID: uuid.New(), Name: "True wheel"}

	// Even an ancient record never alerts for an interval-less type.
	records := []Record{bikeRecord(b, "True wheel", date(2019, time.January, 1))}
	alerts := ComputeAlerts(today, []bike.Bike{b}, []Type{noInterval}, records, nil)
	assert.Empty(t, alerts)
}

func TestComputeAlerts_OptOutSuppression(t *testing.T) {
	today := date(2024, time.June, 1)
	b := testBike("Commuter")
	chainLube := intervalType(30)

	records := []Record{bikeRecord(b, "Chain lube", today.AddDate(0, 0, -90))}

	// Explicit false suppresses the type for every bike.
	prefs := map[uuid.UUID]bool{chainLube.ID: false}
	alerts := ComputeAlerts(today, []bike.Bike{b}, []Type{chainLube}, records, prefs)
	assert.Empty(t, alerts)

	// Removing the override restores the default inclusion; explicit true
	// behaves the same as absence.
	for _, prefs := range []map[uuid.UUID]bool{nil, {chainLube.ID: true}} {
		alerts = ComputeAlerts(today, []bike.Bike{b}, []Type{chainLube}, records, prefs)
		assert.Len(t, alerts, 1)
	}
}

func TestComputeAlerts_MostRecentRecordWins(t *testing.T) {
	today := date(2024, time.June, 20)
	b := testBike("Commuter")
	chainLube := intervalType(30)

	// The January record alone would be overdue; the June one keeps it ok.
	records := []Record{
		bikeRecord(b, "Chain lube", date(2024, time.January, 1)),
		bikeRecord(b, "Chain lube", date(2024, time.June, 1)),
	}
	alerts := ComputeAlerts(today, []bike.Bike{b}, []Type{chainLube}, records, nil)
	assert.Empty(t, alerts)
}

func TestComputeAlerts_SameDateTieBreakByCreatedAt(t *testing.T) {
	performed := date(2024, time.January, 1)
	older := Record{ID: uuid.New(), PerformedAt: performed, CreatedAt: date(2024, time.January, 1)}
	newer := Record{ID: uuid.New(), PerformedAt: performed, CreatedAt: date(2024, time.January, 2)}

	latest := latestRecords([]Record{older, newer})
	got := latest[recordKey{bikeID: older.BikeID, typeName: ""}]
	require.NotNil(t, got)
	assert.Equal(t, newer.ID, got.ID)

	// Input order must not matter.
	latest = latestRecords([]Record{newer, older})
	got = latest[recordKey{bikeID: older.BikeID, typeName: ""}]
	require.NotNil(t, got)
	assert.Equal(t, newer.ID, got.ID)
}

func TestComputeAlerts_SortsOverdueFirstThenBikeName(t *testing.T) {
	today := date(2024, time.June, 1)
	zeta := testBike("Zeta")
	alpha := testBike("Alpha")
	mike := testBike("Mike")
	chainLube := intervalType(100)

	records := []Record{
		bikeRecord(alpha, "Chain lube", today.AddDate(0, 0, -80)), // soon
		bikeRecord(zeta, "Chain lube", today.AddDate(0, 0, -120)), // overdue
		bikeRecord(mike, "Chain lube", today.AddDate(0, 0, -150)), // overdue
	}

	alerts := ComputeAlerts(today, []bike.Bike{zeta, alpha, mike}, []Type{chainLube}, records, nil)
	require.Len(t, alerts, 3)

	assert.Equal(t, "Mike", alerts[0].Bike.DisplayName())
	assert.Equal(t, StatusOverdue, alerts[0].Status)
	assert.Equal(t, "Zeta", alerts[1].Bike.DisplayName())
	assert.Equal(t, StatusOverdue, alerts[1].Status)
	assert.Equal(t, "Alpha", alerts[2].Bike.DisplayName())
	assert.Equal(t, StatusSoon, alerts[2].Status)
}

func TestComputeAlerts_TypeNameMatchIsExact(t *testing.T) {
	today := date(2024, time.June, 1)
	b := testBike("Commuter")
	chainLube := intervalType(30)

	// A record under a different name does not count as history for the
	// catalog type, so the pair stays at "none" and never alerts.
	records := []Record{bikeRecord(b, "chain lube", today.AddDate(0, 0, -90))}
	alerts := ComputeAlerts(today, []bike.Bike{b}, []Type{chainLube}, records, nil)
	assert.Empty(t, alerts)
}

func TestAlertCounts(t *testing.T) {
	today := date(2024, time.June, 1)
	b1 := testBike("One")
	b2 := testBike("Two")
	chainLube := intervalType(100)
	brakeBleed := Type{ID: uuid.New(), Name: "Brake bleed", DefaultIntervalDays: intPtr(100)}

	records := []Record{
		bikeRecord(b1, "Chain lube", today.AddDate(0, 0, -120)),  // overdue
		bikeRecord(b2, "Chain lube", today.AddDate(0, 0, -80)),   // soon
		bikeRecord(b1, "Brake bleed", today.AddDate(0, 0, -110)), // overdue
	}

	alerts := ComputeAlerts(today, []bike.Bike{b1, b2}, []Type{chainLube, brakeBleed}, records, nil)
	require.Len(t, alerts, 3)

	assert.Equal(t, 2, OverdueCount(alerts))
	assert.Equal(t, 1, SoonCount(alerts))

	// All enabled by default; an explicit opt-out on one type drops its
	// alerts from the email-enabled count.
	assert.Equal(t, 3, EmailEnabledCount(alerts, nil))
	assert.Equal(t, 2, EmailEnabledCount(alerts, map[uuid.UUID]bool{brakeBleed.ID: false}))
}

func intPtr(v int) *int {
	return &v
}
