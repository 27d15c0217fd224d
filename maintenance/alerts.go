package maintenance

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/bike"
)

// Alert is a derived (bike, type) pair currently due soon or overdue.
// Produced fresh on every read, never stored.
type Alert struct {
	Bike       bike.Bike
	Type       Type
	LastRecord *Record
	Status     Status
	NextDate   *time.Time
	DaysLeft   *int
}

type recordKey struct {
	bikeID   uuid.UUID
	typeName string
}

// ComputeAlerts cross-products a user's bikes against every interval-bearing
// maintenance type, evaluates each pair via ComputeStatus using the most
// recent matching record, and returns the active (soon/overdue) alerts.
//
// prefs holds the user's explicit notification overrides keyed by type ID.
// A missing entry means opted in; only an explicit false suppresses a type.
//
// The result is sorted overdue-first, then ascending by bike display name.
func ComputeAlerts(today time.Time, bikes []bike.Bike, types []Type, records []Record, prefs map[uuid.UUID]bool) []Alert {
	latest := latestRecords(records)

	var alerts []Alert
	for _, typ := range types {
		if typ.DefaultIntervalDays == nil || *typ.DefaultIntervalDays == 0 {
			continue
		}
		if enabled, ok := prefs[typ.ID]; ok && !enabled {
			continue
		}

		for _, b := range bikes {
			last := latest[recordKey{bikeID: b.ID, typeName: typ.Name}]
			res := ComputeStatus(typ, last, today)
			if res.Status != StatusSoon && res.Status != StatusOverdue {
				continue
			}
			alerts = append(alerts, Alert{
				Bike:       b,
				Type:       typ,
				LastRecord: last,
				Status:     res.Status,
				NextDate:   res.NextDate,
				DaysLeft:   res.DaysLeft,
			})
		}
	}

	slices.SortStableFunc(alerts, func(a, b Alert) int {
		if a.Status != b.Status {
			if a.Status == StatusOverdue {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Bike.DisplayName(), b.Bike.DisplayName())
	})

	return alerts
}

// latestRecords picks the single most recent record per (bike, type name).
// Selection is an explicit max rather than a dependency on query ordering.
// Ties on performed_at fall to the later created_at, then the greater ID.
func latestRecords(records []Record) map[recordKey]*Record {
	latest := make(map[recordKey]*Record, len(records))
	for i := range records {
		rec := &records[i]
		key := recordKey{bikeID: rec.BikeID, typeName: rec.TypeName}
		cur, ok := latest[key]
		if !ok || moreRecent(rec, cur) {
			latest[key] = rec
		}
	}
	return latest
}

func moreRecent(a, b *Record) bool {
	ad, bd := midnight(a.PerformedAt), midnight(b.PerformedAt)
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}

// OverdueCount counts alerts in overdue status.
func OverdueCount(alerts []Alert) int {
	return countStatus(alerts, StatusOverdue)
}

// SoonCount counts alerts in soon status.
func SoonCount(alerts []Alert) int {
	return countStatus(alerts, StatusSoon)
}

func countStatus(alerts []Alert, s Status) int {
	n := 0
	for _, a := range alerts {
		if a.Status == s {
			n++
		}
	}
	return n
}

// EmailEnabledCount counts alerts whose type's notification preference
// resolves to enabled. Anything other than an explicit false counts.
func EmailEnabledCount(alerts []Alert, prefs map[uuid.UUID]bool) int {
	n := 0
	for _, a := range alerts {
		if enabled, ok := prefs[a.Type.ID]; ok && !enabled {
			continue
		}
		n++
	}
	return n
}
