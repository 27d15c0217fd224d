// Package summary turns a user's active maintenance alerts into an outbound
// email: once on demand, or for every registered user on a schedule.
package summary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/bike"
	"github.com/gearlog/gearlog-backend/internal/mailer"
	"github.com/gearlog/gearlog-backend/maintenance"
	"github.com/gearlog/gearlog-backend/user"
)

var ErrNoEmailAddress = errors.New("user has no email address on file")

// UserSource provides the users to summarise for.
type UserSource interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
}

// BikeSource provides a user's bikes.
type BikeSource interface {
	GetBikesByUser(ctx context.Context, userID uuid.UUID) ([]bike.Bike, error)
}

// MaintenanceSource provides the shared type catalog plus per-user records
// and preferences.
type MaintenanceSource interface {
	GetTypes(ctx context.Context) ([]maintenance.Type, error)
	GetRecordsByBikes(ctx context.Context, bikeIDs []uuid.UUID) ([]maintenance.Record, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error)
}

// Summary is the result of one interactive send.
type Summary struct {
	Sent       bool   `json:"sent"`
	AlertCount int    `json:"alertCount"`
	Recipient  string `json:"recipient,omitempty"`
}

// BatchResult counts the outcome of one batch run.
type BatchResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}

// Dispatcher recomputes alerts and hands non-empty lists to the mailer.
// Stateless between invocations; re-running before data changes re-sends or
// re-skips identically.
type Dispatcher struct {
	users  UserSource
	bikes  BikeSource
	maint  MaintenanceSource
	mailer mailer.Mailer
	logger *slog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

func NewDispatcher(users UserSource, bikes BikeSource, maint MaintenanceSource, m mailer.Mailer, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		users:  users,
		bikes:  bikes,
		maint:  maint,
		mailer: m,
		logger: logger,
		now:    time.Now,
	}
}

// SendSummary recomputes one user's alerts at request time and delivers them.
// An empty alert list is a successful no-op: no email goes out when there is
// nothing to report.
func (d *Dispatcher) SendSummary(ctx context.Context, userID uuid.UUID) (Summary, error) {
	u, err := d.users.GetUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	alerts, err := d.computeAlerts(ctx, u.ID)
	if err != nil {
		return Summary{}, err
	}
	if len(alerts) == 0 {
		return Summary{Sent: false, AlertCount: 0}, nil
	}

	if !u.Email.Valid || u.Email.String == "" {
		return Summary{Sent: false, AlertCount: len(alerts)}, ErrNoEmailAddress
	}

	if err := d.mailer.SendSummary(ctx, u.Email.String, alerts); err != nil {
		summariesFailed.Inc()
		return Summary{Sent: false, AlertCount: len(alerts), Recipient: u.Email.String}, err
	}

	summariesSent.Inc()
	return Summary{Sent: true, AlertCount: len(alerts), Recipient: u.Email.String}, nil
}

// SendAllSummaries processes every registered user independently. A user with
// no bikes, no active alerts or no email address is skipped; a failure for
// one user is counted and never aborts the rest of the run.
func (d *Dispatcher) SendAllSummaries(ctx context.Context) (BatchResult, error) {
	users, err := d.users.ListUsers(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	// The type catalog is shared; fetch it once for the whole run.
	types, err := d.maint.GetTypes(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	today := d.now()
	var res BatchResult
	for _, u := range users {
		outcome, err := d.summariseUser(ctx, u, types, today)
		if err != nil {
			res.Errors++
			d.logger.ErrorContext(ctx, "summary failed for user",
				"userId", u.ID, "error", err)
			continue
		}
		if outcome {
			res.Sent++
		} else {
			res.Skipped++
		}
	}

	d.logger.InfoContext(ctx, "batch summary run complete",
		"sent", res.Sent, "skipped", res.Skipped, "errors", res.Errors)
	return res, nil
}

// summariseUser handles one user's turn inside the batch run. Returns true
// when an email went out, false for a skip.
func (d *Dispatcher) summariseUser(ctx context.Context, u user.User, types []maintenance.Type, today time.Time) (bool, error) {
	bikes, err := d.bikes.GetBikesByUser(ctx, u.ID)
	if err != nil {
		return false, err
	}
	if len(bikes) == 0 {
		summariesSkipped.Inc()
		return false, nil
	}

	alerts, err := d.alertsFor(ctx, u.ID, bikes, types, today)
	if err != nil {
		return false, err
	}
	if len(alerts) == 0 {
		summariesSkipped.Inc()
		return false, nil
	}

	if !u.Email.Valid || u.Email.String == "" {
		summariesSkipped.Inc()
		return false, nil
	}

	if err := d.mailer.SendSummary(ctx, u.Email.String, alerts); err != nil {
		summariesFailed.Inc()
		return false, err
	}

	summariesSent.Inc()
	return true, nil
}

func (d *Dispatcher) computeAlerts(ctx context.Context, userID uuid.UUID) ([]maintenance.Alert, error) {
	types, err := d.maint.GetTypes(ctx)
	if err != nil {
		return nil, err
	}

	bikes, err := d.bikes.GetBikesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bikes) == 0 {
		return nil, nil
	}

	return d.alertsFor(ctx, userID, bikes, types, d.now())
}

func (d *Dispatcher) alertsFor(ctx context.Context, userID uuid.UUID, bikes []bike.Bike, types []maintenance.Type, today time.Time) ([]maintenance.Alert, error) {
	bikeIDs := make([]uuid.UUID, len(bikes))
	for i, b := range bikes {
		bikeIDs[i] = b.ID
	}

	records, err := d.maint.GetRecordsByBikes(ctx, bikeIDs)
	if err != nil {
		return nil, err
	}

	prefs, err := d.maint.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	return maintenance.ComputeAlerts(today, bikes, types, records, prefs), nil
}
