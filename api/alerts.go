package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/maintenance"
)

type alertResponse struct {
	BikeID          uuid.UUID          `json:"bikeId"`
	BikeName        string             `json:"bikeName"`
	TypeID          uuid.UUID          `json:"typeId"`
	TypeName        string             `json:"typeName"`
	Status          maintenance.Status `json:"status"`
	LastPerformedAt *string            `json:"lastPerformedAt,omitempty"`
	NextDate        *string            `json:"nextDate,omitempty"`
	DaysLeft        *int               `json:"daysLeft,omitempty"`
}

type alertsResponse struct {
	Alerts            []alertResponse `json:"alerts"`
	OverdueCount      int             `json:"overdueCount"`
	SoonCount         int             `json:"soonCount"`
	EmailEnabledCount int             `json:"emailEnabledCount"`
}

func toAlertResponse(a maintenance.Alert) alertResponse {
	resp := alertResponse{
		BikeID:   a.Bike.ID,
		BikeName: a.Bike.DisplayName(),
		TypeID:   a.Type.ID,
		TypeName: a.Type.Name,
		Status:   a.Status,
		DaysLeft: a.DaysLeft,
	}
	if a.LastRecord != nil {
		s := a.LastRecord.PerformedAt.Format(dateFormat)
		resp.LastPerformedAt = &s
	}
	if a.NextDate != nil {
		s := a.NextDate.Format(dateFormat)
		resp.NextDate = &s
	}
	return resp
}

// getAlertsHandler recomputes the caller's active alerts. Nothing here is
// persisted; every response is derived fresh.
func (a *API) getAlertsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	bikes, err := a.br.GetBikesByUser(c, u.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get bikes", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	types, err := a.mr.GetTypes(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get maintenance types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	bikeIDs := make([]uuid.UUID, len(bikes))
	for i, b := range bikes {
		bikeIDs[i] = b.ID
	}
	records, err := a.mr.GetRecordsByBikes(c, bikeIDs)
	if err != nil {
		logger.ErrorContext(c, "failed to get maintenance records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	prefs, err := a.mr.GetPreferences(c, u.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get notification preferences", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	alerts := maintenance.ComputeAlerts(time.Now(), bikes, types, records, prefs)

	resp := alertsResponse{
		Alerts:            make([]alertResponse, 0, len(alerts)),
		OverdueCount:      maintenance.OverdueCount(alerts),
		SoonCount:         maintenance.SoonCount(alerts),
		EmailEnabledCount: maintenance.EmailEnabledCount(alerts, prefs),
	}
	for _, al := range alerts {
		resp.Alerts = append(resp.Alerts, toAlertResponse(al))
	}
	c.JSON(http.StatusOK, resp)
}
