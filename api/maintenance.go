package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/maintenance"
)

type maintenanceTypeResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	DefaultIntervalDays *int      `json:"defaultIntervalDays,omitempty"`
	DefaultIntervalKm   *int      `json:"defaultIntervalKm,omitempty"`
}

func toTypeResponse(t maintenance.Type) maintenanceTypeResponse {
	return maintenanceTypeResponse{
		ID:                  t.ID,
		Name:                t.Name,
		DefaultIntervalDays: t.DefaultIntervalDays,
		DefaultIntervalKm:   t.DefaultIntervalKm,
	}
}

func (a *API) getMaintenanceTypesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	types, err := a.mr.GetTypes(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get maintenance types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]maintenanceTypeResponse, 0, len(types))
	for _, t := range types {
		responses = append(responses, toTypeResponse(t))
	}
	c.JSON(http.StatusOK, responses)
}

type recordResponse struct {
	ID          uuid.UUID `json:"id"`
	BikeID      uuid.UUID `json:"bikeId"`
	TypeName    string    `json:"typeName"`
	PerformedAt string    `json:"performedAt"`
	OdometerKm  *int      `json:"odometerKm,omitempty"`
	CostCents   *int      `json:"costCents,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

const dateFormat = "2006-01-02"

func toRecordResponse(r maintenance.Record) recordResponse {
	return recordResponse{
		ID:          r.ID,
		BikeID:      r.BikeID,
		TypeName:    r.TypeName,
		PerformedAt: r.PerformedAt.Format(dateFormat),
		OdometerKm:  r.OdometerKm,
		CostCents:   r.CostCents,
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
	}
}

type recordRequest struct {
	TypeName    string `json:"typeName" binding:"required"`
	PerformedAt string `json:"performedAt" binding:"required"`
	OdometerKm  *int   `json:"odometerKm"`
	CostCents   *int   `json:"costCents"`
	Notes       string `json:"notes"`
}

func (a *API) getRecordsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}
	b, ok := a.bikeByParam(c, u.ID)
	if !ok {
		return
	}

	records, err := a.mr.GetRecordsByBike(c, b.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get maintenance records", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]recordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, toRecordResponse(r))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) createRecordHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}
	b, ok := a.bikeByParam(c, u.ID)
	if !ok {
		return
	}

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	performedAt, err := time.Parse(dateFormat, req.PerformedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid performedAt date, want YYYY-MM-DD"})
		return
	}

	rec := &maintenance.Record{
		ID:          uuid.New(),
		BikeID:      b.ID,
		TypeName:    req.TypeName,
		PerformedAt: performedAt,
		OdometerKm:  req.OdometerKm,
		CostCents:   req.CostCents,
		Notes:       req.Notes,
	}
	if err := a.mr.CreateRecord(c, rec); err != nil {
		logger.ErrorContext(c, "failed to create maintenance record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, toRecordResponse(*rec))
}

func (a *API) updateRecordHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("recordId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid recordId"})
		return
	}

	var req recordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	performedAt, err := time.Parse(dateFormat, req.PerformedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid performedAt date, want YYYY-MM-DD"})
		return
	}

	rec := &maintenance.Record{
		ID:          id,
		TypeName:    req.TypeName,
		PerformedAt: performedAt,
		OdometerKm:  req.OdometerKm,
		CostCents:   req.CostCents,
		Notes:       req.Notes,
	}
	err = a.mr.UpdateRecord(c, rec, u.ID)
	if err != nil {
		if errors.Is(err, maintenance.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "RECORD_NOT_FOUND", "message": "Maintenance record not found"})
			return
		}
		logger.ErrorContext(c, "failed to update maintenance record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toRecordResponse(*rec))
}

func (a *API) deleteRecordHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("recordId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid recordId"})
		return
	}

	err = a.mr.DeleteRecord(c, id, u.ID)
	if err != nil {
		if errors.Is(err, maintenance.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "RECORD_NOT_FOUND", "message": "Maintenance record not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete maintenance record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}
