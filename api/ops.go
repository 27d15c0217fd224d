package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/maintenance"
)

// runAllSummariesHandler is the scheduler-facing batch trigger. Safe to
// re-run: unchanged data re-sends or re-skips identically.
func (a *API) runAllSummariesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	res, err := a.disp.SendAllSummaries(c)
	if err != nil {
		logger.ErrorContext(c, "batch summary run failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, res)
}

type maintenanceTypeRequest struct {
	Name                string `json:"name" binding:"required"`
	DefaultIntervalDays *int   `json:"defaultIntervalDays"`
	DefaultIntervalKm   *int   `json:"defaultIntervalKm"`
}

func (a *API) createMaintenanceTypeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req maintenanceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	t := &maintenance.Type{
		ID:                  uuid.New(),
		Name:                req.Name,
		DefaultIntervalDays: req.DefaultIntervalDays,
		DefaultIntervalKm:   req.DefaultIntervalKm,
	}
	if err := a.mr.CreateType(c, t); err != nil {
		logger.ErrorContext(c, "failed to create maintenance type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, toTypeResponse(*t))
}

func (a *API) updateMaintenanceTypeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := uuid.Parse(c.Param("typeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid typeId"})
		return
	}

	var req maintenanceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	t := &maintenance.Type{
		ID:                  id,
		Name:                req.Name,
		DefaultIntervalDays: req.DefaultIntervalDays,
		DefaultIntervalKm:   req.DefaultIntervalKm,
	}
	err = a.mr.UpdateType(c, t)
	if err != nil {
		if errors.Is(err, maintenance.ErrTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "TYPE_NOT_FOUND", "message": "Maintenance type not found"})
			return
		}
		logger.ErrorContext(c, "failed to update maintenance type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toTypeResponse(*t))
}
