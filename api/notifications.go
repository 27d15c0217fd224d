package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/maintenance"
	"github.com/gearlog/gearlog-backend/summary"
)

type preferenceResponse struct {
	TypeID      uuid.UUID `json:"typeId"`
	TypeName    string    `json:"typeName"`
	NotifyEmail bool      `json:"notifyEmail"`
}

// getPreferencesHandler lists the effective preference for every type in the
// catalog. Types without an explicit row resolve to enabled.
func (a *API) getPreferencesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	types, err := a.mr.GetTypes(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get maintenance types", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	prefs, err := a.mr.GetPreferences(c, u.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get notification preferences", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]preferenceResponse, 0, len(types))
	for _, t := range types {
		enabled := true
		if v, ok := prefs[t.ID]; ok {
			enabled = v
		}
		responses = append(responses, preferenceResponse{
			TypeID:      t.ID,
			TypeName:    t.Name,
			NotifyEmail: enabled,
		})
	}
	c.JSON(http.StatusOK, responses)
}

type preferenceRequest struct {
	NotifyEmail *bool `json:"notifyEmail" binding:"required"`
}

func (a *API) putPreferenceHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	typeID, err := uuid.Parse(c.Param("typeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid typeId"})
		return
	}

	var req preferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	// Reject unknown types so a stale client can't write orphan rows.
	if _, err := a.mr.GetType(c, typeID); err != nil {
		if errors.Is(err, maintenance.ErrTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "TYPE_NOT_FOUND", "message": "Maintenance type not found"})
			return
		}
		logger.ErrorContext(c, "failed to get maintenance type", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if err := a.mr.UpsertPreference(c, u.ID, typeID, *req.NotifyEmail); err != nil {
		logger.ErrorContext(c, "failed to upsert notification preference", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, preferenceResponse{TypeID: typeID, NotifyEmail: *req.NotifyEmail})
}

// deletePreferenceHandler removes the explicit row, restoring the opted-in
// default.
func (a *API) deletePreferenceHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	typeID, err := uuid.Parse(c.Param("typeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid typeId"})
		return
	}

	if err := a.mr.DeletePreference(c, u.ID, typeID); err != nil {
		logger.ErrorContext(c, "failed to delete notification preference", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// sendSummaryHandler recomputes the caller's alerts and emails them now.
// Zero alerts is a successful no-op, not an error.
func (a *API) sendSummaryHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	res, err := a.disp.SendSummary(c, u.ID)
	if err != nil {
		if errors.Is(err, summary.ErrNoEmailAddress) {
			c.JSON(http.StatusConflict, gin.H{"code": "NO_EMAIL_ADDRESS", "message": "No email address on file"})
			return
		}
		logger.ErrorContext(c, "failed to send summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, res)
}
