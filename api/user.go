package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/internal/middleware"
)

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// meHandler returns the caller's profile, refreshing email/name from Auth0's
// userinfo endpoint so the batch notifier has an address to send to.
func (a *API) meHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	auth0ID, ok := middleware.GetAuth0ID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "message": "Authentication required"})
		return
	}

	var email, name string
	if token := bearerToken(c); token != "" && a.a0 != nil {
		info, err := a.a0.GetUserInfo(c, token)
		if err != nil {
			// Profile refresh is best-effort; the stored row still works.
			logger.Info("userinfo fetch failed", "error", err)
		} else {
			email = info.Email
			name = info.Name
		}
	}

	u, err := a.ur.UpsertUser(c, auth0ID, email, name)
	if err != nil {
		logger.ErrorContext(c, "failed to upsert user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	resp := userResponse{ID: u.ID, CreatedAt: u.CreatedAt}
	if u.Email.Valid {
		resp.Email = u.Email.String
	}
	if u.Name.Valid {
		resp.Name = u.Name.String
	}
	c.JSON(http.StatusOK, resp)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}
