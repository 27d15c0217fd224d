package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/bike"
	"github.com/gearlog/gearlog-backend/internal/middleware"
)

type bikeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Model       string    `json:"model,omitempty"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toBikeResponse(b bike.Bike) bikeResponse {
	return bikeResponse{
		ID:          b.ID,
		Name:        b.Name,
		Brand:       b.Brand,
		Model:       b.Model,
		DisplayName: b.DisplayName(),
		CreatedAt:   b.CreatedAt,
	}
}

type bikeRequest struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Model string `json:"model"`
}

func (a *API) getBikesHandler(c *gin.Context) {
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

	responses := make([]bikeResponse, 0, len(bikes))
	for _, b := range bikes {
		responses = append(responses, toBikeResponse(b))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) getBikeHandler(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	b, ok := a.bikeByParam(c, u.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toBikeResponse(b))
}

func (a *API) createBikeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	var req bikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}
	if req.Name == "" && req.Brand == "" && req.Model == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "One of name, brand or model is required"})
		return
	}

	b := &bike.Bike{
		ID:     uuid.New(),
		UserID: u.ID,
		Name:   req.Name,
		Brand:  req.Brand,
		Model:  req.Model,
	}
	if err := a.br.Create(c, b); err != nil {
		logger.ErrorContext(c, "failed to create bike", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, toBikeResponse(*b))
}

func (a *API) updateBikeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("bikeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid bikeId"})
		return
	}

	var req bikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	b := &bike.Bike{ID: id, UserID: u.ID, Name: req.Name, Brand: req.Brand, Model: req.Model}
	err = a.br.Update(c, b)
	if err != nil {
		if errors.Is(err, bike.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "BIKE_NOT_FOUND", "message": "Bike not found"})
			return
		}
		logger.ErrorContext(c, "failed to update bike", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toBikeResponse(*b))
}

func (a *API) deleteBikeHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("bikeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid bikeId"})
		return
	}

	err = a.br.Delete(c, id, u.ID)
	if err != nil {
		if errors.Is(err, bike.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "BIKE_NOT_FOUND", "message": "Bike not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete bike", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// bikeByParam fetches the :bikeId bike scoped to the caller. Returns false
// after writing the error response.
func (a *API) bikeByParam(c *gin.Context, userID uuid.UUID) (bike.Bike, bool) {
	logger := middleware.GetLogger(c)

	id, err := uuid.Parse(c.Param("bikeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid bikeId"})
		return bike.Bike{}, false
	}

	b, err := a.br.GetBike(c, id, userID)
	if err != nil {
		if errors.Is(err, bike.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "BIKE_NOT_FOUND", "message": "Bike not found"})
			return bike.Bike{}, false
		}
		logger.ErrorContext(c, "failed to get bike", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return bike.Bike{}, false
	}

	return b, true
}
