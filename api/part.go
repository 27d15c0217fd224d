package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/part"
)

type partResponse struct {
	ID           uuid.UUID  `json:"id"`
	BikeID       uuid.UUID  `json:"bikeId"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	Name         string     `json:"name"`
	WeightGrams  int        `json:"weightGrams"`
}

func toPartResponse(p part.Part) partResponse {
	pr := partResponse{
		ID:          p.ID,
		BikeID:      p.BikeID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		WeightGrams: p.WeightGrams,
	}
	if p.CategoryName != nil {
		pr.CategoryName = *p.CategoryName
	}
	return pr
}

type partRequest struct {
	Name        string     `json:"name" binding:"required"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	WeightGrams int        `json:"weightGrams"`
}

func (a *API) getPartsHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}
	b, ok := a.bikeByParam(c, u.ID)
	if !ok {
		return
	}

	parts, err := a.pr.GetPartsByBike(c, b.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get parts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]partResponse, 0, len(parts))
	for _, p := range parts {
		responses = append(responses, toPartResponse(p))
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) createPartHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}
	b, ok := a.bikeByParam(c, u.ID)
	if !ok {
		return
	}

	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}
	if req.WeightGrams < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "weightGrams cannot be negative"})
		return
	}

	p := &part.Part{
		ID:          uuid.New(),
		BikeID:      b.ID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		WeightGrams: req.WeightGrams,
	}
	if err := a.pr.Create(c, p); err != nil {
		logger.ErrorContext(c, "failed to create part", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, toPartResponse(*p))
}

func (a *API) updatePartHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("partId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid partId"})
		return
	}

	var req partRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}
	if req.WeightGrams < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "weightGrams cannot be negative"})
		return
	}

	p := &part.Part{ID: id, CategoryID: req.CategoryID, Name: req.Name, WeightGrams: req.WeightGrams}
	err = a.pr.Update(c, p, u.ID)
	if err != nil {
		if errors.Is(err, part.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "PART_NOT_FOUND", "message": "Part not found"})
			return
		}
		logger.ErrorContext(c, "failed to update part", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, toPartResponse(*p))
}

func (a *API) deletePartHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("partId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid partId"})
		return
	}

	err = a.pr.Delete(c, id, u.ID)
	if err != nil {
		if errors.Is(err, part.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "PART_NOT_FOUND", "message": "Part not found"})
			return
		}
		logger.ErrorContext(c, "failed to delete part", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

type categoryWeightResponse struct {
	CategoryID   string  `json:"categoryId,omitempty"`
	CategoryName string  `json:"categoryName"`
	Grams        int     `json:"grams"`
	Percentage   float64 `json:"percentage"`
}

type weightResponse struct {
	TotalGrams int                      `json:"totalGrams"`
	Categories []categoryWeightResponse `json:"categories"`
}

func (a *API) bikeWeightHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	u, ok := a.currentUser(c)
	if !ok {
		return
	}
	b, ok := a.bikeByParam(c, u.ID)
	if !ok {
		return
	}

	parts, err := a.pr.GetPartsByBike(c, b.ID)
	if err != nil {
		logger.ErrorContext(c, "failed to get parts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	s := part.SummariseWeight(parts)
	resp := weightResponse{
		TotalGrams: s.TotalGrams,
		Categories: make([]categoryWeightResponse, 0, len(s.Categories)),
	}
	for _, cw := range s.Categories {
		resp.Categories = append(resp.Categories, categoryWeightResponse{
			CategoryID:   cw.CategoryID,
			CategoryName: cw.CategoryName,
			Grams:        cw.Grams,
			Percentage:   cw.Share * 100,
		})
	}
	c.JSON(http.StatusOK, resp)
}
