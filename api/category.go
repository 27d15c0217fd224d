package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gearlog/gearlog-backend/internal/middleware"
	"github.com/gearlog/gearlog-backend/part"
)

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *API) getCategoriesHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	cats, err := a.pr.GetCategories(c)
	if err != nil {
		logger.ErrorContext(c, "failed to get categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	responses := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		responses = append(responses, categoryResponse{ID: cat.ID, Name: cat.Name})
	}
	c.JSON(http.StatusOK, responses)
}

func (a *API) createCategoryHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	cat := &part.Category{ID: uuid.New(), Name: req.Name}
	if err := a.pr.CreateCategory(c, cat); err != nil {
		logger.ErrorContext(c, "failed to create category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, categoryResponse{ID: cat.ID, Name: cat.Name})
}

func (a *API) updateCategoryHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid categoryId"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": err.Error()})
		return
	}

	cat := &part.Category{ID: id, Name: req.Name}
	err = a.pr.UpdateCategory(c, cat)
	if err != nil {
		if errors.Is(err, part.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "CATEGORY_NOT_FOUND", "message": "Category not found"})
			return
		}
		logger.ErrorContext(c, "failed to update category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, categoryResponse{ID: cat.ID, Name: cat.Name})
}

func (a *API) deleteCategoryHandler(c *gin.Context) {
	logger := middleware.GetLogger(c)

	id, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_REQUEST", "message": "Invalid categoryId"})
		return
	}

	err = a.pr.DeleteCategory(c, id)
	if err != nil {
		if errors.Is(err, part.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "CATEGORY_NOT_FOUND", "message": "Category not found"})
			return
		}
		if errors.Is(err, part.ErrCategoryInUse) {
			c.JSON(http.StatusConflict, gin.H{"code": "CATEGORY_IN_USE", "message": "Category still referenced by parts"})
			return
		}
		logger.ErrorContext(c, "failed to delete category", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}
