package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-import-service/internal/middleware"
	"catalog-import-service/internal/models"
)

// ListImportJobs returns the tenant's run history
// @Summary List import jobs
// @Tags Jobs
// @Produce json
// @Param kind query string false "PREVIEW, COMMIT or EXPORT"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.ImportJobListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /imports [get]
func (h *ImportHandler) ListImportJobs(c *gin.Context) {
	if h.jobs == nil {
		c.JSON(http.StatusOK, models.ImportJobListResponse{Success: true, Data: []models.ImportJob{}})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	kind := models.ImportJobKind(c.Query("kind"))
	jobs, total, err := h.jobs.ListJobs(c.Request.Context(), middleware.GetTenantID(c), kind, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: "Failed to retrieve import jobs",
				Details: &models.JSON{"error": err.Error()},
			},
		})
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	c.JSON(http.StatusOK, models.ImportJobListResponse{
		Success: true,
		Data:    jobs,
		Pagination: &models.PaginationInfo{
			Page:        page,
			Limit:       limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	})
}

// GetImportJob returns one run including its stored result
// @Summary Get import job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /imports/{id} [get]
func (h *ImportHandler) GetImportJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid job ID")
		return
	}
	if h.jobs == nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Import job not found")
		return
	}

	job, err := h.jobs.GetJob(c.Request.Context(), middleware.GetTenantID(c), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Import job not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to retrieve import job")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    job,
	})
}
