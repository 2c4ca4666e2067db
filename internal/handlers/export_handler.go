package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-import-service/internal/events"
	"catalog-import-service/internal/middleware"
	"catalog-import-service/internal/models"
	"catalog-import-service/internal/spreadsheet"
)

// ExportProducts streams the catalog in the round-trip export layout
// @Summary Export products
// @Description Exports every product with up to five units per row as XLSX or CSV
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/export [post]
func (h *ImportHandler) ExportProducts(c *gin.Context) {
	startTime := time.Now()
	ctx := requestContext(c)

	format := models.ImportFormat(c.DefaultQuery("format", string(models.ImportFormatXLSX)))
	if format != models.ImportFormatXLSX && format != models.ImportFormatCSV {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Export format must be xlsx or csv")
		return
	}

	result, err := h.engine.Export(ctx)
	if err != nil {
		h.logger.WithError(err).WithField("tenantId", middleware.GetTenantID(c)).Error("Export failed")
		respondError(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "Failed to load the catalog: "+err.Error())
		return
	}

	fileName := fmt.Sprintf("products_export_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	if len(result.Warnings) > 0 {
		c.Header("X-Export-Warnings", fmt.Sprintf("%d", len(result.Warnings)))
	}
	c.Header("Content-Disposition", "attachment; filename="+fileName)

	switch format {
	case models.ImportFormatCSV:
		c.Header("Content-Type", "text/csv")
		err = spreadsheet.WriteCSV(c.Writer, result.Header, result.Rows)
	default:
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = spreadsheet.WriteXLSX(c.Writer, spreadsheet.PreferredSheetName, result.Header, result.Rows, models.ExportNumericColumns())
	}
	if err != nil {
		// Headers may already be sent; the client sees a truncated file
		h.logger.WithError(err).Error("Failed to write export")
		if !c.Writer.Written() {
			respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to write the export file")
		}
		return
	}

	jobID := h.recordJob(ctx, c, models.ImportJob{
		Kind:       models.ImportJobKindExport,
		FileName:   fileName,
		Total:      len(result.Rows),
		Succeeded:  len(result.Rows),
		DurationMs: time.Since(startTime).Milliseconds(),
	}, gin.H{"warnings": result.Warnings})

	h.publish(ctx, c, events.ImportEvent{
		EventType: events.EventCatalogExported,
		JobID:     jobID,
		FileName:  fileName,
		Total:     len(result.Rows),
		Succeeded: len(result.Rows),
	})
}
