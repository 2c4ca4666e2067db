package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"catalog-import-service/internal/clients"
	"catalog-import-service/internal/events"
	"catalog-import-service/internal/middleware"
	"catalog-import-service/internal/models"
	"catalog-import-service/internal/repository"
	"catalog-import-service/internal/spreadsheet"
)

// DefaultMaxUploadBytes caps uploaded spreadsheets
const DefaultMaxUploadBytes = 20 << 20

// ImportEngine runs the reconciliation pipeline
type ImportEngine interface {
	Preview(ctx context.Context, sheet *spreadsheet.Sheet) (*models.PreviewResult, error)
	Commit(ctx context.Context, sheet *spreadsheet.Sheet) (*models.ImportResult, error)
	Export(ctx context.Context) (*models.ExportResult, error)
}

// UploadStore keeps previewed files for commit by token
type UploadStore interface {
	Save(ctx context.Context, tenantID string, upload repository.Upload) (string, error)
	Get(ctx context.Context, tenantID, token string) (*repository.Upload, error)
	Delete(ctx context.Context, tenantID, token string) error
}

// JobStore persists run history
type JobStore interface {
	CreateJob(ctx context.Context, job *models.ImportJob) error
	GetJob(ctx context.Context, tenantID string, id uuid.UUID) (*models.ImportJob, error)
	ListJobs(ctx context.Context, tenantID string, kind models.ImportJobKind, page, limit int) ([]models.ImportJob, int64, error)
}

// EventPublisher publishes run summaries
type EventPublisher interface {
	PublishImportEvent(ctx context.Context, event events.ImportEvent) error
}

type ImportHandler struct {
	engine         ImportEngine
	uploads        UploadStore
	jobs           JobStore
	publisher      EventPublisher
	maxUploadBytes int64
	logger         *logrus.Entry
}

// ImportHandlerOptions holds the optional collaborators of ImportHandler
type ImportHandlerOptions struct {
	Uploads        UploadStore
	Jobs           JobStore
	Publisher      EventPublisher
	MaxUploadBytes int64
	Logger         *logrus.Entry
}

func NewImportHandler(engine ImportEngine, opts ImportHandlerOptions) *ImportHandler {
	maxBytes := opts.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ImportHandler{
		engine:         engine,
		uploads:        opts.Uploads,
		jobs:           opts.Jobs,
		publisher:      opts.Publisher,
		maxUploadBytes: maxBytes,
		logger:         logger.WithField("component", "import_handler"),
	}
}

// GetImportTemplate returns the import template definition or file
// @Summary Get import template
// @Description Returns the product import template as JSON, CSV or XLSX
// @Tags Import
// @Produce json
// @Param format query string false "json, csv or xlsx" default(json)
// @Success 200 {object} models.ImportTemplate
// @Router /products/import/template [get]
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	template := models.ProductImportTemplate()

	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename=products_import_template.csv")
		if err := spreadsheet.WriteTemplateCSV(c.Writer, template); err != nil {
			h.logger.WithError(err).Error("Failed to write CSV template")
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=products_import_template.xlsx")
		if err := spreadsheet.WriteTemplateXLSX(c.Writer, template); err != nil {
			h.logger.WithError(err).Error("Failed to write XLSX template")
		}
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// PreviewImport validates an uploaded file without writing to the catalog
// @Summary Preview product import
// @Description Validates every row of a CSV/XLSX file against the current catalog. Returns an upload token for commit.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} models.PreviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/import/preview [post]
func (h *ImportHandler) PreviewImport(c *gin.Context) {
	startTime := time.Now()
	tenantID := middleware.GetTenantID(c)
	ctx := requestContext(c)

	fileName, data, ok := h.readUpload(c)
	if !ok {
		return
	}
	sheet, ok := h.parseSheet(c, fileName, data)
	if !ok {
		return
	}

	result, err := h.engine.Preview(ctx, sheet)
	if err != nil {
		h.logger.WithError(err).WithField("tenantId", tenantID).Error("Import preview failed")
		respondError(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "Failed to load the catalog snapshot: "+err.Error())
		return
	}

	token := ""
	if h.uploads != nil {
		token, err = h.uploads.Save(ctx, tenantID, repository.Upload{
			FileName:   fileName,
			Data:       data,
			UploadedBy: c.GetString("user_id"),
			UploadedAt: time.Now().UTC(),
		})
		if err != nil {
			h.logger.WithError(err).Warn("Failed to store upload for commit; the file must be uploaded again")
			token = ""
		}
	}

	jobID := h.recordJob(ctx, c, models.ImportJob{
		Kind:        models.ImportJobKindPreview,
		FileName:    fileName,
		UploadToken: token,
		Total:       result.Total,
		Succeeded:   result.Valid,
		Failed:      result.Invalid,
		DurationMs:  time.Since(startTime).Milliseconds(),
	}, result)

	h.publish(ctx, c, events.ImportEvent{
		EventType: events.EventImportPreviewed,
		JobID:     jobID,
		FileName:  fileName,
		Total:     result.Total,
		Succeeded: result.Valid,
		Failed:    result.Invalid,
	})

	c.JSON(http.StatusOK, models.PreviewResponse{
		Success:     true,
		Data:        result,
		UploadToken: token,
		JobID:       jobID,
	})
}

// CommitImport creates the products of a previously previewed file
// @Summary Commit product import
// @Description Re-validates the file and creates each valid row. Accepts the file again or the uploadToken returned by preview.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "CSV or XLSX file"
// @Param uploadToken formData string false "Token returned by preview"
// @Success 200 {object} models.CommitResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /products/import/commit [post]
func (h *ImportHandler) CommitImport(c *gin.Context) {
	startTime := time.Now()
	tenantID := middleware.GetTenantID(c)
	ctx := requestContext(c)

	var fileName string
	var data []byte
	token := c.PostForm("uploadToken")

	if token != "" {
		if h.uploads == nil {
			respondError(c, http.StatusBadRequest, "UPLOAD_NOT_FOUND", "Upload tokens are not available; upload the file again")
			return
		}
		upload, err := h.uploads.Get(ctx, tenantID, token)
		if errors.Is(err, repository.ErrUploadNotFound) {
			respondError(c, http.StatusNotFound, "UPLOAD_NOT_FOUND", "The previewed file has expired; upload it again")
			return
		}
		if err != nil {
			h.logger.WithError(err).Error("Failed to load upload")
			respondError(c, http.StatusInternalServerError, "UPLOAD_NOT_FOUND", "Failed to load the previewed file")
			return
		}
		fileName, data = upload.FileName, upload.Data
	} else {
		var ok bool
		fileName, data, ok = h.readUpload(c)
		if !ok {
			return
		}
	}

	sheet, ok := h.parseSheet(c, fileName, data)
	if !ok {
		return
	}

	// The batch outlives a client disconnect.
	commitCtx := context.WithoutCancel(ctx)

	result, err := h.engine.Commit(commitCtx, sheet)
	if err != nil {
		h.logger.WithError(err).WithField("tenantId", tenantID).Error("Import commit failed")
		respondError(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", "Failed to load the catalog snapshot: "+err.Error())
		return
	}

	if token != "" {
		if err := h.uploads.Delete(commitCtx, tenantID, token); err != nil {
			h.logger.WithError(err).Warn("Failed to delete committed upload")
		}
	}

	jobID := h.recordJob(commitCtx, c, models.ImportJob{
		Kind:        models.ImportJobKindCommit,
		FileName:    fileName,
		UploadToken: token,
		Total:       result.Total,
		Succeeded:   result.Successful,
		Failed:      result.Failed,
		DurationMs:  time.Since(startTime).Milliseconds(),
	}, result)

	h.publish(commitCtx, c, events.ImportEvent{
		EventType: events.EventImportCommitted,
		JobID:     jobID,
		FileName:  fileName,
		Total:     result.Total,
		Succeeded: result.Successful,
		Failed:    result.Failed,
	})

	c.JSON(http.StatusOK, models.CommitResponse{
		Success: result.Failed == 0,
		Data:    result,
		JobID:   jobID,
	})
}

// readUpload reads the multipart "file" field. It writes the error response itself.
func (h *ImportHandler) readUpload(c *gin.Context) (string, []byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "FILE_REQUIRED", "Please upload a CSV or Excel file")
		return "", nil, false
	}
	defer file.Close()

	if _, err := spreadsheet.DetectFormat(header.Filename); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Only CSV and XLSX files are supported")
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", "Failed to read the uploaded file")
		return "", nil, false
	}
	if int64(len(data)) > h.maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE",
			fmt.Sprintf("The file exceeds the %d MB limit", h.maxUploadBytes>>20))
		return "", nil, false
	}

	return header.Filename, data, true
}

func (h *ImportHandler) parseSheet(c *gin.Context, fileName string, data []byte) (*spreadsheet.Sheet, bool) {
	sheet, err := spreadsheet.ReadBytes(fileName, data)
	if errors.Is(err, spreadsheet.ErrUnsupportedFormat) {
		respondError(c, http.StatusBadRequest, "INVALID_FORMAT", "Only CSV and XLSX files are supported")
		return nil, false
	}
	if err != nil {
		respondError(c, http.StatusBadRequest, "PARSE_ERROR", err.Error())
		return nil, false
	}
	if len(sheet.Rows) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_FILE", "The file contains no data rows")
		return nil, false
	}
	return sheet, true
}

// recordJob stores the run in history and returns its id; failures are logged only
func (h *ImportHandler) recordJob(ctx context.Context, c *gin.Context, job models.ImportJob, result interface{}) string {
	if h.jobs == nil {
		return ""
	}
	job.ID = uuid.New()
	job.TenantID = middleware.GetTenantID(c)
	job.CreatedBy = c.GetString("user_id")
	if result != nil {
		if data, err := json.Marshal(result); err == nil {
			job.Result = datatypes.JSON(data)
		}
	}
	if err := h.jobs.CreateJob(ctx, &job); err != nil {
		h.logger.WithError(err).Warn("Failed to record import job")
		return ""
	}
	return job.ID.String()
}

func (h *ImportHandler) publish(ctx context.Context, c *gin.Context, event events.ImportEvent) {
	if h.publisher == nil {
		return
	}
	event.TenantID = middleware.GetTenantID(c)
	event.UserID = c.GetString("user_id")
	if err := h.publisher.PublishImportEvent(ctx, event); err != nil {
		h.logger.WithError(err).Warn("Failed to publish import event")
	}
}

// requestContext carries the caller identity to the catalog client
func requestContext(c *gin.Context) context.Context {
	return clients.WithUserContext(c.Request.Context(), clients.UserContext{
		TenantID:  middleware.GetTenantID(c),
		UserID:    c.GetString("user_id"),
		UserEmail: c.GetString("user_email"),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    code,
			Message: message,
		},
	})
}
