package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"catalog-import-service/internal/models"
)

// JobsRepository persists the history of import runs
type JobsRepository struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *JobsRepository {
	return &JobsRepository{db: db}
}

// CreateJob stores a finished run
func (r *JobsRepository) CreateJob(ctx context.Context, job *models.ImportJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// GetJob retrieves a run by id within a tenant
func (r *JobsRepository) GetJob(ctx context.Context, tenantID string, id uuid.UUID) (*models.ImportJob, error) {
	var job models.ImportJob
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns a tenant's runs, newest first. The result payload is not loaded.
func (r *JobsRepository) ListJobs(ctx context.Context, tenantID string, kind models.ImportJobKind, page, limit int) ([]models.ImportJob, int64, error) {
	var jobs []models.ImportJob
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ImportJob{}).Where("tenant_id = ?", tenantID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Omit("result").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error

	return jobs, total, err
}
