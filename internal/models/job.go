package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportJobKind distinguishes preview runs from commit runs
type ImportJobKind string

const (
	ImportJobKindPreview ImportJobKind = "PREVIEW"
	ImportJobKindCommit  ImportJobKind = "COMMIT"
	ImportJobKindExport  ImportJobKind = "EXPORT"
)

// ImportJob is the persisted history entry of one preview, commit or export run
type ImportJob struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID    string         `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_import_jobs_tenant_created"`
	Kind        ImportJobKind  `json:"kind" gorm:"type:varchar(20);not null"`
	FileName    string         `json:"fileName" gorm:"type:varchar(512)"`
	UploadToken string         `json:"uploadToken,omitempty" gorm:"type:varchar(64);index"`
	Total       int            `json:"total"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Result      datatypes.JSON `json:"result,omitempty" gorm:"type:jsonb"`
	CreatedBy   string         `json:"createdBy,omitempty" gorm:"type:varchar(255)"`
	DurationMs  int64          `json:"durationMs"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"index:idx_import_jobs_tenant_created"`
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

// ImportJobListResponse is the paginated job history
type ImportJobListResponse struct {
	Success    bool            `json:"success"`
	Data       []ImportJob     `json:"data"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}
