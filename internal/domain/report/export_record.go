package report

import (
	"context"
	"time"
)

// ExportRecord is the audit entry written for every generated export
type ExportRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Format     string    `json:"format"`
	FileName   string    `json:"file_name"`
	Filters    FilterSet `json:"filters"`
	OrderCount int       `json:"order_count"`
	RowCount   int       `json:"row_count"`
	SizeBytes  int64     `json:"size_bytes"`
	ObjectKey  string    `json:"object_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsArchived reports whether the file was stored in the archive
func (r *ExportRecord) IsArchived() bool {
	return r.ObjectKey != ""
}

// ExportRecordRepository persists export history
type ExportRecordRepository interface {
	Save(ctx context.Context, record *ExportRecord) error
	// ListByUser returns the newest records of a user first, at most limit
	ListByUser(ctx context.Context, userID string, limit int) ([]ExportRecord, error)
}
