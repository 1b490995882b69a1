// Package models holds the GORM table models of the export history.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
)

// ExportRecordModel is the export_records row
type ExportRecordModel struct {
	ID         string    `gorm:"primaryKey;size:36"`
	UserID     string    `gorm:"size:64;not null;index:idx_export_records_user_created,priority:1"`
	UserName   string    `gorm:"size:100"`
	Format     string    `gorm:"size:8;not null"`
	FileName   string    `gorm:"size:255;not null"`
	Filters    string    `gorm:"type:text"`
	OrderCount int       `gorm:"not null"`
	RowCount   int       `gorm:"not null"`
	SizeBytes  int64     `gorm:"not null"`
	ObjectKey  string    `gorm:"size:512"`
	CreatedAt  time.Time `gorm:"not null;index:idx_export_records_user_created,priority:2"`
}

// TableName returns the table name
func (ExportRecordModel) TableName() string {
	return "export_records"
}

// ExportRecordModelFromDomain converts a domain record, encoding filters as JSON
func ExportRecordModelFromDomain(r *report.ExportRecord) (*ExportRecordModel, error) {
	filters, err := json.Marshal(r.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export filters: %w", err)
	}
	return &ExportRecordModel{
		ID:         r.ID,
		UserID:     r.UserID,
		UserName:   r.UserName,
		Format:     r.Format,
		FileName:   r.FileName,
		Filters:    string(filters),
		OrderCount: r.OrderCount,
		RowCount:   r.RowCount,
		SizeBytes:  r.SizeBytes,
		ObjectKey:  r.ObjectKey,
		CreatedAt:  r.CreatedAt,
	}, nil
}

// ToDomain converts the row back to a domain record
func (m *ExportRecordModel) ToDomain() (report.ExportRecord, error) {
	r := report.ExportRecord{
		ID:         m.ID,
		UserID:     m.UserID,
		UserName:   m.UserName,
		Format:     m.Format,
		FileName:   m.FileName,
		OrderCount: m.OrderCount,
		RowCount:   m.RowCount,
		SizeBytes:  m.SizeBytes,
		ObjectKey:  m.ObjectKey,
		CreatedAt:  m.CreatedAt,
	}
	if m.Filters != "" {
		if err := json.Unmarshal([]byte(m.Filters), &r.Filters); err != nil {
			return r, fmt.Errorf("failed to decode export filters of %s: %w", m.ID, err)
		}
	}
	return r, nil
}
