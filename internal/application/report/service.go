// Package report builds filtered order reports and exports them as files,
// keeping a history of every export.
package report

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/export"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/logger"
)

// Backend is the order listing of the backend API for one session
type Backend interface {
	Orders(ctx context.Context) ([]order.Order, error)
}

// Connector returns the backend authenticated with a session token
type Connector func(token string) Backend

// Renderer produces export files
type Renderer interface {
	Export(ctx context.Context, format export.Format, doc *export.Document) (*export.File, error)
	Formats() []export.Format
}

// Archive stores generated files for later download
type Archive interface {
	Key(name string) string
	Store(ctx context.Context, key string, data []byte, contentType string) error
	DownloadURL(ctx context.Context, key string) (string, time.Time, error)
}

// ExportObserver records export metrics
type ExportObserver interface {
	Exported(format string, rows int, err error)
}

// ErrExportTooLarge is returned when an export exceeds the row limit
var ErrExportTooLarge = shared.NewDomainError("EXPORT_TOO_LARGE", "Report has too many rows to export; narrow the filters")

const reportTitle = "Orders Report"

// Report is a filtered view over the backend's orders
type Report struct {
	Filters      report.FilterSet     `json:"filters"`
	Orders       []order.Order        `json:"orders"`
	Rows         []report.ExportRow   `json:"rows"`
	Summary      report.Summary       `json:"summary"`
	DesignTotals []report.DesignTotal `json:"design_totals"`
	Options      report.Options       `json:"options"`
	TotalOrders  int                  `json:"total_orders_unfiltered"`
}

// ExportResult is a rendered export and its history record
type ExportResult struct {
	File         *export.File
	Record       *report.ExportRecord
	DownloadURL  string
	URLExpiresAt time.Time
}

// HistoryEntry is an export record with a download link when archived
type HistoryEntry struct {
	report.ExportRecord
	DownloadURL  string     `json:"download_url,omitempty"`
	URLExpiresAt *time.Time `json:"download_url_expires_at,omitempty"`
}

// ServiceConfig contains configuration for the report service
type ServiceConfig struct {
	// MaxRows caps the rows of one export; zero means no cap
	MaxRows int
	Now     func() time.Time
}

// Service builds and exports reports
type Service struct {
	connect  Connector
	renderer Renderer
	history  report.ExportRecordRepository
	archive  Archive
	observer ExportObserver
	config   ServiceConfig
	logger   *zap.Logger
}

// ServiceOption configures optional collaborators
type ServiceOption func(*Service)

// WithArchive stores every export in archive
func WithArchive(archive Archive) ServiceOption {
	return func(s *Service) { s.archive = archive }
}

// WithObserver reports exports to observer
func WithObserver(observer ExportObserver) ServiceOption {
	return func(s *Service) { s.observer = observer }
}

// NewService creates a new report service
func NewService(
	connect Connector,
	renderer Renderer,
	history report.ExportRecordRepository,
	config ServiceConfig,
	logger *zap.Logger,
	opts ...ServiceOption,
) *Service {
	if config.Now == nil {
		config.Now = time.Now
	}
	s := &Service{
		connect:  connect,
		renderer: renderer,
		history:  history,
		config:   config,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Formats lists the available export formats
func (s *Service) Formats() []export.Format {
	return s.renderer.Formats()
}

// Build fetches the current orders and runs the filter, flatten and
// summarize pipeline. Orders are fetched on every call.
func (s *Service) Build(ctx context.Context, sess *identity.Session, filters report.FilterSet) (*Report, error) {
	filters.Normalize()
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	all, err := s.connect(sess.BackendToken).Orders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	filtered := report.Filter(all, filters)
	summary := report.Summarize(filtered)
	return &Report{
		Filters:      filters,
		Orders:       filtered,
		Rows:         report.ToExportRows(filtered),
		Summary:      summary,
		DesignTotals: summary.SortedDesignTotals(),
		Options:      report.DistinctValues(all),
		TotalOrders:  len(all),
	}, nil
}

// Export builds the report and renders it in format. The file is archived
// when an archive is configured and the export is recorded in the history.
// Archive and history failures are logged and do not fail the export.
func (s *Service) Export(ctx context.Context, sess *identity.Session, filters report.FilterSet, format export.Format) (*ExportResult, error) {
	rep, err := s.Build(ctx, sess, filters)
	if err != nil {
		return nil, err
	}
	if s.config.MaxRows > 0 && len(rep.Rows) > s.config.MaxRows {
		return nil, ErrExportTooLarge
	}

	log := logger.Enrich(ctx, s.logger).With(zap.String("format", format.String()))
	doc := &export.Document{
		Title:       reportTitle,
		GeneratedAt: s.config.Now(),
		GeneratedBy: sess.User.Name,
		Filters:     export.DescribeFilters(rep.Filters),
		Rows:        rep.Rows,
		Summary:     rep.Summary,
	}
	file, err := s.renderer.Export(ctx, format, doc)
	if s.observer != nil {
		s.observer.Exported(format.String(), len(rep.Rows), err)
	}
	if err != nil {
		return nil, err
	}

	result := &ExportResult{File: file}
	record := &report.ExportRecord{
		ID:         uuid.NewString(),
		UserID:     sess.User.ID.String(),
		UserName:   sess.User.Name,
		Format:     file.Format.String(),
		FileName:   file.Name,
		Filters:    rep.Filters,
		OrderCount: len(rep.Orders),
		RowCount:   len(rep.Rows),
		SizeBytes:  int64(len(file.Data)),
		CreatedAt:  doc.GeneratedAt.UTC(),
	}

	if s.archive != nil {
		key := s.archive.Key(path.Join(record.UserID, file.Name))
		if err := s.archive.Store(ctx, key, file.Data, file.ContentType); err != nil {
			log.Warn("Failed to archive export", zap.String("key", key), zap.Error(err))
		} else {
			record.ObjectKey = key
			if url, expires, err := s.archive.DownloadURL(ctx, key); err == nil {
				result.DownloadURL, result.URLExpiresAt = url, expires
			}
		}
	}

	if err := s.history.Save(ctx, record); err != nil {
		log.Error("Failed to record export", zap.String("file", file.Name), zap.Error(err))
	} else {
		result.Record = record
	}

	log.Info("Report exported",
		zap.String("file", file.Name),
		zap.Int("orders", record.OrderCount),
		zap.Int("rows", record.RowCount),
		zap.Int64("bytes", record.SizeBytes))
	return result, nil
}

// History returns the newest exports of the user, with download links for
// archived files
func (s *Service) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	records, err := s.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		entry := HistoryEntry{ExportRecord: rec}
		if s.archive != nil && rec.IsArchived() {
			url, expires, err := s.archive.DownloadURL(ctx, rec.ObjectKey)
			if err != nil {
				s.logger.Warn("Failed to sign export download", zap.String("key", rec.ObjectKey), zap.Error(err))
			} else {
				entry.DownloadURL = url
				entry.URLExpiresAt = &expires
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
