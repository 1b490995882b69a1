package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/export"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/infrastructure/storage"
)

type ordersBackend struct {
	orders []order.Order
	err    error
	calls  int
}

func (b *ordersBackend) Orders(context.Context) ([]order.Order, error) {
	b.calls++
	return b.orders, b.err
}

// historyRepo is an in-memory report.ExportRecordRepository
type historyRepo struct {
	mu      sync.Mutex
	records []report.ExportRecord
	saveErr error
}

func (r *historyRepo) Save(_ context.Context, rec *report.ExportRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]report.ExportRecord{*rec}, r.records...)
	return nil
}

func (r *historyRepo) ListByUser(_ context.Context, userID string, limit int) ([]report.ExportRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []report.ExportRecord
	for _, rec := range r.records {
		if rec.UserID == userID && len(out) < limit {
			out = append(out, rec)
		}
	}
	return out, nil
}

type exportCounter struct {
	formats []string
	rows    int
	errs    int
}

func (c *exportCounter) Exported(format string, rows int, err error) {
	c.formats = append(c.formats, format)
	c.rows += rows
	if err != nil {
		c.errs++
	}
}

func sampleOrders() []order.Order {
	return []order.Order{
		{
			ID: "1", OrderNumber: "ORD-001", PartyName: "Sharma Traders", DateOfOrder: "2024-03-01",
			Status: order.StatusPending, Transport: "VRL",
			Items: []order.Item{
				{DesignNumber: "D-100", Color: "Red", SizesQuantities: []order.SizeQuantity{
					{Size: order.SizeM, Quantity: 4}, {Size: order.SizeL, Quantity: 6},
				}},
				{DesignNumber: "D-200", Color: "Navy"},
			},
		},
		{
			ID: "2", OrderNumber: "ORD-002", PartyName: "Kumar Garments", DateOfOrder: "2024-03-05",
			Status: order.StatusCompleted,
			Items: []order.Item{
				{DesignNumber: "D-100", Color: "Navy", SizesQuantities: []order.SizeQuantity{{Size: order.SizeXL, Quantity: 2}}},
			},
		},
		{
			ID: "3", OrderNumber: "ORD-003", PartyName: "Sharma Traders", DateOfOrder: "2024-04-01",
			Status: order.StatusPending, OrderRemarks: []order.Remark{{Remark: "hold"}},
		},
	}
}

type serviceFixture struct {
	svc      *Service
	backend  *ordersBackend
	history  *historyRepo
	archive  *storage.MemoryArchive
	observer *exportCounter
	session  *identity.Session
}

func setupService(t *testing.T, opts ...ServiceOption) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		backend:  &ordersBackend{orders: sampleOrders()},
		history:  &historyRepo{},
		archive:  storage.NewMemoryArchive(),
		observer: &exportCounter{},
	}
	sess, err := identity.NewSession(identity.User{ID: "u1", Name: "Asha"}, "tok", time.Now(), time.Hour)
	require.NoError(t, err)
	f.session = sess

	now := time.Date(2024, 4, 2, 15, 4, 5, 0, time.UTC)
	opts = append([]ServiceOption{WithObserver(f.observer)}, opts...)
	f.svc = NewService(
		func(string) Backend { return f.backend },
		export.NewExporter(nil),
		f.history,
		ServiceConfig{Now: func() time.Time { return now }},
		zaptest.NewLogger(t),
		opts...,
	)
	return f
}

// ============================================
// Build
// ============================================

func TestService_Build(t *testing.T) {
	f := setupService(t)
	rep, err := f.svc.Build(context.Background(), f.session, report.FilterSet{Parties: []string{" sharma ", ""}})
	require.NoError(t, err)

	require.Len(t, rep.Orders, 2)
	assert.Equal(t, "ORD-001", rep.Orders[0].OrderNumber)
	assert.Equal(t, "ORD-003", rep.Orders[1].OrderNumber)
	assert.Len(t, rep.Rows, 4, "two sized rows, one unsized item, one remarks-only order")
	assert.Equal(t, 2, rep.Summary.TotalOrders)
	assert.Equal(t, 10, rep.Summary.TotalQuantity)
	assert.Equal(t, []string{"sharma"}, rep.Filters.Parties)
	assert.Equal(t, 3, rep.TotalOrders)
	assert.Len(t, rep.Options.Parties, 2, "options come from every order")

	require.Len(t, rep.DesignTotals, 2)
	assert.Equal(t, report.DesignTotal{DesignNumber: "D-100", Quantity: 10}, rep.DesignTotals[0])
}

func TestService_BuildFetchesEveryTime(t *testing.T) {
	f := setupService(t)
	for range 2 {
		_, err := f.svc.Build(context.Background(), f.session, report.FilterSet{})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, f.backend.calls)
}

func TestService_BuildInvalidFilters(t *testing.T) {
	f := setupService(t)
	_, err := f.svc.Build(context.Background(), f.session, report.FilterSet{DateFrom: "2024-05-01", DateTo: "2024-04-01"})
	require.Error(t, err)
	assert.Equal(t, 0, f.backend.calls)
}

func TestService_BuildBackendError(t *testing.T) {
	f := setupService(t)
	f.backend.err = errors.New("backend down")
	_, err := f.svc.Build(context.Background(), f.session, report.FilterSet{})
	assert.ErrorIs(t, err, f.backend.err)
}

// ============================================
// Export
// ============================================

func TestService_ExportCSVRecordsHistory(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	result, err := f.svc.Export(ctx, f.session, report.FilterSet{Status: order.StatusPending}, export.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "orders-report-2024-04-02-150405.csv", result.File.Name)
	assert.Empty(t, result.DownloadURL, "no archive configured")

	records, err := csv.NewReader(bytes.NewReader(result.File.Data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, report.Columns(), records[0])
	assert.Len(t, records, 5)

	require.NotNil(t, result.Record)
	assert.Equal(t, "u1", result.Record.UserID)
	assert.Equal(t, 2, result.Record.OrderCount)
	assert.Equal(t, 4, result.Record.RowCount)
	assert.Equal(t, order.StatusPending, result.Record.Filters.Status)
	assert.False(t, result.Record.IsArchived())

	history, err := f.svc.History(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, result.Record.ID, history[0].ID)
	assert.Empty(t, history[0].DownloadURL)

	assert.Equal(t, []string{"csv"}, f.observer.formats)
	assert.Equal(t, 4, f.observer.rows)
}

func TestService_ExportArchives(t *testing.T) {
	f := setupService(t)
	f.svc = NewService(
		func(string) Backend { return f.backend },
		export.NewExporter(nil),
		f.history,
		ServiceConfig{},
		zaptest.NewLogger(t),
		WithArchive(f.archive),
	)
	ctx := context.Background()

	result, err := f.svc.Export(ctx, f.session, report.FilterSet{}, export.FormatXLSX)
	require.NoError(t, err)
	require.True(t, result.Record.IsArchived())
	assert.Contains(t, result.Record.ObjectKey, "u1/")
	assert.NotEmpty(t, result.DownloadURL)

	data, contentType, ok := f.archive.Object(result.Record.ObjectKey)
	require.True(t, ok)
	assert.Equal(t, result.File.Data, data)
	assert.Equal(t, export.FormatXLSX.ContentType(), contentType)

	history, err := f.svc.History(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.NotEmpty(t, history[0].DownloadURL)
	assert.NotNil(t, history[0].URLExpiresAt)
}

func TestService_ExportPDFUnavailable(t *testing.T) {
	f := setupService(t)
	_, err := f.svc.Export(context.Background(), f.session, report.FilterSet{}, export.FormatPDF)
	assert.ErrorIs(t, err, export.ErrFormatUnavailable)
	assert.Equal(t, 1, f.observer.errs)
	assert.Empty(t, f.history.records)
}

func TestService_ExportTooLarge(t *testing.T) {
	f := setupService(t)
	f.svc.config.MaxRows = 3
	_, err := f.svc.Export(context.Background(), f.session, report.FilterSet{}, export.FormatCSV)
	assert.ErrorIs(t, err, ErrExportTooLarge)
}

func TestService_ExportSurvivesHistoryFailure(t *testing.T) {
	f := setupService(t)
	f.history.saveErr = errors.New("database locked")

	result, err := f.svc.Export(context.Background(), f.session, report.FilterSet{}, export.FormatHTML)
	require.NoError(t, err)
	assert.Nil(t, result.Record)
	assert.Contains(t, string(result.File.Data), "Orders Report")
}

func TestService_ExportUppercaseFormat(t *testing.T) {
	f := setupService(t)

	result, err := f.svc.Export(context.Background(), f.session, report.FilterSet{}, export.Format("CSV"))
	require.NoError(t, err)
	require.NotNil(t, result.File)
	assert.Equal(t, export.FormatCSV, result.File.Format)
	require.NotNil(t, result.Record)
	assert.Equal(t, "csv", result.Record.Format)
}

func TestService_Formats(t *testing.T) {
	f := setupService(t)
	assert.Equal(t, []export.Format{export.FormatCSV, export.FormatXLSX, export.FormatHTML}, f.svc.Formats())
}
