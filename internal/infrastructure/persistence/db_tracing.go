package persistence

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// EnableTracing registers otelgorm so export-history queries join the
// request trace. Query variables are kept out of spans.
func (d *Database) EnableTracing() error {
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(d.driver),
		otelgorm.WithoutQueryVariables(),
	)
	if err := d.DB.Use(plugin); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	return d.DB.Callback().Create().After("gorm:create").Register("ico:span_rows", annotateSpan)
}

// annotateSpan adds the table and affected rows to the current span and
// marks failed statements.
func annotateSpan(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("db.sql.table", db.Statement.Table),
		attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
	)
	if db.Error != nil {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}
}
