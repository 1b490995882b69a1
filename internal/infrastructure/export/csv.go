package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
)

// renderCSV writes the header row and one record per export row
func renderCSV(rows []report.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(report.Columns()); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for i := range rows {
		if err := w.Write(rows[i].Values()); err != nil {
			return nil, fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
