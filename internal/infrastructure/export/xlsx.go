package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
)

const (
	ordersSheet  = "Orders"
	summarySheet = "Summary"
)

// renderXLSX builds a workbook with the export rows on the first sheet and
// the report summary on the second. Quantities are written as numbers.
func renderXLSX(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeOrdersSheet(f, doc.Rows, header); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, &doc.Summary, header); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOrdersSheet(f *excelize.File, rows []report.ExportRow, headerStyle int) error {
	columns := report.Columns()
	if err := setRow(f, ordersSheet, 1, toAny(columns)); err != nil {
		return err
	}

	for i := range rows {
		values := rows[i].Values()
		cells := toAny(values)
		if q := rows[i].Quantity; q != nil {
			cells[7] = *q
		}
		if err := setRow(f, ordersSheet, i+2, cells); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		return fmt.Errorf("failed to resolve column: %w", err)
	}
	if err := f.SetRowStyle(ordersSheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(ordersSheet, "A", last, 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetPanes(ordersSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	if len(rows) > 0 {
		if err := f.AutoFilter(ordersSheet, fmt.Sprintf("A1:%s%d", last, len(rows)+1), nil); err != nil {
			return fmt.Errorf("failed to add autofilter: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s *report.Summary, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	lines := [][]any{
		{"Total Orders", s.TotalOrders},
		{"Total Quantity", s.TotalQuantity},
		{},
		{"Status", "Orders"},
	}
	for _, st := range order.AllStatuses() {
		lines = append(lines, []any{st.String(), s.StatusCount(st)})
	}
	lines = append(lines, []any{}, []any{"Design Number", "Quantity"})
	designHeader := len(lines)
	for _, dt := range s.SortedDesignTotals() {
		lines = append(lines, []any{dt.DesignNumber, dt.Quantity})
	}

	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		if err := setRow(f, summarySheet, i+1, line); err != nil {
			return err
		}
	}
	for _, row := range []int{4, designHeader} {
		if err := f.SetRowStyle(summarySheet, row, row, headerStyle); err != nil {
			return fmt.Errorf("failed to style summary: %w", err)
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "B", 20); err != nil {
		return fmt.Errorf("failed to size summary columns: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
