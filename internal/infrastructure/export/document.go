package export

import (
	"strings"
	"time"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
)

// FilterLine is one active filter shown in the header of printed reports
type FilterLine struct {
	Label string
	Value string
}

// Document is everything a renderer needs for one export
type Document struct {
	Title       string
	GeneratedAt time.Time
	GeneratedBy string
	Filters     []FilterLine
	Rows        []report.ExportRow
	Summary     report.Summary
}

// DescribeFilters lists the active dimensions of a filter set in a fixed order
func DescribeFilters(f report.FilterSet) []FilterLine {
	var lines []FilterLine
	add := func(label string, values ...string) {
		if v := strings.Join(values, ", "); v != "" {
			lines = append(lines, FilterLine{Label: label, Value: v})
		}
	}

	switch {
	case !f.DateFrom.IsZero() && !f.DateTo.IsZero():
		add("Order Date", f.DateFrom.String()+" to "+f.DateTo.String())
	case !f.DateFrom.IsZero():
		add("Order Date", "from "+f.DateFrom.String())
	case !f.DateTo.IsZero():
		add("Order Date", "until "+f.DateTo.String())
	}
	add("Party", f.Parties...)
	add("Status", f.Status.String())
	add("Design", f.Designs...)
	sizes := make([]string, len(f.Sizes))
	for i, s := range f.Sizes {
		sizes[i] = s.String()
	}
	add("Size", sizes...)
	add("Color", f.Colors...)
	add("Transport", f.Transports...)
	add("General Remarks", string(f.HasRemarks))
	add("Specific Remarks", string(f.HasOrderRemarks))
	return lines
}
