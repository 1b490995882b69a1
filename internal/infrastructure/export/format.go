// Package export renders flattened order report rows as CSV, spreadsheet,
// print HTML and PDF files.
package export

import (
	"strings"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ErrFormatUnavailable is returned for PDF exports when no renderer is configured
var ErrFormatUnavailable = shared.NewDomainError("FORMAT_UNAVAILABLE", "PDF export is not enabled on this server")

// ParseFormat parses a format name, case-insensitively
func ParseFormat(v string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(v)))
	switch f {
	case FormatCSV, FormatXLSX, FormatHTML, FormatPDF:
		return f, nil
	}
	return "", shared.NewDomainError("INVALID_FORMAT", "Unsupported export format: "+v+" (use csv, xlsx, html or pdf)")
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

func (f Format) String() string {
	return string(f)
}
