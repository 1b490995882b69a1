package export

import (
	"context"
	"fmt"
)

// File is a rendered export ready to be downloaded or archived
type File struct {
	Name        string
	Format      Format
	ContentType string
	Data        []byte
}

// Exporter dispatches a document to the renderer of the requested format
type Exporter struct {
	html *HTMLRenderer
	pdf  PDFRenderer
}

// NewExporter creates an exporter. pdf may be nil, in which case PDF
// exports fail with ErrFormatUnavailable.
func NewExporter(pdf PDFRenderer) *Exporter {
	return &Exporter{html: NewHTMLRenderer(), pdf: pdf}
}

// Formats lists the formats this exporter can produce
func (e *Exporter) Formats() []Format {
	formats := []Format{FormatCSV, FormatXLSX, FormatHTML}
	if e.pdf != nil {
		formats = append(formats, FormatPDF)
	}
	return formats
}

// Export renders doc in the given format. The format name is matched
// case-insensitively.
func (e *Exporter) Export(ctx context.Context, format Format, doc *Document) (*File, error) {
	format, err := ParseFormat(string(format))
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatCSV:
		data, err = renderCSV(doc.Rows)
	case FormatXLSX:
		data, err = renderXLSX(doc)
	case FormatHTML:
		data, err = e.html.Render(doc)
	case FormatPDF:
		if e.pdf == nil {
			return nil, ErrFormatUnavailable
		}
		var html []byte
		if html, err = e.html.Render(doc); err == nil {
			data, err = e.pdf.RenderPDF(ctx, string(html))
		}
	default:
		return nil, fmt.Errorf("export %s: no renderer", format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	return &File{
		Name:        fmt.Sprintf("orders-report-%s.%s", doc.GeneratedAt.Format("2006-01-02-150405"), format.Extension()),
		Format:      format,
		ContentType: format.ContentType(),
		Data:        data,
	}, nil
}

// Close releases the PDF renderer
func (e *Exporter) Close() error {
	if e.pdf != nil {
		return e.pdf.Close()
	}
	return nil
}
