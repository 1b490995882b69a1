package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/order"
	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/report"
)

// printTemplate is the print view: title block, active filters, summary
// cards, status and design breakdowns, then every export row.
const printTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 11px; color: #1a202c; margin: 16px; }
  h1 { font-size: 18px; margin: 0 0 4px; }
  .meta { color: #4a5568; margin-bottom: 12px; }
  .filters span { display: inline-block; margin-right: 12px; }
  .cards { display: flex; gap: 12px; margin: 12px 0; }
  .card { border: 1px solid #cbd5e0; border-radius: 4px; padding: 8px 12px; min-width: 110px; }
  .card b { display: block; font-size: 16px; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 14px; }
  th, td { border: 1px solid #cbd5e0; padding: 3px 5px; text-align: left; vertical-align: top; }
  th { background: #edf2f7; }
  td.num { text-align: right; }
  .breakdown { display: flex; gap: 24px; }
  .breakdown table { width: auto; }
  @media print { body { margin: 0; } tr { page-break-inside: avoid; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generated {{formatTime .GeneratedAt}}{{with .GeneratedBy}} by {{.}}{{end}}</div>
{{- if .Filters}}
<div class="filters">{{range .Filters}}<span><strong>{{.Label}}:</strong> {{.Value}}</span>{{end}}</div>
{{- end}}
<div class="cards">
  <div class="card">Total Orders<b>{{.Summary.TotalOrders}}</b></div>
  <div class="card">Total Quantity<b>{{.Summary.TotalQuantity}}</b></div>
  {{- range .Statuses}}
  <div class="card">{{title .Status.String}}<b>{{.Count}}</b></div>
  {{- end}}
</div>
{{- with .DesignTotals}}
<div class="breakdown">
<table>
  <thead><tr><th>Design Number</th><th>Quantity</th></tr></thead>
  <tbody>{{range .}}<tr><td>{{.DesignNumber}}</td><td class="num">{{.Quantity}}</td></tr>{{end}}</tbody>
</table>
</div>
{{- end}}
<table>
  <thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
  <tbody>
  {{- range .Rows}}
  <tr>{{range $i, $v := .Values}}<td{{if eq $i 7}} class="num"{{end}}>{{$v}}</td>{{end}}</tr>
  {{- else}}
  <tr><td colspan="{{len .Columns}}">No orders match the selected filters.</td></tr>
  {{- end}}
  </tbody>
</table>
</body>
</html>
`

type statusCount struct {
	Status order.Status
	Count  int
}

type printView struct {
	*Document
	Columns      []string
	Statuses     []statusCount
	DesignTotals []report.DesignTotal
}

// HTMLRenderer renders the print view of a report
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the print template
func NewHTMLRenderer() *HTMLRenderer {
	title := cases.Title(language.English)
	funcs := template.FuncMap{
		"title":      title.String,
		"formatTime": func(t time.Time) string { return t.Format("02 Jan 2006 15:04") },
	}
	return &HTMLRenderer{
		tmpl: template.Must(template.New("report").Funcs(funcs).Parse(printTemplate)),
	}
}

// Render executes the print template for doc
func (r *HTMLRenderer) Render(doc *Document) ([]byte, error) {
	view := printView{
		Document:     doc,
		Columns:      report.Columns(),
		DesignTotals: doc.Summary.SortedDesignTotals(),
	}
	for _, s := range order.AllStatuses() {
		view.Statuses = append(view.Statuses, statusCount{Status: s, Count: doc.Summary.StatusCount(s)})
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render print view: %w", err)
	}
	return buf.Bytes(), nil
}
