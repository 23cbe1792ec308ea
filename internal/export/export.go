// Package export serializes fetched data into self-contained HTML documents
// for offline browsing. Everything is inlined: no external styles, scripts
// or fonts, so the files open anywhere.
package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Shashankyadav00/milk-attendance-system/pkg/models"
)

// Money formats an amount the way the tables display it: rupee sign,
// thousands separators, always two decimals
func Money(v float64) string {
	return "₹" + humanize.FormatFloat("#,###.##", v)
}

// Litres formats a litre quantity for a table cell, "-" when empty
func Litres(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f L", v)
}

// OverviewFilename names the monthly snapshot artifact
func OverviewFilename(shift string, year, month int) string {
	return fmt.Sprintf("Overview_%s_%d_%02d.html", shift, year, month)
}

// UnpaidFilename names the unpaid report artifact
func UnpaidFilename(shift string, date time.Time) string {
	return fmt.Sprintf("Unpaid_%s_%s.html", shift, date.Format("2006-01-02"))
}

// overviewRow is one rendered customer line of the matrix table
type overviewRow struct {
	Name   string
	Cells  []string
	Litres string
	Amount string
}

type overviewDoc struct {
	Title       string
	Days        []int
	Rows        []overviewRow
	DayTotals   []string
	GrandTotal  string
	GeneratedAt string
}

// The sticky header and first column keep the grid browsable when a month
// of day columns overflows the viewport.
var overviewTmpl = template.Must(template.New("overview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 16px; }
    .wrap { overflow:auto; max-height:90vh; border:1px solid #ccc; }
    table { border-collapse: collapse; font-size: 13px; width: max-content; }
    th, td { border:1px solid #ccc; padding:6px 10px; white-space:nowrap; text-align:center; }
    th { background:#e8f5e9; position:sticky; top:0; }
    .name { position:sticky; left:0; background:#fafafa; font-weight:600; }
  </style>
</head>
<body>
  <h3>{{.Title}}</h3>
  <div class="wrap">
    <table>
      <tr>
        <th class="name">Customer</th>
        {{range .Days}}<th>{{.}}</th>{{end}}
        <th>Total Litres</th>
        <th>Total Amount</th>
      </tr>
      {{range .Rows}}
      <tr>
        <td class="name">{{.Name}}</td>
        {{range .Cells}}<td>{{.}}</td>{{end}}
        <td><b>{{.Litres}}</b></td>
        <td><b>{{.Amount}}</b></td>
      </tr>
      {{end}}
      {{if .Rows}}
      <tr>
        <td class="name">Total / day</td>
        {{range .DayTotals}}<td><b>{{.}}</b></td>{{end}}
        <td></td>
        <td><b>{{.GrandTotal}}</b></td>
      </tr>
      {{end}}
    </table>
  </div>
  <p>Generated on {{.GeneratedAt}}</p>
</body>
</html>
`))

// WriteOverview renders the whole month matrix into one table, no
// pagination. Totals come straight from the server response.
func WriteOverview(w io.Writer, ov *models.Overview, shift string, now time.Time) error {
	doc := overviewDoc{
		Title: fmt.Sprintf("Overview — %s | %s %d",
			shift, time.Month(ov.Month).String(), ov.Year),
		GrandTotal:  Money(ov.GrandTotalAmount),
		GeneratedAt: now.Format("02 Jan 2006 15:04:05"),
	}

	for d := 1; d <= ov.DaysInMonth; d++ {
		doc.Days = append(doc.Days, d)
		doc.DayTotals = append(doc.DayTotals, fmt.Sprintf("%.2f", ov.TotalPerDay[d]))
	}

	for _, c := range ov.Customers {
		row := overviewRow{
			Name:   c.DisplayName(),
			Litres: fmt.Sprintf("%.2f", ov.TotalLitresPerCustomer[c.ID]),
			Amount: Money(ov.TotalAmountPerCustomer[c.ID]),
		}
		for d := 1; d <= ov.DaysInMonth; d++ {
			row.Cells = append(row.Cells, Litres(ov.Litres(d, c.ID)))
		}
		doc.Rows = append(doc.Rows, row)
	}

	return overviewTmpl.Execute(w, doc)
}

type unpaidDoc struct {
	Title       string
	Rows        []models.UnpaidRow
	GeneratedAt string
}

var unpaidTmpl = template.Must(template.New("unpaid").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>{{.Title}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 16px; }
    table { border-collapse: collapse; font-size: 13px; }
    th, td { border:1px solid #ccc; padding:6px 10px; white-space:nowrap; text-align:left; }
    th { background:#fdecea; position:sticky; top:0; }
  </style>
</head>
<body>
  <h3>{{.Title}}</h3>
  <table>
    <tr>
      <th>#</th>
      <th>Customer</th>
      <th>Status</th>
    </tr>
    {{range $i, $r := .Rows}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{$r.CustomerName}}</td>
      <td>Unpaid</td>
    </tr>
    {{end}}
  </table>
  <p>Generated on {{.GeneratedAt}}</p>
</body>
</html>
`))

// WriteUnpaid renders the unpaid-customers report for one shift
func WriteUnpaid(w io.Writer, rows []models.UnpaidRow, shift string, now time.Time) error {
	doc := unpaidDoc{
		Title:       fmt.Sprintf("Unpaid Customers — %s | %s", shift, now.Format("02 Jan 2006")),
		Rows:        rows,
		GeneratedAt: now.Format("02 Jan 2006 15:04:05"),
	}
	return unpaidTmpl.Execute(w, doc)
}
