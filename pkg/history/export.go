package history

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/ja7ad/cutcond/pkg/condition"
	"github.com/ja7ad/cutcond/pkg/util"
)

// Row is the display form of an entry, rounded the way the report shows it.
type Row struct {
	At        time.Time `json:"time"`
	Tool      string    `json:"tool"`
	Operation string    `json:"operation"`
	Vc        float64   `json:"vc"`
	Fn        float64   `json:"fn"`
	D         float64   `json:"d"`
	Ap        *float64  `json:"ap,omitempty"`
	Hex       *float64  `json:"hex,omitempty"`
	La        *float64  `json:"la,omitempty"`
	Fa        *float64  `json:"fa,omitempty"`
	N         float64   `json:"n"`
	Pc        float64   `json:"pc"`
	Mc        float64   `json:"mc"`
	PcUsage   float64   `json:"pc_usage"`
	McUsage   float64   `json:"mc_usage"`
	Warnings  []string  `json:"warnings,omitempty"`
}

func rounded(v float64, places int) *float64 {
	r := util.Round(v, places)
	return &r
}

// RowOf converts an entry into its display row. Ap and La are shown only
// when an engagement length exists; Fa only for drilling.
func RowOf(e Entry) Row {
	r := e.Result
	row := Row{
		At:        e.At,
		Tool:      e.Tool,
		Operation: e.Label,
		Vc:        util.Round(e.Params.Vc, 1),
		Fn:        util.Round(e.Params.Fn, 3),
		D:         util.Round(e.Params.D, 1),
		N:         util.Round(r.N, 1),
		Pc:        util.Round(r.Pc, 2),
		Mc:        util.Round(r.Mc, 2),
		PcUsage:   util.Round(r.PowerUsage, 3),
		McUsage:   util.Round(r.TorqueUsage, 3),
		Hex:       rounded(r.Hex, 3),
		Warnings:  Warnings(r),
	}
	if la, ok := r.La.Value(); ok && r.La.Finite() {
		row.Ap = rounded(r.Ap, 2)
		row.La = rounded(la, 2)
	}
	if r.Operation == condition.Drilling {
		row.Fa = rounded(r.Fa, 2)
	}
	return row
}

// Warnings renders the result's flags as messages.
func Warnings(r condition.Result) []string {
	var w []string
	if r.Flags.PowerExceeded {
		w = append(w, fmt.Sprintf("Pc=%.2f kW > %.2f kW (local)", r.Pc, r.LocalPower))
	} else if r.Flags.PowerNearLimit {
		w = append(w, fmt.Sprintf("Pc=%.2f kW at %.0f%% of %.2f kW", r.Pc, 100*r.PowerUsage, r.LocalPower))
	}
	if r.Flags.TorqueExceeded {
		w = append(w, fmt.Sprintf("Mc=%.2f Nm > %.2f Nm (local)", r.Mc, r.LocalTorque))
	} else if r.Flags.TorqueNearLimit {
		w = append(w, fmt.Sprintf("Mc=%.2f Nm at %.0f%% of %.2f Nm", r.Mc, 100*r.TorqueUsage, r.LocalTorque))
	}
	if r.Flags.EngagementExceeded {
		la, _ := r.La.Value()
		w = append(w, fmt.Sprintf("La=%.2f mm > %.2f mm", la, r.EngagementLimit))
	}
	return w
}

var csvHeader = []string{
	"time", "tool", "operation", "vc", "fn", "d", "ap", "hex", "la", "fa", "n", "pc", "mc", "warnings",
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return util.FmtFloat(*v)
}

// WriteCSV writes entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("history: csv: %w", err)
	}
	for _, e := range entries {
		r := RowOf(e)
		rec := []string{
			r.At.Format("2006-01-02 15:04:05"), r.Tool, r.Operation,
			util.FmtFloat(r.Vc), util.FmtFloat(r.Fn), util.FmtFloat(r.D),
			optional(r.Ap), optional(r.Hex), optional(r.La), optional(r.Fa),
			util.FmtFloat(r.N), util.FmtFloat(r.Pc), util.FmtFloat(r.Mc),
			strings.Join(r.Warnings, "; "),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("history: csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("history: csv: %w", err)
	}
	return nil
}

// WriteJSON writes the full entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("history: json: %w", err)
	}
	return nil
}

// Summary aggregates a log for the report header.
type Summary struct {
	Count   int
	Flagged int
	MaxPc   float64
	MaxMc   float64
}

// Summarize aggregates entries.
func Summarize(entries []Entry) Summary {
	s := Summary{Count: len(entries)}
	for _, e := range entries {
		if e.Result.Flags.Exceeded() {
			s.Flagged++
		}
		s.MaxPc = max(s.MaxPc, e.Result.Pc)
		s.MaxMc = max(s.MaxMc, e.Result.Mc)
	}
	return s
}

// gauge is the bar width in percent for a usage ratio; overloads fill the bar.
func gauge(ratio float64) string {
	return util.FmtFloat(100 * util.Clamp01(ratio))
}

// WriteHTML writes a standalone HTML report.
func WriteHTML(w io.Writer, entries []Entry) error {
	type view struct {
		Rows    []Row
		Summary Summary
	}
	data := view{Summary: Summarize(entries)}
	for _, e := range entries {
		data.Rows = append(data.Rows, RowOf(e))
	}
	if err := tpl.Execute(w, data); err != nil {
		return fmt.Errorf("history: html: %w", err)
	}
	return nil
}

var tpl = template.Must(template.New("rep").Funcs(template.FuncMap{
	"opt":    optional,
	"gauge":  gauge,
	"mul100": func(v float64) float64 { return 100 * v },
}).Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Cutting Conditions Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
.small{color:#555}
.warn{color:#b00020;text-align:left}
.bar{background:#eee;width:80px;height:8px;display:inline-block}
.bar span{background:#2e7d32;height:8px;display:block}
.bar.over span{background:#b00020}
</style>

<h1>Cutting Conditions Report</h1>

<p class="small">
Rows: {{.Summary.Count}} &nbsp;|&nbsp;
Over limit: {{.Summary.Flagged}} &nbsp;|&nbsp;
Max Pc: {{printf "%.2f" .Summary.MaxPc}} kW &nbsp;|&nbsp;
Max Mc: {{printf "%.2f" .Summary.MaxMc}} Nm
</p>

<h2>Calculations</h2>
<table>
<thead>
<tr>
<th>time</th><th>tool</th><th>operation</th>
<th>Vc (m/min)</th><th>fn (mm/rev)</th><th>D (mm)</th><th>ap (mm)</th><th>hex (mm)</th><th>La (mm)</th>
<th>Fa (N)</th><th>n (rpm)</th><th>Pc (kW)</th><th>Mc (Nm)</th><th>load</th><th>warnings</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr>
<td style="text-align:left">{{.At.Format "2006-01-02 15:04:05"}}</td>
<td style="text-align:left">{{.Tool}}</td>
<td style="text-align:left">{{.Operation}}</td>
<td>{{printf "%.1f" .Vc}}</td>
<td>{{printf "%.3f" .Fn}}</td>
<td>{{printf "%.1f" .D}}</td>
<td>{{opt .Ap}}</td>
<td>{{opt .Hex}}</td>
<td>{{opt .La}}</td>
<td>{{opt .Fa}}</td>
<td>{{printf "%.1f" .N}}</td>
<td>{{printf "%.2f" .Pc}}</td>
<td>{{printf "%.2f" .Mc}}</td>
<td>
<div class="bar{{if gt .PcUsage 1.0}} over{{end}}" title="Pc {{printf "%.0f" (mul100 .PcUsage)}}%"><span style="width:{{gauge .PcUsage}}%"></span></div><br>
<div class="bar{{if gt .McUsage 1.0}} over{{end}}" title="Mc {{printf "%.0f" (mul100 .McUsage)}}%"><span style="width:{{gauge .McUsage}}%"></span></div>
</td>
<td class="warn">{{range .Warnings}}{{.}}<br>{{end}}</td>
</tr>
{{end}}
</tbody>
</table>
</html>`))
