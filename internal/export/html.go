package export

import (
	"fmt"
	"html/template"
	"os"

	"studymate/internal/study"
)

const (
	chartWidth  = 300.0
	chartHeight = 150.0
)

var reportTmpl = template.Must(template.New("report").Parse(`<html>
<head>
<style>
  body { font-family: sans-serif; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 24px; }
  th { font-weight: bold; background-color: #dbeafe; border: 1px solid #000000; padding: 5px; text-align: left; }
  td { border: 1px solid #cccccc; padding: 5px; text-align: left; }
  .title-row { font-size: 14pt; font-weight: bold; color: #1e3a8a; border: none; }
  .total-row td { font-weight: bold; background-color: #f3f4f6; border-top: 2px solid #000000; }
  .done { color: green; font-weight: bold; }
  .pending { color: red; }
</style>
</head>
<body>
<table>
  <tr><td colspan="2" class="title-row">SUBJECTS SUMMARY</td></tr>
  <tr><th>Subject Name</th><th>Total Time Studied</th></tr>
{{- range .Subjects}}
  <tr><td>{{.Name}}</td><td>{{.TimeStudied}}</td></tr>
{{- end}}
  <tr class="total-row"><td>GRAND TOTAL:</td><td>{{.GrandTotal}}</td></tr>
</table>

<table>
  <tr><td colspan="4" class="title-row">TASKS LIST</td></tr>
  <tr><th>Task Name</th><th>Task Subject</th><th>Due Date</th><th>Status</th></tr>
{{- range .Tasks}}
  <tr><td>{{.Name}}</td><td>{{.Subject}}</td><td>{{.Date}}</td>{{if .Completed}}<td class="done">Completed</td>{{else}}<td class="pending">Pending</td>{{end}}</tr>
{{- end}}
</table>

<h3>Last 7 days</h3>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
  <path d="{{.AreaPath}}" fill="#dbeafe" stroke="none"/>
  <path d="{{.LinePath}}" fill="none" stroke="#2563eb" stroke-width="2"/>
</svg>
<p>
{{- range .Days}} {{.Label}}: {{.Minutes}}m{{end}}
</p>
</body>
</html>
`))

type reportData struct {
	Subjects   []reportSubject
	Tasks      []study.Task
	GrandTotal string
	Width      float64
	Height     float64
	LinePath   string
	AreaPath   string
	Days       []study.DayMinutes
}

type reportSubject struct {
	Name        string
	TimeStudied string
}

// ToHTML writes the styled report with the subjects/tasks tables and a
// smoothed SVG trend line over the weekly series.
func ToHTML(snap study.Snapshot, series study.WeekSeries, path string) error {
	points := study.ChartPoints(series, chartWidth, chartHeight)
	line := study.SmoothPath(points)
	area := fmt.Sprintf("%s L %d,%d L 0,%d Z", line, int(chartWidth), int(chartHeight), int(chartHeight))

	data := reportData{
		Tasks:      snap.Tasks,
		GrandTotal: snap.GrandTotal,
		Width:      chartWidth,
		Height:     chartHeight,
		LinePath:   line,
		AreaPath:   area,
		Days:       series.Days,
	}
	for _, s := range snap.Subjects {
		data.Subjects = append(data.Subjects, reportSubject{Name: s.Name, TimeStudied: s.TimeStudied()})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html file: %w", err)
	}
	defer f.Close()

	if err := reportTmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
