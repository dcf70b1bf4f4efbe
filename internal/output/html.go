package output

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
)

func formatPosition(lat, lon float64) string {
	return geo.FormatDMM(lat, lon)
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.CruiseName}} - Cruise Schedule</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1, h2 { color: #1a4a6e; }
table { border-collapse: collapse; margin-bottom: 2em; width: 100%; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #e8eef4; }
td.number { text-align: right; }
tr.transit { color: #777; }
</style>
</head>
<body>
<h1>{{.CruiseName}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}

<h2>Summary</h2>
<table>
<tr><th>Category</th><th>Details</th><th>Hours</th><th>Days</th></tr>
{{if gt .Stats.Moorings.Count 0}}
<tr><td>Moorings</td>
<td>{{.Stats.Moorings.Count}} operations, avg {{printf "%.1f" .Stats.Moorings.AvgDurationH}} hrs each</td>
<td class="number">{{printf "%.1f" .Stats.Moorings.TotalDurationH}}</td>
<td class="number">{{printf "%.1f" .Stats.Moorings.TotalDays}}</td></tr>
{{end}}
{{if gt .Stats.Stations.Count 0}}
<tr><td>Stations</td>
<td>{{.Stats.Stations.Count}} stations, avg depth {{printf "%.0f" .Stats.Stations.AvgDepthM}} m, avg {{printf "%.1f" .Stats.Stations.AvgDurationH}} hrs each</td>
<td class="number">{{printf "%.1f" .Stats.Stations.TotalDurationH}}</td>
<td class="number">{{printf "%.1f" .Stats.Stations.TotalDays}}</td></tr>
{{end}}
{{if gt .Stats.Surveys.Count 0}}
<tr><td>Underway surveys</td>
<td>{{.Stats.Surveys.Count}} sections, {{printf "%.0f" .Stats.Surveys.TotalDistanceNm}} nm total</td>
<td class="number">{{printf "%.1f" .Stats.Surveys.TotalDurationH}}</td>
<td class="number">{{printf "%.1f" .Stats.Surveys.TotalDays}}</td></tr>
{{end}}
{{if gt .Stats.Areas.Count 0}}
<tr><td>Survey areas</td>
<td>{{.Stats.Areas.Count}} areas, avg {{printf "%.1f" .Stats.Areas.AvgDurationH}} hrs each</td>
<td class="number">{{printf "%.1f" .Stats.Areas.TotalDurationH}}</td>
<td class="number">{{printf "%.1f" .Stats.Areas.TotalDays}}</td></tr>
{{end}}
<tr><td>Transits within working area</td>
<td>{{printf "%.0f" .Stats.WithinArea.TotalDistanceNm}} nm at {{printf "%.1f" .Stats.WithinArea.AvgSpeedKn}} kn</td>
<td class="number">{{printf "%.1f" .Stats.WithinArea.TotalDurationH}}</td>
<td class="number">{{printf "%.1f" .Stats.WithinArea.TotalDays}}</td></tr>
<tr><td>Transits to/from working area</td>
<td>{{printf "%.0f" .Stats.PortArea.TotalDistanceNm}} nm at {{printf "%.1f" .Stats.PortArea.AvgSpeedKn}} kn</td>
<td class="number">{{printf "%.1f" .Stats.PortArea.TotalDurationH}}</td>
<td class="number">{{printf "%.1f" .Stats.PortArea.TotalDays}}</td></tr>
<tr><th>Total</th><th></th>
<th class="number">{{printf "%.1f" .TotalH}}</th>
<th class="number">{{printf "%.1f" .TotalDays}}</th></tr>
</table>

{{range .Legs}}
<h2>{{.Name}}</h2>
<table>
<tr><th>Activity</th><th>Label</th><th>Position</th><th>Start</th><th>End</th><th>Hours</th><th>Depth [m]</th></tr>
{{range .Rows}}
<tr{{if .Transit}} class="transit"{{end}}>
<td>{{.Activity}}</td><td>{{.Label}}</td><td>{{.Position}}</td>
<td>{{.Start}}</td><td>{{.End}}</td>
<td class="number">{{.Hours}}</td><td class="number">{{.Depth}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>`

type htmlRow struct {
	Activity string
	Label    string
	Position string
	Start    string
	End      string
	Hours    string
	Depth    string
	Transit  bool
}

type htmlLeg struct {
	Name string
	Rows []htmlRow
}

type htmlReport struct {
	CruiseName  string
	Description string
	Stats       Summary
	TotalH      float64
	TotalDays   float64
	Legs        []htmlLeg
}

// WriteHTML renders the schedule report: cruise-wide summary statistics
// followed by one table per leg. The output is minified before writing.
func WriteHTML(cruiseName, description string, timeline []scheduler.ActivityRecord, path string) error {
	if len(timeline) == 0 {
		log.Warn().Msg("Timeline is empty, skipping HTML generation")
		return nil
	}

	stats := Summarize(timeline)
	report := htmlReport{
		CruiseName:  cruiseName,
		Description: description,
		Stats:       stats,
		TotalH:      stats.TotalDurationH(),
		TotalDays:   stats.TotalDurationH() / 24,
	}

	// Group rows by leg, keeping timeline order. Port transits carry no
	// leg name and land in a bracketing group.
	legIdx := map[string]int{}
	for _, rec := range timeline {
		name := rec.LegName
		if name == "" {
			name = "Port transits"
		}
		idx, ok := legIdx[name]
		if !ok {
			idx = len(report.Legs)
			legIdx[name] = idx
			report.Legs = append(report.Legs, htmlLeg{Name: name})
		}

		report.Legs[idx].Rows = append(report.Legs[idx].Rows, htmlRow{
			Activity: rec.Activity,
			Label:    rec.Label,
			Position: formatPosition(rec.Lat, rec.Lon),
			Start:    rec.StartTime.Format("2006-01-02 15:04"),
			End:      rec.EndTime.Format("2006-01-02 15:04"),
			Hours:    fmt.Sprintf("%.1f", rec.DurationMinutes/60),
			Depth:    fmt.Sprintf("%.0f", rec.Depth),
			Transit:  rec.Activity == scheduler.ActivityTransit && !rec.IsLineOperation(),
		})
	}

	tmpl, err := template.New("report").Parse(htmlReportTemplate)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, report); err != nil {
		return err
	}

	m := minify.New()
	m.AddFunc("text/html", minhtml.Minify)
	minified, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, minified, 0644); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("HTML report written")
	return nil
}
