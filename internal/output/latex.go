package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/rs/zerolog/log"
)

// maxRowsPerPage bounds a LaTeX table float before it gets split across
// pages with a "(Continued)" caption.
const maxRowsPerPage = 45

// formatPositionLatex renders a position in degrees and decimal minutes
// with LaTeX math-mode degree symbols.
func formatPositionLatex(lat, lon float64) string {
	latDeg, latMin := geo.DecimalToDMM(lat)
	lonDeg, lonMin := geo.DecimalToDMM(lon)

	latDir := "N"
	if lat < 0 {
		latDir = "S"
	}
	lonDir := "E"
	if lon < 0 {
		lonDir = "W"
	}

	return fmt.Sprintf(`%02d$^\circ$%05.2f'$%s$, %03d$^\circ$%05.2f'$%s$`,
		latDeg, latMin, latDir, lonDeg, lonMin, lonDir)
}

func latexEscape(s string) string {
	return strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
	).Replace(s)
}

// WriteLaTeXStations writes the proposal's station table: one row per
// scientific operation with its position and depth, paginated into
// separate table environments.
func WriteLaTeXStations(cruiseName string, timeline []scheduler.ActivityRecord, path string) error {
	var rows [][]string
	for _, rec := range timeline {
		if !rec.IsScientific() {
			continue
		}
		rows = append(rows, []string{
			latexEscape(rec.Activity),
			latexEscape(rec.Label),
			formatPositionLatex(rec.Lat, rec.Lon),
			fmt.Sprintf("%.0f", rec.Depth),
		})
	}

	var b strings.Builder
	writePaginated(&b, rows, func(first bool) {
		caption := fmt.Sprintf("%s: working area, stations and profiles", latexEscape(cruiseName))
		if !first {
			caption += " (Continued)"
		}
		b.WriteString("\\begin{table}[htbp]\n\\centering\n")
		fmt.Fprintf(&b, "\\caption{%s}\n", caption)
		b.WriteString("\\begin{tabular}{llrr}\n\\hline\n")
		b.WriteString("Operation & Station & Position & Depth [m] \\\\\n\\hline\n")
	})

	return writeTexFile(path, b.String())
}

// WriteLaTeXWorkDays writes the work-days-at-sea summary table used in
// ship-time proposals.
func WriteLaTeXWorkDays(cruiseName string, timeline []scheduler.ActivityRecord, path string) error {
	stats := Summarize(timeline)

	type entry struct {
		label string
		st    TypeStats
	}
	var rows [][]string
	for _, e := range []entry{
		{"Transit to/from working area", stats.PortArea},
		{"Transits within working area", stats.WithinArea},
		{"CTD stations", stats.Stations},
		{"Mooring operations", stats.Moorings},
		{"Underway surveys", stats.Surveys},
		{"Area surveys", stats.Areas},
	} {
		if e.st.TotalDurationH == 0 {
			continue
		}
		rows = append(rows, []string{
			latexEscape(e.label),
			fmt.Sprintf("%.1f", e.st.TotalDurationH),
			fmt.Sprintf("%.1f", e.st.TotalDays),
		})
	}
	rows = append(rows, []string{
		"\\textbf{Total}",
		fmt.Sprintf("\\textbf{%.1f}", stats.TotalDurationH()),
		fmt.Sprintf("\\textbf{%.1f}", stats.TotalDurationH()/24),
	})

	var b strings.Builder
	writePaginated(&b, rows, func(first bool) {
		caption := fmt.Sprintf("%s: work days at sea", latexEscape(cruiseName))
		if !first {
			caption += " (Continued)"
		}
		b.WriteString("\\begin{table}[htbp]\n\\centering\n")
		fmt.Fprintf(&b, "\\caption{%s}\n", caption)
		b.WriteString("\\begin{tabular}{lrr}\n\\hline\n")
		b.WriteString("Activity & Hours & Days \\\\\n\\hline\n")
	})

	return writeTexFile(path, b.String())
}

func writePaginated(b *strings.Builder, rows [][]string, header func(first bool)) {
	for start := 0; start < len(rows); start += maxRowsPerPage {
		end := start + maxRowsPerPage
		if end > len(rows) {
			end = len(rows)
		}

		header(start == 0)
		for _, row := range rows[start:end] {
			b.WriteString(strings.Join(row, " & "))
			b.WriteString(" \\\\\n")
		}
		b.WriteString("\\hline\n\\end{tabular}\n\\end{table}\n\n")
	}
}

func writeTexFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("LaTeX table written")
	return nil
}
