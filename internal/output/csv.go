package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/rs/zerolog/log"
)

var csvHeader = []string{
	"Activity", "Label (name)", "Location",
	"Activity duration [h]", "Depth [m]",
	"Lat [deg]", "Lon [deg]",
	"Transit distance [nm]", "Transit time [h]", "Vessel speed [kt]",
	"Start (date)", "Start (time HH:MM:SS)",
	"End (date)", "End (time HH:MM:SS)",
	"Leg", "Notes",
}

// WriteCSV renders the timeline as the operational schedule spreadsheet,
// one row per activity record.
func WriteCSV(timeline []scheduler.ActivityRecord, path string) error {
	if len(timeline) == 0 {
		log.Warn().Msg("Timeline is empty, skipping CSV generation")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, rec := range timeline {
		transitTimeH := 0.0
		if rec.VesselSpeed > 0 {
			transitTimeH = rec.TransitDistNm / rec.VesselSpeed
		}

		row := []string{
			rec.Activity,
			rec.Label,
			geo.FormatDMM(rec.Lat, rec.Lon),
			fmt.Sprintf("%.2f", rec.DurationMinutes/60),
			fmt.Sprintf("%.0f", rec.Depth),
			fmt.Sprintf("%g", rec.Lat),
			fmt.Sprintf("%g", rec.Lon),
			fmt.Sprintf("%.1f", rec.TransitDistNm),
			fmt.Sprintf("%.1f", transitTimeH),
			fmt.Sprintf("%g", rec.VesselSpeed),
			rec.StartTime.Format("2006-01-02"),
			rec.StartTime.Format("15:04:05"),
			rec.EndTime.Format("2006-01-02"),
			rec.EndTime.Format("15:04:05"),
			rec.LegName,
			"",
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("rows", len(timeline)).Msg("CSV schedule written")
	return nil
}
