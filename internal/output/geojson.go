package output

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/rs/zerolog/log"
)

// BuildFeatureCollection converts a timeline into GeoJSON: point features
// for point operations, line strings for transits and a polygon per survey
// area, plus one cruise-track line over all positions.
func BuildFeatureCollection(timeline []scheduler.ActivityRecord) geo.FeatureCollection {
	fc := geo.FeatureCollection{Type: "FeatureCollection"}

	var track []geo.Point
	for _, rec := range timeline {
		props := map[string]interface{}{
			"activity":         rec.Activity,
			"label":            rec.Label,
			"leg":              rec.LegName,
			"start_time":       rec.StartTime.Format("2006-01-02T15:04:05"),
			"end_time":         rec.EndTime.Format("2006-01-02T15:04:05"),
			"duration_minutes": rec.DurationMinutes,
		}
		if rec.OperationType != "" {
			props["operation_type"] = rec.OperationType
		}
		if rec.Action != "" {
			props["action"] = rec.Action
		}
		if rec.Depth > 0 {
			props["depth"] = rec.Depth
		}

		var geom geo.Geometry
		switch {
		case len(rec.Corners) >= 3:
			geom = geo.PolygonGeometry(rec.Corners)
		case rec.Activity == scheduler.ActivityTransit:
			geom = geo.LineGeometry([]geo.Point{
				{Latitude: rec.StartLat, Longitude: rec.StartLon},
				{Latitude: rec.Lat, Longitude: rec.Lon},
			})
		default:
			geom = geo.PointGeometry(geo.Point{Latitude: rec.Lat, Longitude: rec.Lon})
		}

		fc.Features = append(fc.Features, geo.Feature{
			Type:       "Feature",
			Geometry:   geom,
			Properties: props,
		})

		track = append(track, geo.Point{Latitude: rec.Lat, Longitude: rec.Lon})
	}

	if len(track) >= 2 {
		fc.Features = append(fc.Features, geo.Feature{
			Type:       "Feature",
			Geometry:   geo.LineGeometry(track),
			Properties: map[string]interface{}{"label": "Cruise track"},
		})
	}

	return fc
}

// WriteGeoJSON writes the timeline as a GeoJSON feature collection.
func WriteGeoJSON(timeline []scheduler.ActivityRecord, path string) error {
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

	if err := json.NewEncoder(f).Encode(BuildFeatureCollection(timeline)); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("GeoJSON written")
	return nil
}
