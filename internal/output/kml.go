package output

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/rs/zerolog/log"
)

type kml struct {
	XMLName  xml.Name    `xml:"kml"`
	Xmlns    string      `xml:"xmlns,attr"`
	Document kmlDocument `xml:"Document"`
}

type kmlDocument struct {
	Name       string         `xml:"name"`
	Styles     []kmlStyle     `xml:"Style"`
	Placemarks []kmlPlacemark `xml:"Placemark"`
}

type kmlStyle struct {
	ID        string        `xml:"id,attr"`
	IconStyle *kmlIconStyle `xml:"IconStyle,omitempty"`
	LineStyle *kmlLineStyle `xml:"LineStyle,omitempty"`
}

type kmlIconStyle struct {
	Color string  `xml:"color"`
	Scale float64 `xml:"scale"`
}

type kmlLineStyle struct {
	Color string `xml:"color"`
	Width int    `xml:"width"`
}

type kmlPlacemark struct {
	Name        string         `xml:"name"`
	Description string         `xml:"description,omitempty"`
	StyleURL    string         `xml:"styleUrl,omitempty"`
	Point       *kmlPoint      `xml:"Point,omitempty"`
	LineString  *kmlLineString `xml:"LineString,omitempty"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlLineString struct {
	Tessellate  int    `xml:"tessellate"`
	Coordinates string `xml:"coordinates"`
}

// KML colors are aabbggrr.
var kmlStyles = []kmlStyle{
	{ID: "station", IconStyle: &kmlIconStyle{Color: "ff0000ff", Scale: 1.0}},
	{ID: "mooring", IconStyle: &kmlIconStyle{Color: "ffff0000", Scale: 1.2}},
	{ID: "area", IconStyle: &kmlIconStyle{Color: "ff00ff00", Scale: 1.0}},
	{ID: "track", LineStyle: &kmlLineStyle{Color: "ff00aaff", Width: 2}},
}

func kmlStyleFor(activity string) string {
	switch activity {
	case scheduler.ActivityMooring:
		return "#mooring"
	case scheduler.ActivityArea:
		return "#area"
	default:
		return "#station"
	}
}

// WriteKML writes the timeline as a KML document: one placemark per
// operation and a cruise-track line, viewable in Google Earth.
func WriteKML(cruiseName string, timeline []scheduler.ActivityRecord, path string) error {
	doc := kmlDocument{Name: cruiseName, Styles: kmlStyles}

	var track []string
	for _, rec := range timeline {
		track = append(track, fmt.Sprintf("%g,%g,0", rec.Lon, rec.Lat))

		if rec.Activity == scheduler.ActivityTransit {
			continue
		}

		desc := fmt.Sprintf("%s\n%s - %s\nDuration: %.1f h",
			rec.Activity,
			rec.StartTime.Format("2006-01-02 15:04"),
			rec.EndTime.Format("2006-01-02 15:04"),
			rec.DurationMinutes/60)
		if rec.Depth > 0 {
			desc += fmt.Sprintf("\nDepth: %.0f m", rec.Depth)
		}

		doc.Placemarks = append(doc.Placemarks, kmlPlacemark{
			Name:        rec.Label,
			Description: desc,
			StyleURL:    kmlStyleFor(rec.Activity),
			Point:       &kmlPoint{Coordinates: fmt.Sprintf("%g,%g,0", rec.Lon, rec.Lat)},
		})
	}

	if len(track) >= 2 {
		doc.Placemarks = append(doc.Placemarks, kmlPlacemark{
			Name:     "Cruise track",
			StyleURL: "#track",
			LineString: &kmlLineString{
				Tessellate:  1,
				Coordinates: strings.Join(track, " "),
			},
		})
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

	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(kml{
		Xmlns:    "http://www.opengis.net/kml/2.2",
		Document: doc,
	}); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("KML written")
	return nil
}
