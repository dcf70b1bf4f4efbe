package output

import (
	"encoding/binary"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	if err := WriteCSV(sampleTimeline(), path); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if len(rows) != len(sampleTimeline())+1 {
		t.Fatalf("got %d rows, want %d", len(rows), len(sampleTimeline())+1)
	}
	if rows[0][0] != "Activity" || rows[0][14] != "Leg" {
		t.Errorf("header = %v", rows[0])
	}

	stn := rows[2]
	if stn[0] != "Station" || stn[1] != "STN_001" {
		t.Errorf("station row = %v", stn)
	}
	if stn[2] != "45 00.00'N, 045 00.00'W" {
		t.Errorf("position = %q", stn[2])
	}
	if stn[4] != "2850" {
		t.Errorf("depth = %q", stn[4])
	}
	if stn[10] != "2028-06-02" {
		t.Errorf("start date = %q", stn[10])
	}
}

func TestWriteGeoJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cruise.geojson")
	if err := WriteGeoJSON(sampleTimeline(), path); err != nil {
		t.Fatalf("WriteGeoJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var fc geo.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		t.Fatalf("invalid GeoJSON: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}

	// One feature per record plus the cruise track.
	if len(fc.Features) != len(sampleTimeline())+1 {
		t.Errorf("features = %d", len(fc.Features))
	}

	types := map[string]int{}
	for _, f := range fc.Features {
		types[f.Geometry.Type]++
	}
	if types["Polygon"] != 1 {
		t.Errorf("polygons = %d, want 1 for the survey area", types["Polygon"])
	}
	if types["Point"] != 2 {
		t.Errorf("points = %d, want station and mooring", types["Point"])
	}
}

func TestWriteKML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cruise.kml")
	if err := WriteKML("TEST-01", sampleTimeline(), path); err != nil {
		t.Fatalf("WriteKML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Document struct {
			Name       string `xml:"name"`
			Placemarks []struct {
				Name string `xml:"name"`
			} `xml:"Placemark"`
		} `xml:"Document"`
	}
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid KML: %v", err)
	}

	if doc.Document.Name != "TEST-01" {
		t.Errorf("document name = %q", doc.Document.Name)
	}

	// Station, mooring, area and the cruise track; transits produce no
	// placemark of their own.
	if len(doc.Document.Placemarks) != 4 {
		t.Errorf("placemarks = %d", len(doc.Document.Placemarks))
	}
}

func TestWriteNetCDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cruise.nc")
	meta := CruiseMeta{Title: "TEST-01", VesselSpeedKn: 10}
	if err := WriteNetCDF(meta, sampleTimeline(), path); err != nil {
		t.Fatalf("WriteNetCDF: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data[:4]) != "CDF\x01" {
		t.Fatalf("magic = %q", data[:4])
	}

	// numrecs is zero (no record dimension), then the dimension list:
	// tag 0x0A, two dimensions, first named "station" with the count of
	// discrete sampling points.
	if n := binary.BigEndian.Uint32(data[4:8]); n != 0 {
		t.Errorf("numrecs = %d", n)
	}
	if tag := binary.BigEndian.Uint32(data[8:12]); tag != 0x0A {
		t.Errorf("dim tag = %#x", tag)
	}
	if n := binary.BigEndian.Uint32(data[12:16]); n != 2 {
		t.Errorf("dim count = %d", n)
	}
	nameLen := binary.BigEndian.Uint32(data[16:20])
	if got := string(data[20 : 20+nameLen]); got != "station" {
		t.Errorf("first dimension = %q", got)
	}
	sizeOff := 20 + int(nameLen)
	sizeOff += int((4 - nameLen%4) % 4) // name padding
	if got := binary.BigEndian.Uint32(data[sizeOff : sizeOff+4]); got != 2 {
		t.Errorf("station dimension = %d, want 2 (station and mooring only)", got)
	}
}

func TestWriteNetCDFSkipsWithoutStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cruise.nc")
	transitOnly := []scheduler.ActivityRecord{sampleTimeline()[0]}

	if err := WriteNetCDF(CruiseMeta{}, transitOnly, path); err != nil {
		t.Fatalf("WriteNetCDF: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file created despite having no sampling points")
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.html")
	if err := WriteHTML("TEST-01", "Subpolar section", sampleTimeline(), path); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	for _, want := range []string{"TEST-01", "Subpolar section", "STN_001", "MOOR_A", "leg1", "leg2"} {
		if !strings.Contains(html, want) {
			t.Errorf("report does not mention %q", want)
		}
	}

	// Minification strips the indentation the template carries.
	if strings.Contains(html, "\n<td") {
		t.Error("output does not look minified")
	}
}

func TestWriteLaTeXPagination(t *testing.T) {
	var timeline []scheduler.ActivityRecord
	for i := 0; i < 100; i++ {
		rec := sampleTimeline()[1]
		rec.Label = fmt.Sprintf("STN_%03d", i+1)
		timeline = append(timeline, rec)
	}

	path := filepath.Join(t.TempDir(), "stations.tex")
	if err := WriteLaTeXStations("TEST-01", timeline, path); err != nil {
		t.Fatalf("WriteLaTeXStations: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tex := string(data)

	// 100 rows at 45 per page is three table environments.
	if got := strings.Count(tex, `\begin{table}`); got != 3 {
		t.Errorf("tables = %d, want 3", got)
	}
	if got := strings.Count(tex, "(Continued)"); got != 2 {
		t.Errorf("continuation captions = %d, want 2", got)
	}
	if !strings.Contains(tex, `STN\_001`) {
		t.Error("underscores not escaped")
	}
}

func TestWriteLaTeXWorkDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work_days.tex")
	if err := WriteLaTeXWorkDays("TEST-01", sampleTimeline(), path); err != nil {
		t.Fatalf("WriteLaTeXWorkDays: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tex := string(data)

	for _, want := range []string{"CTD stations", "Mooring operations", `\textbf{Total}`} {
		if !strings.Contains(tex, want) {
			t.Errorf("work-days table missing %q", want)
		}
	}
}

func TestWriteMapImage(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "map.png")
	webpPath := filepath.Join(dir, "map.webp")

	if err := WriteMapImage(sampleTimeline(), pngPath, webpPath); err != nil {
		t.Fatalf("WriteMapImage: %v", err)
	}

	for _, p := range []string{pngPath, webpPath} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("missing %s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}
