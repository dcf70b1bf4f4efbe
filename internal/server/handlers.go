// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ocean-uhh/cruiseplan/internal/output"
)

const etagCap = 64

// artifactTypes whitelists the downloadable artifacts and their content
// types. Anything else under the output directory is not served.
var artifactTypes = map[string]string{
	".csv":     "text/csv",
	".html":    "text/html; charset=utf-8",
	".tex":     "text/plain; charset=utf-8",
	".kml":     "application/vnd.google-earth.kml+xml",
	".nc":      "application/netcdf",
	".geojson": "application/geo+json",
	".png":     "image/png",
	".webp":    "image/webp",
}

// HandleIndex serves the embedded map viewer.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleSchedule serves the scheduled timeline as JSON.
func (s *ServerContext) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Timeline)
}

// HandleSummary serves the per-category aggregates as JSON.
func (s *ServerContext) HandleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.Summary)
}

// HandleTrack serves the timeline as a GeoJSON feature collection for the
// map viewer.
func (s *ServerContext) HandleTrack(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	_ = json.NewEncoder(w).Encode(output.BuildFeatureCollection(s.Timeline))
}

// HandleCruise serves cruise-level metadata.
func (s *ServerContext) HandleCruise(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"cruise_name":    s.Config.CruiseName,
		"description":    s.Config.Description,
		"start_date":     s.Config.StartDate,
		"departure_port": s.Config.DeparturePort.Name,
		"arrival_port":   s.Config.ArrivalPort.Name,
		"activities":     len(s.Timeline),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info)
}

// HandleArtifact serves generated output files for download.
// Path: /artifacts/{file}
func (s *ServerContext) HandleArtifact(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}

	name := parts[1]
	// no path probing into the output dir
	if name != filepath.Base(name) {
		http.NotFound(w, r)
		return
	}

	contentType, ok := artifactTypes[filepath.Ext(name)]
	if !ok {
		http.NotFound(w, r)
		return
	}

	if !s.serveFile(w, r, filepath.Join(s.OutputDir, name), contentType) {
		http.NotFound(w, r)
	}
}

// serveFile tries to serve a file from disk with ETag generation.
// It returns true if the file was found and served (or 304).
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	http.ServeFile(w, r, path)
	return true
}
