package server

import (
	"os"
	"path/filepath"

	"github.com/ocean-uhh/cruiseplan/assets"
	"github.com/ocean-uhh/cruiseplan/internal/config"
	"github.com/ocean-uhh/cruiseplan/internal/output"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers: the loaded cruise
// plan, its scheduled timeline, and the directory of generated artifacts.
type ServerContext struct {
	Config    *config.Config
	Timeline  []scheduler.ActivityRecord
	Summary   output.Summary
	OutputDir string
	IndexHTML []byte
}

// NewServerContext builds the context and checks which generated artifacts
// are present on disk.
func NewServerContext(cfg *config.Config, timeline []scheduler.ActivityRecord, outputDir string) *ServerContext {
	for _, name := range []string{"cruise_schedule.csv", "cruise.geojson", "cruise_map.png"} {
		path := filepath.Join(outputDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("Artifact not generated yet")
		}
	}

	log.Info().
		Str("cruise", cfg.CruiseName).
		Int("activities", len(timeline)).
		Str("output", outputDir).
		Msg("Server context initialized")

	return &ServerContext{
		Config:    cfg,
		Timeline:  timeline,
		Summary:   output.Summarize(timeline),
		OutputDir: outputDir,
		IndexHTML: assets.Index,
	}
}
