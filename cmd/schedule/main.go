package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ocean-uhh/cruiseplan/internal/config"
	"github.com/ocean-uhh/cruiseplan/internal/logger"
	"github.com/ocean-uhh/cruiseplan/internal/output"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config"  env:"CRUISE_CONFIG" description:"Path to cruise configuration file" default:"cruise.yaml"`
	OutputDir  string   `short:"o" long:"output"  env:"OUTPUT_DIR"    description:"Output directory"                  default:"output"`
	Formats    []string `short:"f" long:"format"  description:"Output formats (csv, html, latex, kml, netcdf, geojson, map); all when not set"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	timeline, err := scheduler.BuildTimeline(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build timeline")
	}
	if len(timeline) == 0 {
		log.Warn().Msg("Timeline is empty, nothing to write")
		return
	}

	wanted := map[string]bool{}
	for _, f := range opts.Formats {
		wanted[strings.ToLower(f)] = true
	}
	enabled := func(name string) bool {
		return len(wanted) == 0 || wanted[name]
	}

	log.Info().
		Str("cruise", cfg.CruiseName).
		Int("activities", len(timeline)).
		Str("output", opts.OutputDir).
		Msg("Timeline generated")

	dir := opts.OutputDir
	fail := false
	run := func(name string, err error) {
		if err != nil {
			log.Error().Err(err).Str("format", name).Msg("Output generation failed")
			fail = true
		}
	}

	if enabled("csv") {
		run("csv", output.WriteCSV(timeline, filepath.Join(dir, "cruise_schedule.csv")))
	}
	if enabled("html") {
		run("html", output.WriteHTML(cfg.CruiseName, cfg.Description, timeline,
			filepath.Join(dir, "cruise_schedule.html")))
	}
	if enabled("latex") {
		run("latex", output.WriteLaTeXStations(cfg.CruiseName, timeline,
			filepath.Join(dir, cfg.CruiseName+"_stations.tex")))
		run("latex", output.WriteLaTeXWorkDays(cfg.CruiseName, timeline,
			filepath.Join(dir, cfg.CruiseName+"_work_days.tex")))
	}
	if enabled("kml") {
		run("kml", output.WriteKML(cfg.CruiseName, timeline, filepath.Join(dir, "cruise.kml")))
	}
	if enabled("netcdf") {
		meta := output.CruiseMeta{Title: cfg.CruiseName, VesselSpeedKn: cfg.DefaultVesselSpeed}
		run("netcdf", output.WriteNetCDF(meta, timeline, filepath.Join(dir, "cruise.nc")))
	}
	if enabled("geojson") {
		run("geojson", output.WriteGeoJSON(timeline, filepath.Join(dir, "cruise.geojson")))
	}
	if enabled("map") {
		run("map", output.WriteMapImage(timeline,
			filepath.Join(dir, "cruise_map.png"), filepath.Join(dir, "cruise_map.webp")))
	}

	if fail {
		os.Exit(1)
	}
	log.Info().Msg("Schedule generation finished successfully")
}
