package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/ocean-uhh/cruiseplan/internal/config"
	"github.com/ocean-uhh/cruiseplan/internal/logger"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"
	"github.com/ocean-uhh/cruiseplan/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE"    description:"Path to cruise configuration file" default:"cruise.yaml"`
	OutputDir  string `short:"o" long:"output" env:"OUTPUT_DIR"     description:"Directory with generated artifacts" default:"output"`
	Addr       string `short:"a" long:"addr"   env:"LISTEN_ADDRESS" description:"Address to listen on"               default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"   env:"LISTEN_PORT"    description:"Port to listen on"                  default:"8080"`
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

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	timeline, err := scheduler.BuildTimeline(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build timeline")
	}

	srvCtx := server.NewServerContext(cfg, timeline, opts.OutputDir)

	// Routes
	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", srvCtx.HandleSchedule)
	mux.HandleFunc("/api/summary", srvCtx.HandleSummary)
	mux.HandleFunc("/api/track", srvCtx.HandleTrack)
	mux.HandleFunc("/api/cruise", srvCtx.HandleCruise)
	mux.HandleFunc("/artifacts/", srvCtx.HandleArtifact)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", srvCtx.HandleIndex)

	handler := server.RequestLogger(mux)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	log.Info().
		Str("addr", listenAddr).
		Str("cruise", cfg.CruiseName).
		Int("activities", len(timeline)).
		Msg("Web server started")

	if err := http.ListenAndServe(listenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
