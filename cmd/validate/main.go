package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ocean-uhh/cruiseplan/internal/config"
	"github.com/ocean-uhh/cruiseplan/internal/logger"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CRUISE_CONFIG" description:"Path to cruise configuration file" default:"cruise.yaml"`
	Format     string `short:"f" long:"format" description:"Report format" choice:"json" choice:"yaml" default:"json"`
	Quiet      bool   `short:"q" long:"quiet"  description:"Suppress the report, only set the exit code"`
}

// report summarizes a validated plan.
type report struct {
	CruiseName    string  `json:"cruise_name" yaml:"cruise_name"`
	StartDate     string  `json:"start_date" yaml:"start_date"`
	DeparturePort string  `json:"departure_port" yaml:"departure_port"`
	ArrivalPort   string  `json:"arrival_port" yaml:"arrival_port"`
	Stations      int     `json:"stations" yaml:"stations"`
	Transits      int     `json:"transits" yaml:"transits"`
	Areas         int     `json:"areas" yaml:"areas"`
	Legs          int     `json:"legs" yaml:"legs"`
	Activities    int     `json:"scheduled_activities" yaml:"scheduled_activities"`
	TotalDays     float64 `json:"total_days" yaml:"total_days"`
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
		log.Error().Err(err).Msg("Configuration is invalid")
		os.Exit(1)
	}

	// A dry scheduling run catches problems validation alone cannot,
	// like an unparseable start date.
	timeline, err := scheduler.BuildTimeline(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Configuration loads but does not schedule")
		os.Exit(1)
	}

	if opts.Quiet {
		return
	}

	rep := report{
		CruiseName:    cfg.CruiseName,
		StartDate:     cfg.StartDate,
		DeparturePort: cfg.DeparturePort.Name,
		ArrivalPort:   cfg.ArrivalPort.Name,
		Stations:      len(cfg.Stations),
		Transits:      len(cfg.Transits),
		Areas:         len(cfg.Areas),
		Legs:          len(cfg.Legs),
		Activities:    len(timeline),
	}
	if len(timeline) > 0 {
		last := timeline[len(timeline)-1]
		rep.TotalDays = last.EndTime.Sub(timeline[0].StartTime).Hours() / 24
	}

	var out []byte
	if opts.Format == "yaml" {
		out, err = yaml.Marshal(rep)
	} else {
		out, err = json.MarshalIndent(rep, "", "  ")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal report")
	}

	fmt.Println(string(out))
}
