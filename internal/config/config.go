// Package config handles cruise configuration loading and shared data
// structures.
package config

import (
	"fmt"
	"os"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
	"github.com/ocean-uhh/cruiseplan/internal/ports"

	"gopkg.in/yaml.v3"
)

// Point operation types accepted in station definitions.
const (
	OpCTD           = "CTD"
	OpWaterSampling = "water_sampling"
	OpMooring       = "mooring"
	OpCalibration   = "calibration"
	OpSurvey        = "survey"
)

// Default cruise parameters, applied when the YAML leaves them unset.
const (
	DefaultTurnaroundTimeMin = 30.0
	DefaultCTDRateMS         = 1.0
	DefaultStationSpacingNm  = 15.0
	DefaultDayStartHour      = 8
	DefaultDayEndHour        = 20
	DefaultStartTime         = "08:00"
)

// Port is a departure or arrival port. In YAML it is either a registry
// reference string ("port_reykjavik") or an inline definition with a name
// and position.
type Port struct {
	Name        string
	DisplayName string
	Position    geo.Point
	Timezone    string

	ref string
}

// UnmarshalYAML accepts a registry reference string or an inline mapping
// with explicit coordinates, given as latitude/longitude fields or a
// position value.
func (p *Port) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		p.ref = value.Value
		return nil
	}

	var raw struct {
		Name        string     `yaml:"name"`
		DisplayName string     `yaml:"display_name"`
		Position    *geo.Point `yaml:"position"`
		Latitude    *float64   `yaml:"latitude"`
		Longitude   *float64   `yaml:"longitude"`
		Timezone    string     `yaml:"timezone"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	pos, err := unifyPosition(raw.Position, raw.Latitude, raw.Longitude)
	if err != nil {
		return fmt.Errorf("port %q: %w", raw.Name, err)
	}

	p.Name = raw.Name
	p.DisplayName = raw.DisplayName
	p.Timezone = raw.Timezone
	if pos != nil {
		p.Position = *pos
	}
	return nil
}

// Station is a point scientific operation: a CTD cast, water sampling,
// calibration, or a mooring deployment/recovery. Moorings live in the same
// catalog as stations, distinguished by OperationType.
type Station struct {
	Name           string
	Position       geo.Point
	Depth          float64 // legacy combined depth, meters
	OperationDepth float64 // target depth of the operation itself
	WaterDepth     float64 // seafloor depth at the location
	Duration       float64 // manual duration override, minutes
	DelayStart     float64 // pre-operation buffer, minutes
	DelayEnd       float64 // post-operation buffer, minutes
	OperationType  string
	Action         string
	Comment        string
	Equipment      string
}

// UnmarshalYAML unifies the two position formats station definitions allow:
// explicit latitude/longitude fields, or a position string/mapping.
func (s *Station) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name           string     `yaml:"name"`
		Position       *geo.Point `yaml:"position"`
		Latitude       *float64   `yaml:"latitude"`
		Longitude      *float64   `yaml:"longitude"`
		Depth          float64    `yaml:"depth"`
		OperationDepth float64    `yaml:"operation_depth"`
		WaterDepth     float64    `yaml:"water_depth"`
		Duration       float64    `yaml:"duration"`
		DelayStart     float64    `yaml:"delay_start"`
		DelayEnd       float64    `yaml:"delay_end"`
		OperationType  string     `yaml:"operation_type"`
		Action         string     `yaml:"action"`
		Comment        string     `yaml:"comment"`
		Equipment      string     `yaml:"equipment"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	pos, err := unifyPosition(raw.Position, raw.Latitude, raw.Longitude)
	if err != nil {
		return fmt.Errorf("station %q: %w", raw.Name, err)
	}

	s.Name = raw.Name
	s.Depth = raw.Depth
	s.OperationDepth = raw.OperationDepth
	s.WaterDepth = raw.WaterDepth
	s.Duration = raw.Duration
	s.DelayStart = raw.DelayStart
	s.DelayEnd = raw.DelayEnd
	s.OperationType = raw.OperationType
	s.Action = raw.Action
	s.Comment = raw.Comment
	s.Equipment = raw.Equipment
	if pos != nil {
		s.Position = *pos
	}
	return nil
}

// EffectiveDepth returns the depth used for duration calculations,
// preferring the explicit operation depth over the water depth over the
// legacy combined field.
func (s *Station) EffectiveDepth() float64 {
	switch {
	case s.OperationDepth != 0:
		return abs(s.OperationDepth)
	case s.WaterDepth != 0:
		return abs(s.WaterDepth)
	default:
		return abs(s.Depth)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Transit is a route between points, either pure navigation or a
// scientific underway operation (ADCP section, tow) when OperationType is
// set.
type Transit struct {
	Name          string      `yaml:"name"`
	Route         []geo.Point `yaml:"route"`
	VesselSpeed   float64     `yaml:"vessel_speed"` // knots, 0 means cruise default
	OperationType string      `yaml:"operation_type"`
	Action        string      `yaml:"action"`
	Comment       string      `yaml:"comment"`
}

// Area is a polygonal survey region addressed by the centroid of its
// corners.
type Area struct {
	Name          string      `yaml:"name"`
	Corners       []geo.Point `yaml:"corners"`
	OperationType string      `yaml:"operation_type"`
	Action        string      `yaml:"action"`
	Duration      float64     `yaml:"duration"` // minutes
	Comment       string      `yaml:"comment"`
}

// SequenceEntry is one element of a leg or cluster activity list: either a
// bare name referencing a catalog entry, or an inline station definition.
// Inline definitions are hoisted into the station catalog during Load, so
// after loading only the name matters.
type SequenceEntry struct {
	Name   string
	Inline *Station
}

// UnmarshalYAML decodes either a scalar name or an inline station mapping.
func (e *SequenceEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Name = value.Value
		return nil
	}

	var st Station
	if err := value.Decode(&st); err != nil {
		return err
	}
	e.Name = st.Name
	e.Inline = &st
	return nil
}

// BufferTime is a leg contingency allowance in minutes. Iterative plans
// often carry placeholder values here ("TBD", "???"); anything that is not
// a plain number counts as zero rather than failing the load.
type BufferTime float64

// UnmarshalYAML decodes a numeric buffer time, mapping non-numeric values
// to zero.
func (b *BufferTime) UnmarshalYAML(value *yaml.Node) error {
	var f float64
	if err := value.Decode(&f); err != nil {
		*b = 0
		return nil
	}
	*b = BufferTime(f)
	return nil
}

// Minutes returns the buffer as a plain float.
func (b BufferTime) Minutes() float64 { return float64(b) }

// Cluster is a named sub-grouping of activities inside a leg. Clusters do
// not nest.
type Cluster struct {
	Name     string          `yaml:"name"`
	Strategy string          `yaml:"strategy"`
	Sequence []SequenceEntry `yaml:"sequence"`
	Stations []SequenceEntry `yaml:"stations"`
}

// Leg is one schedule-organization unit of the cruise. Its activities come
// from exactly one of Sequence, Clusters, or Stations, in that priority.
type Leg struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	BufferTime  BufferTime      `yaml:"buffer_time"`
	Sequence    []SequenceEntry `yaml:"sequence"`
	Clusters    []Cluster       `yaml:"clusters"`
	Stations    []SequenceEntry `yaml:"stations"`
}

// Config is the root cruise configuration.
type Config struct {
	CruiseName  string `yaml:"cruise_name"`
	Description string `yaml:"description"`

	DefaultVesselSpeed    float64 `yaml:"default_vessel_speed"`    // knots
	DefaultStationSpacing float64 `yaml:"default_station_spacing"` // nm, for gridded section planning
	TurnaroundTime        float64 `yaml:"turnaround_time"`         // minutes
	CTDDescentRate        float64 `yaml:"ctd_descent_rate"`        // m/s
	CTDAscentRate         float64 `yaml:"ctd_ascent_rate"`         // m/s

	DayStartHour int `yaml:"day_start_hour"`
	DayEndHour   int `yaml:"day_end_hour"`

	StartDate string `yaml:"start_date"` // "2028-06-01" or a full ISO datetime
	StartTime string `yaml:"start_time"` // "08:00", combined with a date-only StartDate

	DeparturePort Port `yaml:"departure_port"`
	ArrivalPort   Port `yaml:"arrival_port"`

	FirstStation string `yaml:"first_station"`
	LastStation  string `yaml:"last_station"`

	Stations []Station `yaml:"stations"`
	Transits []Transit `yaml:"transits"`
	Areas    []Area    `yaml:"areas"`
	Legs     []Leg     `yaml:"legs"`
}

// Load reads, parses, normalizes and validates the YAML configuration file
// at the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML configuration from memory.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{
		DefaultStationSpacing: DefaultStationSpacingNm,
		TurnaroundTime:        DefaultTurnaroundTimeMin,
		CTDDescentRate:        DefaultCTDRateMS,
		CTDAscentRate:         DefaultCTDRateMS,
		DayStartHour:          DefaultDayStartHour,
		DayEndHour:            DefaultDayEndHour,
		StartTime:             DefaultStartTime,
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize resolves port registry references and hoists inline station
// definitions from legs and clusters into the station catalog, so the
// scheduler only ever resolves by name.
func (c *Config) normalize() error {
	for _, port := range []*Port{&c.DeparturePort, &c.ArrivalPort} {
		if port.ref == "" {
			continue
		}
		entry, ok := ports.Lookup(port.ref)
		if !ok {
			return fmt.Errorf("unknown port reference %q", port.ref)
		}
		port.Name = entry.Name
		port.DisplayName = entry.DisplayName
		port.Position = entry.Position
		port.Timezone = entry.Timezone
	}

	for li := range c.Legs {
		leg := &c.Legs[li]
		c.hoistInline(leg.Sequence)
		c.hoistInline(leg.Stations)
		for ci := range leg.Clusters {
			c.hoistInline(leg.Clusters[ci].Sequence)
			c.hoistInline(leg.Clusters[ci].Stations)
		}
	}

	for i := range c.Areas {
		if c.Areas[i].OperationType == "" {
			c.Areas[i].OperationType = OpSurvey
		}
	}

	return nil
}

func (c *Config) hoistInline(entries []SequenceEntry) {
	for _, e := range entries {
		if e.Inline == nil {
			continue
		}
		if c.FindStation(e.Name) == nil {
			c.Stations = append(c.Stations, *e.Inline)
		}
	}
}

// FindStation returns the station catalog entry with the given name, or
// nil.
func (c *Config) FindStation(name string) *Station {
	for i := range c.Stations {
		if c.Stations[i].Name == name {
			return &c.Stations[i]
		}
	}
	return nil
}

// FindTransit returns the transit catalog entry with the given name, or
// nil.
func (c *Config) FindTransit(name string) *Transit {
	for i := range c.Transits {
		if c.Transits[i].Name == name {
			return &c.Transits[i]
		}
	}
	return nil
}

// FindArea returns the area catalog entry with the given name, or nil.
func (c *Config) FindArea(name string) *Area {
	for i := range c.Areas {
		if c.Areas[i].Name == name {
			return &c.Areas[i]
		}
	}
	return nil
}

func unifyPosition(pos *geo.Point, lat, lon *float64) (*geo.Point, error) {
	hasLat, hasLon := lat != nil, lon != nil
	if hasLat != hasLon {
		return nil, fmt.Errorf("latitude and longitude must be provided together")
	}
	if hasLat {
		return &geo.Point{Latitude: *lat, Longitude: *lon}, nil
	}
	return pos, nil
}
