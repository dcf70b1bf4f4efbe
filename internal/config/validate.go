package config

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Physical plausibility bounds. Values outside the hard bounds reject the
// configuration, values outside the soft bounds only log a warning.
const (
	maxVesselSpeedKn  = 20.0
	minSaneSpeedKn    = 1.0
	maxStationGapNm   = 150.0
	minTypicalGapNm   = 4.0
	maxTypicalGapNm   = 50.0
	maxSaneTurnaround = 60.0
	minCTDRateMS      = 0.5
	maxCTDRateMS      = 2.0
)

// Validate checks the configuration for physically implausible or
// internally inconsistent values. Hard failures return an error, merely
// suspicious values are logged as warnings.
func (c *Config) Validate() error {
	if c.DefaultVesselSpeed <= 0 {
		return fmt.Errorf("default_vessel_speed must be positive, got %g", c.DefaultVesselSpeed)
	}
	if c.DefaultVesselSpeed > maxVesselSpeedKn {
		return fmt.Errorf("default_vessel_speed %g kn exceeds %g kn, research vessels do not go that fast", c.DefaultVesselSpeed, maxVesselSpeedKn)
	}
	if c.DefaultVesselSpeed < minSaneSpeedKn {
		log.Warn().Float64("speed", c.DefaultVesselSpeed).
			Msg("Vessel speed below 1 kn, schedule will be extremely slow")
	}

	if c.DefaultStationSpacing <= 0 {
		return fmt.Errorf("default_station_spacing must be positive, got %g", c.DefaultStationSpacing)
	}
	if c.DefaultStationSpacing > maxStationGapNm {
		return fmt.Errorf("default_station_spacing %g nm exceeds %g nm", c.DefaultStationSpacing, maxStationGapNm)
	}
	if c.DefaultStationSpacing < minTypicalGapNm || c.DefaultStationSpacing > maxTypicalGapNm {
		log.Warn().Float64("spacing", c.DefaultStationSpacing).
			Msg("Station spacing outside the typical 4-50 nm range")
	}

	if c.TurnaroundTime < 0 {
		return fmt.Errorf("turnaround_time must not be negative, got %g", c.TurnaroundTime)
	}
	if c.TurnaroundTime > maxSaneTurnaround {
		log.Warn().Float64("minutes", c.TurnaroundTime).
			Msg("Turnaround time above 60 minutes")
	}

	for name, rate := range map[string]float64{
		"ctd_descent_rate": c.CTDDescentRate,
		"ctd_ascent_rate":  c.CTDAscentRate,
	} {
		if rate < minCTDRateMS || rate > maxCTDRateMS {
			return fmt.Errorf("%s %g m/s outside the plausible %g-%g m/s range", name, rate, minCTDRateMS, maxCTDRateMS)
		}
	}

	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		return fmt.Errorf("day_start_hour must be 0-23, got %d", c.DayStartHour)
	}
	if c.DayEndHour < 0 || c.DayEndHour > 23 {
		return fmt.Errorf("day_end_hour must be 0-23, got %d", c.DayEndHour)
	}
	if c.DayStartHour >= c.DayEndHour {
		return fmt.Errorf("day_start_hour %d must be before day_end_hour %d", c.DayStartHour, c.DayEndHour)
	}

	if err := c.validateCoordinates(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	c.checkReferences()

	return nil
}

// validateCoordinates checks coordinate ranges and rejects plans that mix
// the [-180,180] and [0,360] longitude conventions, which silently breaks
// distance calculations near the antimeridian.
func (c *Config) validateCoordinates() error {
	var hasNegative, hasOver180 bool

	check := func(owner string, lat, lon float64) error {
		if lat < -90 || lat > 90 {
			return fmt.Errorf("%s: latitude %g out of range", owner, lat)
		}
		if lon < -180 || lon > 360 {
			return fmt.Errorf("%s: longitude %g out of range", owner, lon)
		}
		if lon < 0 {
			hasNegative = true
		}
		if lon > 180 {
			hasOver180 = true
		}
		return nil
	}

	for i := range c.Stations {
		s := &c.Stations[i]
		if err := check("station "+s.Name, s.Position.Latitude, s.Position.Longitude); err != nil {
			return err
		}
	}
	for i := range c.Transits {
		for _, p := range c.Transits[i].Route {
			if err := check("transit "+c.Transits[i].Name, p.Latitude, p.Longitude); err != nil {
				return err
			}
		}
	}
	for i := range c.Areas {
		for _, p := range c.Areas[i].Corners {
			if err := check("area "+c.Areas[i].Name, p.Latitude, p.Longitude); err != nil {
				return err
			}
		}
	}
	for _, port := range []*Port{&c.DeparturePort, &c.ArrivalPort} {
		if port.Name == "" {
			continue
		}
		if err := check("port "+port.Name, port.Position.Latitude, port.Position.Longitude); err != nil {
			return err
		}
	}

	if hasNegative && hasOver180 {
		return fmt.Errorf("configuration mixes [-180,180] and [0,360] longitude conventions")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	seen := make(map[string]string, len(c.Stations)+len(c.Transits)+len(c.Areas))
	for i := range c.Stations {
		name := c.Stations[i].Name
		if name == "" {
			return fmt.Errorf("station %d has no name", i)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("duplicate name %q, already used by a %s", name, prev)
		}
		seen[name] = "station"
	}
	for i := range c.Transits {
		t := &c.Transits[i]
		if t.Name == "" {
			return fmt.Errorf("transit %d has no name", i)
		}
		if prev, dup := seen[t.Name]; dup {
			return fmt.Errorf("duplicate name %q, already used by a %s", t.Name, prev)
		}
		seen[t.Name] = "transit"
		if len(t.Route) < 2 {
			log.Warn().Str("transit", t.Name).Msg("Route has fewer than two points, distance will be zero")
		}
	}
	for i := range c.Areas {
		a := &c.Areas[i]
		if a.Name == "" {
			return fmt.Errorf("area %d has no name", i)
		}
		if prev, dup := seen[a.Name]; dup {
			return fmt.Errorf("duplicate name %q, already used by a %s", a.Name, prev)
		}
		seen[a.Name] = "area"
		if len(a.Corners) < 3 {
			return fmt.Errorf("area %q needs at least 3 corners, got %d", a.Name, len(a.Corners))
		}
	}
	return nil
}

// checkReferences warns about leg activities that resolve to nothing. The
// scheduler skips them at run time, surfacing the problem here keeps the
// failure close to the YAML being edited.
func (c *Config) checkReferences() {
	warn := func(leg string, entries []SequenceEntry) {
		for _, e := range entries {
			if c.FindStation(e.Name) != nil || c.FindTransit(e.Name) != nil || c.FindArea(e.Name) != nil {
				continue
			}
			log.Warn().Str("leg", leg).Str("name", e.Name).
				Msg("Activity does not match any station, transit or area")
		}
	}

	for i := range c.Legs {
		leg := &c.Legs[i]
		warn(leg.Name, leg.Sequence)
		warn(leg.Name, leg.Stations)
		for ci := range leg.Clusters {
			warn(leg.Name, leg.Clusters[ci].Sequence)
			warn(leg.Name, leg.Clusters[ci].Stations)
		}
	}
}
