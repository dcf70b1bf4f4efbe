// Package scheduler turns a cruise configuration into an ordered activity
// timeline by forward-simulating the vessel's clock and position.
package scheduler

import (
	"github.com/ocean-uhh/cruiseplan/internal/config"
	"github.com/ocean-uhh/cruiseplan/internal/geo"
)

// OpType classifies a resolved catalog entry for scheduling purposes.
type OpType string

// Scheduling categories. Station-like point operations collapse onto
// OpTypeStation, moorings keep their own category because renderers count
// them separately.
const (
	OpTypeStation OpType = "station"
	OpTypeMooring OpType = "mooring"
	OpTypeArea    OpType = "area"
	OpTypeTransit OpType = "transit"
	OpTypePort    OpType = "port"
)

// OperationDetails is the normalized view of any catalog entry, produced
// by Resolve. Lat/Lon is the addressable position of the operation; for
// transits that is the route's exit point and StartLat/StartLon holds the
// entry point, for everything else the two coincide.
type OperationDetails struct {
	Name     string
	OpType   OpType
	Lat      float64
	Lon      float64
	StartLat float64
	StartLon float64
	Depth    float64 // meters

	ManualDuration float64 // minutes, 0 when not overridden
	DelayStart     float64 // minutes
	DelayEnd       float64 // minutes

	OperationType string // raw configured operation type, for display
	Action        string
	Comment       string

	// Transit-only fields.
	RouteDistanceNm float64
	VesselSpeed     float64 // knots, 0 means cruise default
	Route           []geo.Point

	// Area-only field.
	Corners []geo.Point
}

// EntryPoint returns the position the vessel must reach before the
// operation can begin.
func (d *OperationDetails) EntryPoint() geo.Point {
	if d.OpType == OpTypeTransit {
		return geo.Point{Latitude: d.StartLat, Longitude: d.StartLon}
	}
	return geo.Point{Latitude: d.Lat, Longitude: d.Lon}
}

// ExitPoint returns the position the vessel occupies once the operation
// has finished.
func (d *OperationDetails) ExitPoint() geo.Point {
	return geo.Point{Latitude: d.Lat, Longitude: d.Lon}
}

// stationOpType maps a station's configured operation type onto a
// scheduling category.
func stationOpType(operationType string) OpType {
	switch operationType {
	case config.OpMooring:
		return OpTypeMooring
	case config.OpSurvey:
		return OpTypeArea
	default:
		// CTD, water_sampling, calibration and anything unspecified.
		return OpTypeStation
	}
}

// Resolve looks up a catalog entry by name and normalizes it. Resolution
// priority is stations (which include moorings), then areas, then
// transits, then the two cruise ports. Returns nil when no catalog
// contains the name.
func Resolve(cfg *config.Config, name string) *OperationDetails {
	if s := cfg.FindStation(name); s != nil {
		return &OperationDetails{
			Name:           s.Name,
			OpType:         stationOpType(s.OperationType),
			Lat:            s.Position.Latitude,
			Lon:            s.Position.Longitude,
			StartLat:       s.Position.Latitude,
			StartLon:       s.Position.Longitude,
			Depth:          s.EffectiveDepth(),
			ManualDuration: s.Duration,
			DelayStart:     s.DelayStart,
			DelayEnd:       s.DelayEnd,
			OperationType:  s.OperationType,
			Action:         s.Action,
			Comment:        s.Comment,
		}
	}

	if a := cfg.FindArea(name); a != nil {
		// Arithmetic mean of the corners, deliberately not a geodesic
		// centroid.
		c := geo.Centroid(a.Corners)
		return &OperationDetails{
			Name:           a.Name,
			OpType:         OpTypeArea,
			Lat:            c.Latitude,
			Lon:            c.Longitude,
			StartLat:       c.Latitude,
			StartLon:       c.Longitude,
			ManualDuration: a.Duration,
			OperationType:  a.OperationType,
			Action:         a.Action,
			Comment:        a.Comment,
			Corners:        a.Corners,
		}
	}

	if t := cfg.FindTransit(name); t != nil {
		return resolveTransit(cfg, t)
	}

	for _, p := range []*config.Port{&cfg.DeparturePort, &cfg.ArrivalPort} {
		if p.Name == name {
			return &OperationDetails{
				Name:     p.Name,
				OpType:   OpTypePort,
				Lat:      p.Position.Latitude,
				Lon:      p.Position.Longitude,
				StartLat: p.Position.Latitude,
				StartLon: p.Position.Longitude,
			}
		}
	}

	return nil
}

// resolveTransit normalizes a transit entry. The addressable position is
// the route's last point; callers needing the entry point use
// StartLat/StartLon.
func resolveTransit(cfg *config.Config, t *config.Transit) *OperationDetails {
	d := &OperationDetails{
		Name:          t.Name,
		OpType:        OpTypeTransit,
		OperationType: t.OperationType,
		Action:        t.Action,
		Comment:       t.Comment,
		VesselSpeed:   t.VesselSpeed,
		Route:         t.Route,
	}

	d.RouteDistanceNm = geo.KmToNm(geo.RouteDistance(t.Route))

	speed := t.VesselSpeed
	if speed == 0 {
		speed = cfg.DefaultVesselSpeed
	}
	if speed > 0 {
		d.ManualDuration = d.RouteDistanceNm / speed * 60
	}

	if len(t.Route) > 0 {
		first, last := t.Route[0], t.Route[len(t.Route)-1]
		d.StartLat, d.StartLon = first.Latitude, first.Longitude
		d.Lat, d.Lon = last.Latitude, last.Longitude
	}

	return d
}
