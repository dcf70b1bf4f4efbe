package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/ocean-uhh/cruiseplan/internal/config"
	"github.com/ocean-uhh/cruiseplan/internal/geo"

	"github.com/rs/zerolog/log"
)

// transitThresholdNm filters out zero-length repositioning noise: gaps at
// or below this distance produce no transit record.
const transitThresholdNm = 0.1

// defaultOperationMinutes is the flat fallback for operations with no
// manual duration and no depth-derived estimate.
const defaultOperationMinutes = 60.0

// Display categories used by every renderer.
const (
	ActivityTransit = "Transit"
	ActivityStation = "Station"
	ActivityMooring = "Mooring"
	ActivityArea    = "Area"
	ActivityPort    = "Port"
)

// ActivityRecord is one row of the generated timeline. StartLat/StartLon
// is the entry point of the activity and coincides with Lat/Lon for point
// operations. TransitDistNm is the distance covered to reach the activity,
// OperationDistNm the distance covered during it.
type ActivityRecord struct {
	Activity string
	Label    string

	Lat      float64
	Lon      float64
	StartLat float64
	StartLon float64
	Depth    float64

	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes float64

	TransitDistNm   float64
	OperationDistNm float64
	VesselSpeed     float64

	LegName       string
	OperationType string
	Action        string
	Corners       []geo.Point
}

// IsLineOperation reports whether the record is a scientific underway
// operation (ADCP section, tow) rather than pure navigation.
func (r *ActivityRecord) IsLineOperation() bool {
	return r.Activity == ActivityTransit && r.OperationType != ""
}

// IsScientific reports whether the record represents scientific work, as
// opposed to navigation or port calls.
func (r *ActivityRecord) IsScientific() bool {
	switch r.Activity {
	case ActivityStation, ActivityMooring, ActivityArea:
		return true
	}
	return r.IsLineOperation()
}

func activityCategory(t OpType) string {
	switch t {
	case OpTypeMooring:
		return ActivityMooring
	case OpTypeArea:
		return ActivityArea
	case OpTypeTransit:
		return ActivityTransit
	case OpTypePort:
		return ActivityPort
	default:
		return ActivityStation
	}
}

// ParseStartTime parses the configured cruise start. A start date
// containing "T" is treated as a full ISO datetime (a trailing "Z" or
// "+00:00" UTC suffix is tolerated) and takes precedence over the separate
// start time; otherwise date and time strings are combined.
func ParseStartTime(startDate, startTime string) (time.Time, error) {
	if strings.Contains(startDate, "T") {
		s := strings.TrimSuffix(startDate, "Z")
		s = strings.TrimSuffix(s, "+00:00")
		if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02T15:04", s)
	}

	if startTime == "" {
		startTime = config.DefaultStartTime
	}
	return time.Parse("2006-01-02 15:04", startDate+" "+startTime)
}

type taggedActivity struct {
	det *OperationDetails
	leg *config.Leg
}

// GenerateTimeline builds the cruise timeline, returning an empty list
// when the start date cannot be parsed. Callers that need to distinguish
// a failed run from a legitimately empty cruise should use BuildTimeline.
func GenerateTimeline(cfg *config.Config) []ActivityRecord {
	timeline, err := BuildTimeline(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Timeline generation failed")
		return []ActivityRecord{}
	}
	return timeline
}

// BuildTimeline forward-simulates the cruise: a mobilization transit from
// the departure port, every leg's activities in declared order with
// inter-operation transits and leg buffers, and a demobilization transit
// to the arrival port. Records come out in non-decreasing start-time
// order.
func BuildTimeline(cfg *config.Config) ([]ActivityRecord, error) {
	current, err := ParseStartTime(cfg.StartDate, cfg.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start date %q: %w", cfg.StartDate, err)
	}

	calc := NewDurationCalculator(cfg)
	var timeline []ActivityRecord
	var pos *geo.Point

	// Mobilization transit from the departure port to the first station.
	if cfg.FirstStation != "" && cfg.DeparturePort.Name != "" {
		if first := Resolve(cfg, cfg.FirstStation); first != nil {
			from := cfg.DeparturePort.Position
			to := first.EntryPoint()
			distNm := geo.KmToNm(geo.Haversine(from, to))
			dur := calc.TransitTime(distNm, 0)

			label := fmt.Sprintf("Transit to working area: %s to %s",
				portDisplay(&cfg.DeparturePort), cfg.FirstStation)
			timeline = append(timeline, transitRecord(label, from, to, distNm, dur, "", current, cfg.DefaultVesselSpeed))
			current = current.Add(minutes(dur))
			pos = &to
		} else {
			log.Warn().Str("station", cfg.FirstStation).
				Msg("First station not found in any catalog, skipping mobilization transit")
		}
	}

	acts := collectActivities(cfg)

	var prevLeg *config.Leg
	for i, act := range acts {
		det := act.det

		// Contingency buffer at each leg boundary.
		if prevLeg != nil && act.leg != prevLeg {
			if b := prevLeg.BufferTime.Minutes(); b > 0 {
				current = current.Add(minutes(b))
			}
		}

		// Reposition to the activity's entry point.
		entry := det.EntryPoint()
		var gapNm float64
		if pos != nil {
			gapNm = geo.KmToNm(geo.Haversine(*pos, entry))
			if gapNm > transitThresholdNm {
				dur := calc.TransitTime(gapNm, 0)
				timeline = append(timeline, transitRecord("Transit to "+det.Name,
					*pos, entry, gapNm, dur, act.leg.Name, current, cfg.DefaultVesselSpeed))
				current = current.Add(minutes(dur))
			}
		}

		// Underway operations additionally charge the approach to their
		// route start, at the cruise default speed regardless of any
		// per-transit override. This can overlap with the repositioning
		// transit above; the overlap is kept as-is until the stakeholders
		// decide which charge should win.
		if det.OpType == OpTypeTransit && len(det.Route) >= 2 && i > 0 && pos != nil {
			preNm := geo.KmToNm(geo.Haversine(*pos, entry))
			current = current.Add(minutes(calc.TransitTime(preNm, 0)))
		}

		var dur float64
		switch {
		case det.ManualDuration > 0:
			dur = det.ManualDuration
		case det.OpType == OpTypeStation:
			dur = calc.CTDTime(det.Depth)
		default:
			dur = defaultOperationMinutes
		}

		if det.DelayStart > 0 {
			current = current.Add(minutes(det.DelayStart))
		}
		recorded := dur + det.DelayEnd

		var transitDist, opDist float64
		if det.OpType == OpTypeTransit {
			opDist = det.RouteDistanceNm
		} else {
			transitDist = gapNm
		}

		speed := det.VesselSpeed
		if speed == 0 {
			speed = cfg.DefaultVesselSpeed
		}

		rec := ActivityRecord{
			Activity:        activityCategory(det.OpType),
			Label:           det.Name,
			Lat:             det.Lat,
			Lon:             det.Lon,
			StartLat:        entry.Latitude,
			StartLon:        entry.Longitude,
			Depth:           det.Depth,
			StartTime:       current,
			EndTime:         current.Add(minutes(recorded)),
			DurationMinutes: recorded,
			TransitDistNm:   transitDist,
			OperationDistNm: opDist,
			VesselSpeed:     speed,
			LegName:         act.leg.Name,
			OperationType:   det.OperationType,
			Action:          det.Action,
			Corners:         det.Corners,
		}
		timeline = append(timeline, rec)

		current = rec.EndTime
		exit := det.ExitPoint()
		pos = &exit
		prevLeg = act.leg
	}

	// The last leg's buffer is charged even though no leg follows it.
	if prevLeg != nil {
		if b := prevLeg.BufferTime.Minutes(); b > 0 {
			current = current.Add(minutes(b))
		}
	}

	// Demobilization transit to the arrival port.
	if pos != nil && cfg.ArrivalPort.Name != "" {
		to := cfg.ArrivalPort.Position
		distNm := geo.KmToNm(geo.Haversine(*pos, to))
		dur := calc.TransitTime(distNm, 0)

		label := "Transit from working area to " + portDisplay(&cfg.ArrivalPort)
		timeline = append(timeline, transitRecord(label, *pos, to, distNm, dur, "", current, cfg.DefaultVesselSpeed))
	}

	return timeline, nil
}

// collectActivities flattens the legs into a resolved, leg-tagged activity
// list. Names that match no catalog entry are skipped with a warning so an
// incomplete plan still schedules around the gap.
func collectActivities(cfg *config.Config) []taggedActivity {
	var acts []taggedActivity
	for li := range cfg.Legs {
		leg := &cfg.Legs[li]
		for _, name := range ExtractActivities(leg) {
			det := Resolve(cfg, name)
			if det == nil {
				log.Warn().Str("leg", leg.Name).Str("name", name).
					Msg("Activity not found in any catalog, skipping")
				continue
			}
			acts = append(acts, taggedActivity{det: det, leg: leg})
		}
	}
	return acts
}

func transitRecord(label string, from, to geo.Point, distNm, durationMin float64, legName string, start time.Time, speedKn float64) ActivityRecord {
	return ActivityRecord{
		Activity:        ActivityTransit,
		Label:           label,
		Lat:             to.Latitude,
		Lon:             to.Longitude,
		StartLat:        from.Latitude,
		StartLon:        from.Longitude,
		StartTime:       start,
		EndTime:         start.Add(minutes(durationMin)),
		DurationMinutes: durationMin,
		TransitDistNm:   distNm,
		VesselSpeed:     speedKn,
		LegName:         legName,
	}
}

func portDisplay(p *config.Port) string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}
