package scheduler

import (
	"time"

	"github.com/ocean-uhh/cruiseplan/internal/config"
)

// Operating-window requirements for daylight-constrained operations.
const (
	WindowDay   = "day"
	WindowNight = "night"
)

// DurationCalculator computes operation and transit durations from the
// cruise-wide rate parameters.
type DurationCalculator struct {
	DescentRate  float64 // m/s
	AscentRate   float64 // m/s
	Turnaround   float64 // minutes
	DefaultSpeed float64 // knots
	DayStartHour int
	DayEndHour   int
}

// NewDurationCalculator binds a calculator to a configuration's rate
// parameters.
func NewDurationCalculator(cfg *config.Config) *DurationCalculator {
	return &DurationCalculator{
		DescentRate:  cfg.CTDDescentRate,
		AscentRate:   cfg.CTDAscentRate,
		Turnaround:   cfg.TurnaroundTime,
		DefaultSpeed: cfg.DefaultVesselSpeed,
		DayStartHour: cfg.DayStartHour,
		DayEndHour:   cfg.DayEndHour,
	}
}

// CTDTime returns the duration of a CTD cast to the given depth in
// minutes: descent plus ascent at the configured rates, plus the
// turnaround allowance. Zero for non-positive depths or rates.
func (d *DurationCalculator) CTDTime(depthM float64) float64 {
	if depthM <= 0 {
		return 0
	}

	descent := d.DescentRate * 60 // m/min
	ascent := d.AscentRate * 60
	if descent <= 0 || ascent <= 0 {
		return 0
	}

	return depthM/descent + depthM/ascent + d.Turnaround
}

// TransitTime returns the minutes needed to cover the given distance at
// the given speed in knots, falling back to the cruise default when the
// speed is unset. Zero when the effective speed is non-positive.
func (d *DurationCalculator) TransitTime(distanceNm, speedKn float64) float64 {
	if speedKn <= 0 {
		speedKn = d.DefaultSpeed
	}
	if speedKn <= 0 {
		return 0
	}
	return distanceNm / speedKn * 60
}

// WaitTime returns the minutes the vessel must idle after arriving so the
// operation satisfies its operating-window requirement. Day operations
// must both start and finish inside the configured daylight window, and
// the finish check applies whenever the start gets deferred, so an early
// arrival with an operation longer than the window still waits for the
// next day. Night operations only need to start after the window closes.
// An empty window means no constraint.
func (d *DurationCalculator) WaitTime(arrival time.Time, durationMinutes float64, window string) float64 {
	dayStart := time.Date(arrival.Year(), arrival.Month(), arrival.Day(),
		d.DayStartHour, 0, 0, 0, arrival.Location())
	dayEnd := time.Date(arrival.Year(), arrival.Month(), arrival.Day(),
		d.DayEndHour, 0, 0, 0, arrival.Location())

	switch window {
	case WindowDay:
		start := arrival
		if start.Before(dayStart) {
			start = dayStart
		} else if !start.Before(dayEnd) {
			start = dayStart.AddDate(0, 0, 1)
			dayEnd = dayEnd.AddDate(0, 0, 1)
		}
		if start.Add(minutes(durationMinutes)).After(dayEnd) {
			start = time.Date(start.Year(), start.Month(), start.Day(),
				d.DayStartHour, 0, 0, 0, start.Location()).AddDate(0, 0, 1)
		}
		return start.Sub(arrival).Minutes()

	case WindowNight:
		if !arrival.Before(dayStart) && arrival.Before(dayEnd) {
			return dayEnd.Sub(arrival).Minutes()
		}
		return 0

	default:
		return 0
	}
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
