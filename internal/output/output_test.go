package output

import (
	"time"

	"github.com/ocean-uhh/cruiseplan/internal/geo"
	"github.com/ocean-uhh/cruiseplan/internal/scheduler"
)

// sampleTimeline mimics a small two-leg cruise: port transit out, two
// stations with a mooring and a survey line between them, and the port
// transit home.
func sampleTimeline() []scheduler.ActivityRecord {
	base := time.Date(2028, 6, 1, 8, 0, 0, 0, time.UTC)
	at := func(h float64) time.Time {
		return base.Add(time.Duration(h * float64(time.Hour)))
	}

	rec := func(activity, label string, lat, lon, depth, startH, durH, transitNm, opNm float64, legName, opType, action string) scheduler.ActivityRecord {
		return scheduler.ActivityRecord{
			Activity:        activity,
			Label:           label,
			Lat:             lat,
			Lon:             lon,
			StartLat:        lat,
			StartLon:        lon,
			Depth:           depth,
			StartTime:       at(startH),
			EndTime:         at(startH + durH),
			DurationMinutes: durH * 60,
			TransitDistNm:   transitNm,
			OperationDistNm: opNm,
			VesselSpeed:     10,
			LegName:         legName,
			OperationType:   opType,
			Action:          action,
		}
	}

	area := rec(scheduler.ActivityArea, "SURVEY_BOX", 50.5, -29.5, 0, 76, 12, 5, 0, "leg2", "survey", "")
	area.Corners = []geo.Point{
		{Latitude: 50, Longitude: -30},
		{Latitude: 50, Longitude: -29},
		{Latitude: 51, Longitude: -29},
		{Latitude: 51, Longitude: -30},
	}

	line := rec(scheduler.ActivityTransit, "ADCP_LINE", 46.0, -45.0, 0, 40, 6, 0, 60, "leg1", "survey", "section")
	line.StartLat, line.StartLon = 45.0, -45.0

	return []scheduler.ActivityRecord{
		rec(scheduler.ActivityTransit, "Transit to working area: halifax to STN_001", 45, -45, 0, 0, 36, 360, 0, "", "", ""),
		rec(scheduler.ActivityStation, "STN_001", 45, -45, 2850, 36, 2, 0, 0, "leg1", "CTD", "profile"),
		line,
		rec(scheduler.ActivityTransit, "Transit to MOOR_A", 47, -42, 0, 46, 15, 150, 0, "leg1", "", ""),
		rec(scheduler.ActivityMooring, "MOOR_A", 47, -42, 1200, 61, 4, 150, 0, "leg1", "mooring", "recovery"),
		rec(scheduler.ActivityTransit, "Transit to SURVEY_BOX", 50.5, -29.5, 0, 65, 11, 110, 0, "leg2", "", ""),
		area,
		rec(scheduler.ActivityTransit, "Transit from working area to cadiz", 36, -6, 0, 88, 90, 900, 0, "", "", ""),
	}
}
