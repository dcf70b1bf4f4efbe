// Package output renders a scheduled timeline into the various report and
// exchange formats.
package output

import "github.com/ocean-uhh/cruiseplan/internal/scheduler"

// TypeStats aggregates one activity category for the summary report.
type TypeStats struct {
	Count           int
	AvgDurationH    float64
	AvgDepthM       float64
	AvgDistanceNm   float64
	AvgSpeedKn      float64
	TotalDistanceNm float64
	TotalDurationH  float64
	TotalDays       float64
}

// Summary holds the per-category aggregates of a timeline. Surveys are
// scientific underway transits; WithinArea covers navigation transits
// between operations (excluding the first and last, which are the port
// transits counted in PortArea).
type Summary struct {
	Moorings   TypeStats
	Stations   TypeStats
	Surveys    TypeStats
	Areas      TypeStats
	WithinArea TypeStats
	PortArea   TypeStats
}

// TotalDurationH sums the duration of every category.
func (s *Summary) TotalDurationH() float64 {
	return s.Moorings.TotalDurationH + s.Stations.TotalDurationH +
		s.Surveys.TotalDurationH + s.Areas.TotalDurationH +
		s.WithinArea.TotalDurationH + s.PortArea.TotalDurationH
}

// Summarize computes per-category aggregates from a timeline.
func Summarize(timeline []scheduler.ActivityRecord) Summary {
	var stations, moorings, areas []scheduler.ActivityRecord
	var scientificTransits, navigationTransits []scheduler.ActivityRecord

	for _, r := range timeline {
		switch r.Activity {
		case scheduler.ActivityStation:
			stations = append(stations, r)
		case scheduler.ActivityMooring:
			moorings = append(moorings, r)
		case scheduler.ActivityArea:
			areas = append(areas, r)
		case scheduler.ActivityTransit:
			if r.IsLineOperation() {
				scientificTransits = append(scientificTransits, r)
			} else {
				navigationTransits = append(navigationTransits, r)
			}
		}
	}

	var s Summary
	s.Moorings = durationStats(moorings)
	s.Areas = durationStats(areas)

	s.Stations = durationStats(stations)
	if len(stations) > 0 {
		var depth float64
		for _, r := range stations {
			depth += r.Depth
		}
		s.Stations.AvgDepthM = depth / float64(len(stations))
	}

	s.Surveys = durationStats(scientificTransits)
	if len(scientificTransits) > 0 {
		for _, r := range scientificTransits {
			s.Surveys.TotalDistanceNm += r.OperationDistNm
		}
		s.Surveys.AvgDistanceNm = s.Surveys.TotalDistanceNm / float64(len(scientificTransits))
	}

	// Navigation transits split into the port brackets (first and last)
	// and everything in between.
	var within, port []scheduler.ActivityRecord
	if len(navigationTransits) > 2 {
		within = navigationTransits[1 : len(navigationTransits)-1]
	}
	if len(navigationTransits) >= 1 {
		port = append(port, navigationTransits[0])
	}
	if len(navigationTransits) >= 2 {
		port = append(port, navigationTransits[len(navigationTransits)-1])
	}
	s.WithinArea = transitStats(within)
	s.PortArea = transitStats(port)

	return s
}

func durationStats(records []scheduler.ActivityRecord) TypeStats {
	st := TypeStats{Count: len(records)}
	if len(records) == 0 {
		return st
	}

	for _, r := range records {
		st.TotalDurationH += r.DurationMinutes / 60
	}
	st.AvgDurationH = st.TotalDurationH / float64(len(records))
	st.TotalDays = st.TotalDurationH / 24
	return st
}

func transitStats(records []scheduler.ActivityRecord) TypeStats {
	st := TypeStats{Count: len(records)}
	for _, r := range records {
		st.TotalDurationH += r.DurationMinutes / 60
		st.TotalDistanceNm += r.TransitDistNm
	}
	if st.TotalDurationH > 0 {
		st.AvgSpeedKn = st.TotalDistanceNm / st.TotalDurationH
	}
	st.TotalDays = st.TotalDurationH / 24
	return st
}
