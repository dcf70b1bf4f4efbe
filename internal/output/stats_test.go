package output

import (
	"math"
	"testing"
)

func TestSummarizeCounts(t *testing.T) {
	s := Summarize(sampleTimeline())

	if s.Stations.Count != 1 {
		t.Errorf("stations = %d", s.Stations.Count)
	}
	if s.Moorings.Count != 1 {
		t.Errorf("moorings = %d", s.Moorings.Count)
	}
	if s.Areas.Count != 1 {
		t.Errorf("areas = %d", s.Areas.Count)
	}
	if s.Surveys.Count != 1 {
		t.Errorf("surveys = %d, scientific transits must not count as navigation", s.Surveys.Count)
	}

	// Four navigation transits: first and last are the port pair, the
	// two in between are within the working area.
	if s.PortArea.Count != 2 {
		t.Errorf("port transits = %d", s.PortArea.Count)
	}
	if s.WithinArea.Count != 2 {
		t.Errorf("within-area transits = %d", s.WithinArea.Count)
	}
}

func TestSummarizeAggregates(t *testing.T) {
	s := Summarize(sampleTimeline())

	if math.Abs(s.Stations.AvgDepthM-2850) > 1e-9 {
		t.Errorf("avg depth = %g", s.Stations.AvgDepthM)
	}
	if math.Abs(s.Surveys.TotalDistanceNm-60) > 1e-9 {
		t.Errorf("survey distance = %g", s.Surveys.TotalDistanceNm)
	}
	if math.Abs(s.PortArea.TotalDistanceNm-1260) > 1e-9 {
		t.Errorf("port transit distance = %g", s.PortArea.TotalDistanceNm)
	}
	if math.Abs(s.PortArea.AvgSpeedKn-10) > 1e-9 {
		t.Errorf("port transit speed = %g kn", s.PortArea.AvgSpeedKn)
	}

	// 36+90 h port, 15+11 h within, 2 h station, 4 h mooring, 6 h
	// survey, 12 h area.
	if math.Abs(s.TotalDurationH()-176) > 1e-9 {
		t.Errorf("total duration = %g h", s.TotalDurationH())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalDurationH() != 0 {
		t.Errorf("empty timeline total = %g", s.TotalDurationH())
	}
	if s.Stations.Count != 0 || s.PortArea.Count != 0 {
		t.Error("empty timeline has nonzero counts")
	}
}
