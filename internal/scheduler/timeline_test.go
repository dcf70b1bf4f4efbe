package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/ocean-uhh/cruiseplan/internal/config"
	"github.com/ocean-uhh/cruiseplan/internal/geo"
)

// atlanticConfig is a minimal single-station crossing: Halifax to Cadiz
// with one deep CTD in the middle of the Atlantic.
func atlanticConfig() *config.Config {
	return &config.Config{
		CruiseName:         "TEST-01",
		DefaultVesselSpeed: 10,
		TurnaroundTime:     30,
		CTDDescentRate:     1.0,
		CTDAscentRate:      1.0,
		DayStartHour:       8,
		DayEndHour:         20,
		StartDate:          "2028-06-01",
		StartTime:          "08:00",
		FirstStation:       "STN_001",
		DeparturePort: config.Port{
			Name:     "halifax",
			Position: geo.Point{Latitude: 44.0, Longitude: -63.0},
		},
		ArrivalPort: config.Port{
			Name:     "cadiz",
			Position: geo.Point{Latitude: 36.0, Longitude: -6.0},
		},
		Stations: []config.Station{
			{
				Name:          "STN_001",
				Position:      geo.Point{Latitude: 45.0, Longitude: -45.0},
				WaterDepth:    2850,
				OperationType: config.OpCTD,
			},
		},
		Legs: []config.Leg{
			{Name: "leg1", Stations: []config.SequenceEntry{{Name: "STN_001"}}},
		},
	}
}

func TestBuildTimelineEndToEnd(t *testing.T) {
	tl, err := BuildTimeline(atlanticConfig())
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}

	if len(tl) != 3 {
		t.Fatalf("got %d records, want 3 (mobilization, station, demobilization)", len(tl))
	}

	mob, stn, demob := tl[0], tl[1], tl[2]

	if mob.Activity != ActivityTransit || demob.Activity != ActivityTransit {
		t.Errorf("bracketing records are %q and %q, want transits", mob.Activity, demob.Activity)
	}
	if stn.Activity != ActivityStation {
		t.Errorf("middle record = %q", stn.Activity)
	}

	// 2850 m at 1 m/s each way plus a 30 minute turnaround.
	if math.Abs(stn.DurationMinutes-125) > 1e-9 {
		t.Errorf("CTD duration = %g min, want 125", stn.DurationMinutes)
	}

	want := time.Date(2028, 6, 1, 8, 0, 0, 0, time.UTC)
	if !mob.StartTime.Equal(want) {
		t.Errorf("start = %v, want %v", mob.StartTime, want)
	}

	// Vessel is already on station after mobilization, so the station
	// carries no additional approach distance.
	if stn.TransitDistNm != 0 {
		t.Errorf("station transit distance = %g", stn.TransitDistNm)
	}
	if mob.TransitDistNm <= 0 || demob.TransitDistNm <= 0 {
		t.Errorf("port transit distances = %g, %g", mob.TransitDistNm, demob.TransitDistNm)
	}
}

func TestTimelineOrderingInvariants(t *testing.T) {
	cfg := atlanticConfig()
	cfg.Stations = append(cfg.Stations,
		config.Station{Name: "STN_002", Position: geo.Point{Latitude: 46.0, Longitude: -40.0}, WaterDepth: 3000},
		config.Station{Name: "STN_003", Position: geo.Point{Latitude: 47.0, Longitude: -35.0}, WaterDepth: 1500},
	)
	cfg.Legs = []config.Leg{
		{Name: "leg1", Stations: []config.SequenceEntry{{Name: "STN_001"}, {Name: "STN_002"}}},
		{Name: "leg2", Stations: []config.SequenceEntry{{Name: "STN_003"}}},
	}

	tl, err := BuildTimeline(cfg)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}

	for i, rec := range tl {
		wantEnd := rec.StartTime.Add(time.Duration(rec.DurationMinutes * float64(time.Minute)))
		if !rec.EndTime.Equal(wantEnd) {
			t.Errorf("record %d (%s): end %v != start + duration %v", i, rec.Label, rec.EndTime, wantEnd)
		}
		if i > 0 && rec.StartTime.Before(tl[i-1].StartTime) {
			t.Errorf("record %d starts before record %d", i, i-1)
		}
	}
}

func TestTimelineConservation(t *testing.T) {
	cfg := atlanticConfig()
	cfg.Stations = append(cfg.Stations,
		config.Station{Name: "STN_002", Position: geo.Point{Latitude: 46.0, Longitude: -40.0}, WaterDepth: 3000})
	cfg.Legs = []config.Leg{
		{Name: "leg1", BufferTime: 120, Stations: []config.SequenceEntry{{Name: "STN_001"}}},
		{Name: "leg2", BufferTime: 60, Stations: []config.SequenceEntry{{Name: "STN_002"}}},
	}

	tl, err := BuildTimeline(cfg)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}

	var total float64
	for _, rec := range tl {
		total += rec.DurationMinutes
	}
	total += 120 + 60 // leg boundary buffer plus final-leg buffer

	elapsed := tl[len(tl)-1].EndTime.Sub(tl[0].StartTime).Minutes()
	if math.Abs(elapsed-total) > 1e-6 {
		t.Errorf("elapsed %g min != durations plus buffers %g min", elapsed, total)
	}
}

func TestTransitThreshold(t *testing.T) {
	cfg := atlanticConfig()
	// 0.001 degrees of latitude is about 0.06 nm, under the threshold.
	cfg.Stations = append(cfg.Stations,
		config.Station{Name: "STN_NEAR", Position: geo.Point{Latitude: 45.001, Longitude: -45.0}, WaterDepth: 2850},
		config.Station{Name: "STN_FAR", Position: geo.Point{Latitude: 46.0, Longitude: -45.0}, WaterDepth: 2850},
	)
	cfg.Legs = []config.Leg{
		{Name: "leg1", Stations: []config.SequenceEntry{
			{Name: "STN_001"}, {Name: "STN_NEAR"}, {Name: "STN_FAR"},
		}},
	}

	tl, err := BuildTimeline(cfg)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}

	// mobilization, STN_001, STN_NEAR (no transit), transit, STN_FAR,
	// demobilization.
	if len(tl) != 6 {
		for _, r := range tl {
			t.Logf("%s %s", r.Activity, r.Label)
		}
		t.Fatalf("got %d records, want 6", len(tl))
	}
	if tl[3].Activity != ActivityTransit || tl[3].Label != "Transit to STN_FAR" {
		t.Errorf("record 3 = %s %q", tl[3].Activity, tl[3].Label)
	}
}

func TestUnresolvedNameResilience(t *testing.T) {
	cfg := atlanticConfig()
	cfg.Stations = append(cfg.Stations,
		config.Station{Name: "STN_002", Position: geo.Point{Latitude: 46.0, Longitude: -40.0}, WaterDepth: 3000})
	cfg.Legs = []config.Leg{
		{Name: "leg1", Stations: []config.SequenceEntry{
			{Name: "STN_001"}, {Name: "GHOST_STATION"}, {Name: "STN_002"},
		}},
	}

	tl, err := BuildTimeline(cfg)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}

	var stations int
	for _, rec := range tl {
		if rec.Activity == ActivityStation {
			stations++
		}
		if rec.Label == "GHOST_STATION" {
			t.Error("unresolvable activity made it into the timeline")
		}
	}
	if stations != 2 {
		t.Errorf("got %d stations, want 2", stations)
	}
}

func TestDelaysShiftAndInflate(t *testing.T) {
	cfg := atlanticConfig()
	cfg.Stations[0].DelayStart = 15
	cfg.Stations[0].DelayEnd = 45

	tl, err := BuildTimeline(cfg)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}
	stn := tl[1]

	wantStart := tl[0].EndTime.Add(15 * time.Minute)
	if !stn.StartTime.Equal(wantStart) {
		t.Errorf("station start %v, want %v (shifted by delay_start)", stn.StartTime, wantStart)
	}
	if math.Abs(stn.DurationMinutes-(125+45)) > 1e-9 {
		t.Errorf("recorded duration = %g, want 170 (delay_end folded in)", stn.DurationMinutes)
	}
}

func TestScientificTransitBookkeeping(t *testing.T) {
	cfg := atlanticConfig()
	cfg.Transits = []config.Transit{
		{
			Name:          "ADCP_LINE",
			OperationType: config.OpSurvey,
			Action:        "section",
			Route: []geo.Point{
				{Latitude: 45.0, Longitude: -45.0},
				{Latitude: 46.0, Longitude: -45.0},
			},
		},
	}
	cfg.Legs = []config.Leg{
		{Name: "leg1", Sequence: []config.SequenceEntry{{Name: "STN_001"}, {Name: "ADCP_LINE"}}},
	}

	tl, err := BuildTimeline(cfg)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}

	var line *ActivityRecord
	for i := range tl {
		if tl[i].Label == "ADCP_LINE" {
			line = &tl[i]
		}
	}
	if line == nil {
		t.Fatal("ADCP_LINE missing from timeline")
	}

	if line.TransitDistNm != 0 {
		t.Errorf("line transit distance = %g, want 0 (approach recorded separately)", line.TransitDistNm)
	}
	if math.Abs(line.OperationDistNm-60) > 1 {
		t.Errorf("line operation distance = %g nm, want ~60", line.OperationDistNm)
	}
	if !line.IsLineOperation() || !line.IsScientific() {
		t.Error("survey transit not classified as a scientific line operation")
	}

	// The route exit point becomes the next reference position, so the
	// demobilization transit departs from the route end.
	demob := tl[len(tl)-1]
	if demob.StartLat != 46.0 {
		t.Errorf("demobilization departs from lat %g, want 46 (route end)", demob.StartLat)
	}
}

func TestSurveyApproachUsesDefaultSpeed(t *testing.T) {
	cfg := atlanticConfig()
	cfg.Transits = []config.Transit{
		{
			Name:          "SLOW_TOW",
			OperationType: config.OpSurvey,
			VesselSpeed:   5,
			Route: []geo.Point{
				{Latitude: 46.0, Longitude: -45.0},
				{Latitude: 47.0, Longitude: -45.0},
			},
		},
	}
	cfg.Legs = []config.Leg{
		{Name: "leg1", Sequence: []config.SequenceEntry{{Name: "STN_001"}, {Name: "SLOW_TOW"}}},
	}

	tl, err := BuildTimeline(cfg)
	if err != nil {
		t.Fatalf("BuildTimeline: %v", err)
	}

	var reposition, line *ActivityRecord
	for i := range tl {
		switch tl[i].Label {
		case "Transit to SLOW_TOW":
			reposition = &tl[i]
		case "SLOW_TOW":
			line = &tl[i]
		}
	}
	if reposition == nil || line == nil {
		t.Fatal("repositioning transit or survey line missing from timeline")
	}

	// The approach to the route start is charged at the cruise default
	// speed (10 kt over ~60 nm, about 360 min), not at the survey's own
	// 5 kt tow speed.
	approach := line.StartTime.Sub(reposition.EndTime).Minutes()
	if math.Abs(approach-360) > 10 {
		t.Errorf("approach charge = %g min, want ~360 (default speed)", approach)
	}

	// The line itself still tows at its own speed: 60 nm at 5 kt.
	if math.Abs(line.DurationMinutes-720) > 10 {
		t.Errorf("line duration = %g min, want ~720 (override speed)", line.DurationMinutes)
	}
}

func TestGenerateTimelineBadStartDate(t *testing.T) {
	cfg := atlanticConfig()
	cfg.StartDate = "someday soon"

	if tl := GenerateTimeline(cfg); len(tl) != 0 {
		t.Errorf("got %d records for unparseable start date, want 0", len(tl))
	}
	if _, err := BuildTimeline(cfg); err == nil {
		t.Error("BuildTimeline must surface the parse error")
	}
}

func TestParseStartTime(t *testing.T) {
	cases := []struct {
		date, clock string
		want        time.Time
	}{
		{"2028-06-01", "08:00", time.Date(2028, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2028-06-01", "", time.Date(2028, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2028-06-01T14:30:00", "08:00", time.Date(2028, 6, 1, 14, 30, 0, 0, time.UTC)},
		{"2028-06-01T14:30:00Z", "", time.Date(2028, 6, 1, 14, 30, 0, 0, time.UTC)},
		{"2028-06-01T14:30:00+00:00", "", time.Date(2028, 6, 1, 14, 30, 0, 0, time.UTC)},
		{"2028-06-01T08:00", "", time.Date(2028, 6, 1, 8, 0, 0, 0, time.UTC)},
		{"2028-06-01T08:00Z", "", time.Date(2028, 6, 1, 8, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseStartTime(tc.date, tc.clock)
		if err != nil {
			t.Errorf("ParseStartTime(%q, %q): %v", tc.date, tc.clock, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseStartTime(%q, %q) = %v, want %v", tc.date, tc.clock, got, tc.want)
		}
	}
}
