package geo

import (
	"math"
	"testing"
)

func TestFormatDMM(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     string
	}{
		{65.7458, -24.4792, "65 44.75'N, 024 28.75'W"},
		{-33.9180, 18.4233, "33 55.08'S, 018 25.40'E"},
		{0, 0, "00 00.00'N, 000 00.00'E"},
		{5.5, 150.5, "05 30.00'N, 150 30.00'E"},
	}

	for _, tc := range cases {
		if got := FormatDMM(tc.lat, tc.lon); got != tc.want {
			t.Errorf("FormatDMM(%g, %g) = %q, want %q", tc.lat, tc.lon, got, tc.want)
		}
	}
}

func TestDMMRoundTrip(t *testing.T) {
	lat, lon := 52.8332, -51.5468

	pt, err := ParseDMM(FormatDMM(lat, lon))
	if err != nil {
		t.Fatalf("ParseDMM: %v", err)
	}
	if math.Abs(pt.Latitude-lat) > 1e-3 || math.Abs(pt.Longitude-lon) > 1e-3 {
		t.Errorf("round trip = %+v", pt)
	}
}

func TestParseDMMVariants(t *testing.T) {
	want := Point{Latitude: 52.0 + 49.99/60.0, Longitude: -(51.0 + 32.81/60.0)}

	for _, s := range []string{
		"52° 49.99' N, 51° 32.81' W",
		"52°49.99'N,51°32.81'W",
		"52° 49,99' N, 51° 32,81' W", // European decimal comma
	} {
		pt, err := ParseDMM(s)
		if err != nil {
			t.Errorf("ParseDMM(%q): %v", s, err)
			continue
		}
		if math.Abs(pt.Latitude-want.Latitude) > 1e-9 || math.Abs(pt.Longitude-want.Longitude) > 1e-9 {
			t.Errorf("ParseDMM(%q) = %+v", s, pt)
		}
	}
}
