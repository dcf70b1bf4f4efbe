// Package geo handles geographic data structures, distance calculations and
// coordinate formatting.
package geo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"gopkg.in/yaml.v3"
)

const (
	// EarthRadiusKm is the approximate mean Earth radius.
	EarthRadiusKm = 6371.0

	// Nautical mile conversion factors. Not perfect reciprocals of each
	// other; both constants are fixed by convention and must not be
	// "corrected" to match.
	NmPerKm = 0.539957
	KmPerNm = 1.852
)

// Point is a geodetic coordinate pair in decimal degrees.
// Latitude is in [-90, 90]; longitude may use either the signed [-180, 180]
// or the unsigned [0, 360] convention, as long as one convention is used
// consistently across a configuration.
type Point struct {
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// UnmarshalYAML accepts either a {latitude, longitude} mapping or a
// "lat, lon" string, the two point formats the configuration allows.
func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		pt, err := ParsePoint(value.Value)
		if err != nil {
			return err
		}
		*p = pt
		return nil
	}

	type plain Point
	var raw plain
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = Point(raw)
	return nil
}

// ParsePoint parses a position string into a Point. It accepts plain
// decimal degrees ("59.5, -20.0") and degrees/decimal-minutes with
// direction indicators ("59 30.00'N, 020 00.00'W").
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) == 2 {
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 == nil && err2 == nil {
			return Point{Latitude: lat, Longitude: lon}, nil
		}
	}

	if pt, err := ParseDMM(s); err == nil {
		return pt, nil
	}

	return Point{}, fmt.Errorf("invalid position string %q", s)
}

// Haversine returns the great-circle distance between two points in
// kilometers, using the mean Earth radius of 6371 km.
func Haversine(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// RouteDistance returns the total length of a polyline in kilometers by
// summing great-circle distances over consecutive pairs. Paths with fewer
// than two points have zero length.
func RouteDistance(points []Point) float64 {
	if len(points) < 2 {
		return 0.0
	}

	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += Haversine(points[i], points[i+1])
	}
	return total
}

// KmToNm converts kilometers to nautical miles.
func KmToNm(km float64) float64 {
	return km * NmPerKm
}

// NmToKm converts nautical miles to kilometers.
func NmToKm(nm float64) float64 {
	return nm * KmPerNm
}

// Centroid returns the arithmetic mean of the given points. This is the
// simple planar average used for addressing survey areas, not a
// geodesically-correct centroid.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Latitude
		sumLon += p.Longitude
	}
	n := float64(len(points))

	return Point{Latitude: sumLat / n, Longitude: sumLon / n}
}
