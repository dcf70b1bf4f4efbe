package geo

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DecimalToDMM splits a decimal-degree coordinate into whole degrees and
// decimal minutes, both as absolute values.
func DecimalToDMM(decimalDegrees float64) (degrees int, minutes float64) {
	degrees = int(math.Abs(decimalDegrees))
	minutes = (math.Abs(decimalDegrees) - float64(degrees)) * 60
	return degrees, minutes
}

// FormatDMM renders a position as degrees and decimal minutes in the
// maritime convention used by schedule outputs, e.g.
// "65 44.75'N, 024 28.75'W". Latitude degrees are zero-padded to two
// digits, longitude degrees to three.
func FormatDMM(lat, lon float64) string {
	latDeg, latMin := DecimalToDMM(lat)
	lonDeg, lonMin := DecimalToDMM(lon)

	latDir := "N"
	if lat < 0 {
		latDir = "S"
	}
	lonDir := "E"
	if lon < 0 {
		lonDir = "W"
	}

	return fmt.Sprintf("%02d %05.2f'%s, %03d %05.2f'%s",
		latDeg, latMin, latDir, lonDeg, lonMin, lonDir)
}

// dmmRe matches degrees/decimal-minutes coordinate pairs such as
// "52° 49.99' N, 51° 32.81' W" or "52 49.99'N, 051 32.81'W".
var dmmRe = regexp.MustCompile(
	`(\d+)(?:°|\s)\s*(\d+(?:\.\d+)?)['′]?\s*([NS])[,\s]+(\d+)(?:°|\s)\s*(\d+(?:\.\d+)?)['′]?\s*([EW])`)

// ParseDMM parses a degrees/decimal-minutes coordinate string with
// direction indicators back into signed decimal degrees. It tolerates
// missing degree symbols, typographic quote variants and European decimal
// commas.
func ParseDMM(s string) (Point, error) {
	s = strings.NewReplacer("′", "'", `"`, "'").Replace(s)
	s = regexp.MustCompile(`(\d+),(\d+)`).ReplaceAllString(s, "$1.$2")

	m := dmmRe.FindStringSubmatch(s)
	if m == nil {
		return Point{}, fmt.Errorf("coordinate string %q is not in DMM format", s)
	}

	latDeg, _ := strconv.ParseFloat(m[1], 64)
	latMin, _ := strconv.ParseFloat(m[2], 64)
	lonDeg, _ := strconv.ParseFloat(m[4], 64)
	lonMin, _ := strconv.ParseFloat(m[5], 64)

	lat := latDeg + latMin/60.0
	if m[3] == "S" {
		lat = -lat
	}
	lon := lonDeg + lonMin/60.0
	if m[6] == "W" {
		lon = -lon
	}

	return Point{Latitude: lat, Longitude: lon}, nil
}
