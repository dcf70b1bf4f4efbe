package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ocean-uhh/cruiseplan/internal/scheduler"

	"github.com/rs/zerolog/log"
)

// Classic NetCDF (CDF-1) on-disk constants. The classic format is written
// directly because every NetCDF reader understands it and the station
// arrays here are tiny.
const (
	ncChar   int32 = 2
	ncShort  int32 = 3
	ncFloat  int32 = 5
	ncDouble int32 = 6

	tagDimension int32 = 0x0A
	tagVariable  int32 = 0x0B
	tagAttribute int32 = 0x0C
)

const opTypeNameLen = 20

type ncDim struct {
	name string
	size int32
}

type ncAttr struct {
	name string
	typ  int32
	data []byte // big-endian payload
}

type ncVar struct {
	name  string
	typ   int32
	dims  []int32 // indexes into the dimension list
	attrs []ncAttr
	data  []byte // big-endian payload, unpadded
}

func charAttr(name, value string) ncAttr {
	return ncAttr{name: name, typ: ncChar, data: []byte(value)}
}

func doubleAttr(name string, value float64) ncAttr {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, value)
	return ncAttr{name: name, typ: ncDouble, data: buf.Bytes()}
}

func pad4(n int) int {
	if r := n % 4; r != 0 {
		return n + 4 - r
	}
	return n
}

func writePadded(buf *bytes.Buffer, data []byte) {
	buf.Write(data)
	for i := len(data); i < pad4(len(data)); i++ {
		buf.WriteByte(0)
	}
}

func writeName(buf *bytes.Buffer, name string) {
	_ = binary.Write(buf, binary.BigEndian, int32(len(name)))
	writePadded(buf, []byte(name))
}

func writeAttrList(buf *bytes.Buffer, attrs []ncAttr) {
	if len(attrs) == 0 {
		_ = binary.Write(buf, binary.BigEndian, int32(0))
		_ = binary.Write(buf, binary.BigEndian, int32(0))
		return
	}

	_ = binary.Write(buf, binary.BigEndian, tagAttribute)
	_ = binary.Write(buf, binary.BigEndian, int32(len(attrs)))
	for _, a := range attrs {
		writeName(buf, a.name)
		_ = binary.Write(buf, binary.BigEndian, a.typ)
		_ = binary.Write(buf, binary.BigEndian, int32(len(a.data)/typeSize(a.typ)))
		writePadded(buf, a.data)
	}
}

func typeSize(t int32) int {
	switch t {
	case ncChar:
		return 1
	case ncShort:
		return 2
	case ncDouble:
		return 8
	default:
		return 4
	}
}

// encodeHeader serializes the file header with the given per-variable data
// offsets. The header length does not depend on the offset values, so it
// is called once with zero offsets to measure and once for real.
func encodeHeader(dims []ncDim, gattrs []ncAttr, vars []ncVar, offsets []int32) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("CDF\x01")
	_ = binary.Write(buf, binary.BigEndian, int32(0)) // numrecs, no record dimension

	_ = binary.Write(buf, binary.BigEndian, tagDimension)
	_ = binary.Write(buf, binary.BigEndian, int32(len(dims)))
	for _, d := range dims {
		writeName(buf, d.name)
		_ = binary.Write(buf, binary.BigEndian, d.size)
	}

	writeAttrList(buf, gattrs)

	_ = binary.Write(buf, binary.BigEndian, tagVariable)
	_ = binary.Write(buf, binary.BigEndian, int32(len(vars)))
	for i, v := range vars {
		writeName(buf, v.name)
		_ = binary.Write(buf, binary.BigEndian, int32(len(v.dims)))
		for _, d := range v.dims {
			_ = binary.Write(buf, binary.BigEndian, d)
		}
		writeAttrList(buf, v.attrs)
		_ = binary.Write(buf, binary.BigEndian, v.typ)
		_ = binary.Write(buf, binary.BigEndian, int32(pad4(len(v.data))))
		_ = binary.Write(buf, binary.BigEndian, offsets[i])
	}

	return buf.Bytes()
}

func encodeCDF(dims []ncDim, gattrs []ncAttr, vars []ncVar) []byte {
	headerLen := len(encodeHeader(dims, gattrs, vars, make([]int32, len(vars))))

	offsets := make([]int32, len(vars))
	off := headerLen
	for i, v := range vars {
		offsets[i] = int32(off)
		off += pad4(len(v.data))
	}

	buf := bytes.NewBuffer(encodeHeader(dims, gattrs, vars, offsets))
	for _, v := range vars {
		writePadded(buf, v.data)
	}
	return buf.Bytes()
}

func floats32(values []float64) []byte {
	var buf bytes.Buffer
	for _, v := range values {
		_ = binary.Write(&buf, binary.BigEndian, float32(v))
	}
	return buf.Bytes()
}

// WriteNetCDF exports the discrete sampling points (stations and
// moorings) as a CF-style NetCDF file with a single station dimension.
// Transits and areas are excluded, matching how the data would be sampled.
func WriteNetCDF(meta CruiseMeta, timeline []scheduler.ActivityRecord, path string) error {
	var stations []scheduler.ActivityRecord
	for _, r := range timeline {
		switch r.Activity {
		case scheduler.ActivityStation, scheduler.ActivityMooring:
			stations = append(stations, r)
		}
	}
	if len(stations) == 0 {
		log.Warn().Msg("No discrete sampling activities, skipping NetCDF generation")
		return nil
	}

	n := len(stations)
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

	times := make([]float64, n)
	lats := make([]float64, n)
	lons := make([]float64, n)
	depths := make([]float64, n)
	durations := make([]float64, n)
	cumDist := make([]float64, n)

	opTypes := map[string]struct{}{}
	var running float64
	for i, r := range stations {
		times[i] = r.StartTime.Sub(epoch).Seconds()
		lats[i] = r.Lat
		lons[i] = r.Lon
		depths[i] = r.Depth
		durations[i] = r.DurationMinutes
		running += r.TransitDistNm
		cumDist[i] = running
		opTypes[r.OperationType] = struct{}{}
	}

	// Categorical lookup: stable index per operation-type name.
	names := make([]string, 0, len(opTypes))
	for name := range opTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	index := map[string]int16{}
	for i, name := range names {
		index[name] = int16(i)
	}

	var idxBuf bytes.Buffer
	var nameBuf bytes.Buffer
	for _, r := range stations {
		_ = binary.Write(&idxBuf, binary.BigEndian, index[r.OperationType])
		name := r.OperationType
		if len(name) > opTypeNameLen {
			name = name[:opTypeNameLen]
		}
		nameBuf.WriteString(name)
		for i := len(name); i < opTypeNameLen; i++ {
			nameBuf.WriteByte(0)
		}
	}

	var timeBuf bytes.Buffer
	for _, v := range times {
		_ = binary.Write(&timeBuf, binary.BigEndian, v)
	}

	latMax := -math.MaxFloat64
	for _, v := range lats {
		latMax = math.Max(latMax, v)
	}

	dims := []ncDim{
		{name: "station", size: int32(n)},
		{name: "string20", size: opTypeNameLen},
	}

	gattrs := []ncAttr{
		charAttr("title", meta.Title),
		charAttr("Conventions", "CF-1.6"),
		charAttr("creator_name", "cruiseplan"),
		charAttr("date_created", time.Now().UTC().Format("2006-01-02T15:04:05")),
		doubleAttr("vessel_speed_kt", meta.VesselSpeedKn),
		doubleAttr("total_duration_days", stations[n-1].EndTime.Sub(stations[0].StartTime).Hours()/24),
		doubleAttr("geospatial_lat_max", latMax),
	}

	vars := []ncVar{
		{
			name: "time", typ: ncDouble, dims: []int32{0}, data: timeBuf.Bytes(),
			attrs: []ncAttr{
				charAttr("units", "seconds since 1970-01-01 00:00:00"),
				charAttr("long_name", "Time of operation start"),
			},
		},
		{
			name: "latitude", typ: ncFloat, dims: []int32{0}, data: floats32(lats),
			attrs: []ncAttr{charAttr("units", "degrees_north")},
		},
		{
			name: "longitude", typ: ncFloat, dims: []int32{0}, data: floats32(lons),
			attrs: []ncAttr{charAttr("units", "degrees_east")},
		},
		{
			name: "depth", typ: ncFloat, dims: []int32{0}, data: floats32(depths),
			attrs: []ncAttr{
				charAttr("units", "m"),
				charAttr("standard_name", "sea_floor_depth_below_sea_surface"),
			},
		},
		{
			name: "duration_minutes", typ: ncFloat, dims: []int32{0}, data: floats32(durations),
			attrs: []ncAttr{
				charAttr("units", "minutes"),
				charAttr("long_name", "Duration of station operation"),
			},
		},
		{
			name: "distance_from_start", typ: ncFloat, dims: []int32{0}, data: floats32(cumDist),
			attrs: []ncAttr{
				charAttr("units", "nautical_miles"),
				charAttr("long_name", "Cumulative distance from cruise start"),
			},
		},
		{
			name: "operation_type_index", typ: ncShort, dims: []int32{0}, data: idxBuf.Bytes(),
			attrs: []ncAttr{charAttr("long_name", "Index of operation type")},
		},
		{
			name: "operation_type_names", typ: ncChar, dims: []int32{0, 1}, data: nameBuf.Bytes(),
			attrs: []ncAttr{charAttr("long_name", "Operation type names")},
		},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, encodeCDF(dims, gattrs, vars), 0644); err != nil {
		return fmt.Errorf("write netcdf: %w", err)
	}

	log.Info().Str("path", path).Int("stations", n).Msg("NetCDF file written")
	return nil
}

// CruiseMeta carries the cruise-level attributes stamped into the file's
// global attribute block.
type CruiseMeta struct {
	Title         string
	VesselSpeedKn float64
}
