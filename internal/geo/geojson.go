package geo

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   Geometry               `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a feature. Coordinates are
// [lon, lat] for Point, a list of [lon, lat] pairs for LineString, and a
// list of rings for Polygon.
type Geometry struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates interface{} `json:"coordinates" yaml:"coordinates"`
}

// PointGeometry builds a GeoJSON Point geometry from a Point.
func PointGeometry(p Point) Geometry {
	return Geometry{Type: "Point", Coordinates: []float64{p.Longitude, p.Latitude}}
}

// LineGeometry builds a GeoJSON LineString geometry from a polyline.
func LineGeometry(points []Point) Geometry {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Longitude, p.Latitude})
	}
	return Geometry{Type: "LineString", Coordinates: coords}
}

// PolygonGeometry builds a GeoJSON Polygon geometry from a ring of corner
// points, closing the ring if the input leaves it open.
func PolygonGeometry(corners []Point) Geometry {
	ring := make([][]float64, 0, len(corners)+1)
	for _, p := range corners {
		ring = append(ring, []float64{p.Longitude, p.Latitude})
	}
	if len(ring) > 0 && (ring[0][0] != ring[len(ring)-1][0] || ring[0][1] != ring[len(ring)-1][1]) {
		ring = append(ring, ring[0])
	}
	return Geometry{Type: "Polygon", Coordinates: [][][]float64{ring}}
}
