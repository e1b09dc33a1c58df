// Package geo contains the distance math behind the hyperlocal radius:
// great-circle distance, a bounding box for SQL prefiltering and
// coordinate validation.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by CalculateDistance.
const EarthRadiusMeters = 6371000.0

// DefaultRadiusMeters is the hyperlocal radius applied when none is given.
const DefaultRadiusMeters = 500

// Point is a WGS84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DefaultLocation is used when the user cannot be geolocated (Milan).
var DefaultLocation = Point{Lat: 45.4642, Lng: 9.1900}

// Valid reports whether p lies within the WGS84 coordinate ranges.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180 &&
		!math.IsNaN(p.Lat) && !math.IsNaN(p.Lng)
}

func (p Point) String() string {
	return fmt.Sprintf("%.4f, %.4f", p.Lat, p.Lng)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// CalculateDistance returns the haversine distance in meters between two
// coordinates given in degrees.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// Distance is CalculateDistance for two Points.
func Distance(a, b Point) float64 {
	return CalculateDistance(a.Lat, a.Lng, b.Lat, b.Lng)
}

// Box is an axis-aligned latitude/longitude rectangle.
type Box struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains reports whether p lies inside b (edges included).
func (b Box) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// LngScale is the length of a degree of longitude at lat relative to a
// degree of latitude.
func LngScale(lat float64) float64 {
	return math.Cos(toRadians(lat))
}

// BoundingBox returns a rectangle that contains every point within
// radiusMeters of center. It over-approximates the circle, so callers must
// still filter with Distance. Near the poles, and when the circle crosses
// the antimeridian, the longitude span is widened to the full range.
func BoundingBox(center Point, radiusMeters float64) Box {
	dLat := radiusMeters / EarthRadiusMeters * 180 / math.Pi

	box := Box{
		MinLat: math.Max(center.Lat-dLat, -90),
		MaxLat: math.Min(center.Lat+dLat, 90),
		MinLng: -180,
		MaxLng: 180,
	}

	cosLat := LngScale(center.Lat)
	if cosLat < 1e-6 {
		return box
	}
	dLng := dLat / cosLat
	if center.Lng-dLng < -180 || center.Lng+dLng > 180 {
		return box
	}
	box.MinLng = center.Lng - dLng
	box.MaxLng = center.Lng + dLng
	return box
}
