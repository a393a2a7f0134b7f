package geo

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// OutOfRangeError is returned when a point falls outside the allowed
// radius around a fence center. It carries the measured distance so
// callers can report it.
type OutOfRangeError struct {
	DistanceMeters float64
	AllowedRadius  float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("location is %.0fm from the allowed area (radius %.0fm)", e.DistanceMeters, e.AllowedRadius)
}

// Distance returns the great-circle distance between two points in
// meters, using the Haversine formula.
func Distance(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	latARad := a.Latitude * (math.Pi / 180.0)
	latBRad := b.Latitude * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(latARad)*math.Cos(latBRad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// Fence is a circular geofence.
type Fence struct {
	Center Point
	Radius float64
}

// Validate checks point against the fence. A point exactly on the
// boundary passes. The returned error is an *OutOfRangeError when the
// point is too far away.
func (f Fence) Validate(point Point) error {
	d := Distance(point, f.Center)
	if d <= f.Radius {
		return nil
	}
	return &OutOfRangeError{DistanceMeters: math.Round(d), AllowedRadius: f.Radius}
}
