package geo

import "math"

const (
	earthRadiusMeters = 6371000.0
	feetPerMeter      = 3.28084

	// ArrivalThresholdFeet is how close a device must be to a gift's unlock
	// point before it may be opened. Exactly at the threshold counts as arrived.
	ArrivalThresholdFeet = 500.0
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceFeet returns the great-circle distance between two points in feet.
func DistanceFeet(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c * feetPerMeter
}

// Arrived reports whether a device at the given position may open a gift
// placed at target. A nil device position never unlocks: without a location
// fix the gate stays closed.
func Arrived(device *Point, target Point) bool {
	if device == nil {
		return false
	}
	return DistanceFeet(*device, target) <= ArrivalThresholdFeet
}
