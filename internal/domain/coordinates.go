package domain

import "math"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external API compatibility.
func (c Coordinates) LonLat() []float64 { return []float64{c.Lon, c.Lat} }

const earthRadiusMeters = 6371000.0

// DistanceMeters returns the great-circle (haversine) distance to another
// coordinate pair, in meters.
func (c Coordinates) DistanceMeters(o Coordinates) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := o.Lat * math.Pi / 180
	dLat := (o.Lat - c.Lat) * math.Pi / 180
	dLon := (o.Lon - c.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Midpoint returns the arithmetic mean of two coordinate pairs.
// Not a geodesic midpoint; downstream scoring depends on this exact behavior.
func Midpoint(a, b Coordinates) Coordinates {
	return Coordinates{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}
