package domain

// A single turn-by-turn instruction within a route.
type Step struct {
	DistanceMeters  float64
	DurationSeconds float64
	Instruction     string
	Start           Coordinates
	End             Coordinates
}

// Represents one candidate route between an origin and a destination.
// A Route is immutable once produced by the route source; later pipeline
// stages derive new records from it but never rewrite geometry or identity.
type Route struct {
	Name            string
	Ordinal         int
	Geometry        []Coordinates
	DistanceMeters  float64
	DurationSeconds float64
	DistanceText    string
	DurationText    string
	Steps           []Step
	Provider        string
}

// TotalPathMeters sums consecutive great-circle hops along the geometry.
// This can differ slightly from the provider-reported DistanceMeters.
func (r Route) TotalPathMeters() float64 {
	total := 0.0
	for i := 1; i < len(r.Geometry); i++ {
		total += r.Geometry[i-1].DistanceMeters(r.Geometry[i])
	}
	return total
}

// Represents a bounded-length slice of a route's path. Segments are the unit
// of road and weather sampling. Mid is the arithmetic mean of Start and End.
type Segment struct {
	Start        Coordinates
	End          Coordinates
	Mid          Coordinates
	LengthMeters float64
}
