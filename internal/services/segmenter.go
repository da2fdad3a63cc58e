package services

import (
	"route-resilience-service/internal/domain"
)

// Segment converts a route's coordinate sequence into bounded-length
// segments.
//
// The walk accumulates great-circle distance between successive points into
// a running segment and closes it before the next hop would push it past
// maxLenMeters, provided the segment has already reached minLenMeters. The
// final remainder segment covers the route's tail and may be shorter than
// minLenMeters. A segment only exceeds maxLenMeters when a single hop
// between consecutive points does.
//
// Degenerate input (fewer than 2 points) yields an empty sequence.
func Segment(route domain.Route, maxLenMeters, minLenMeters float64) []domain.Segment {
	pts := route.Geometry
	if len(pts) < 2 {
		return []domain.Segment{}
	}

	segments := make([]domain.Segment, 0, len(pts)/2)

	segStart := pts[0]
	segLen := 0.0
	prev := pts[0]

	for _, pt := range pts[1:] {
		hop := prev.DistanceMeters(pt)

		if segLen+hop > maxLenMeters && segLen >= minLenMeters {
			segments = append(segments, newSegment(segStart, prev, segLen))
			segStart = prev
			segLen = 0
		}

		segLen += hop
		prev = pt
	}

	if segLen > 0 {
		segments = append(segments, newSegment(segStart, prev, segLen))
	}

	return segments
}

func newSegment(start, end domain.Coordinates, length float64) domain.Segment {
	return domain.Segment{
		Start:        start,
		End:          end,
		Mid:          domain.Midpoint(start, end),
		LengthMeters: length,
	}
}
