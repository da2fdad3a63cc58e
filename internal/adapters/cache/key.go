package cache

import "fmt"

// GridKey buckets a coordinate into a rounded grid cell so nearby sample
// points share cache entries. Two decimal places is roughly a 1.1 km cell.
func GridKey(prefix string, lat, lon float64) string {
	return fmt.Sprintf("%s:%.2f:%.2f", prefix, lat, lon)
}
