package ports

import (
	"math"

	"github.com/ngmaloney/marine-dashboard/internal/models"
)

const earthRadiusNM = 3440.065

// DistanceNM returns the great-circle distance in nautical miles
func DistanceNM(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusNM * c
}

// Nearest returns the catalogue port closest to a coordinate and its distance
func (c *Catalogue) Nearest(lat, lon float64) (models.Port, float64) {
	var (
		best     models.Port
		bestDist = math.Inf(1)
	)
	for _, p := range c.All() {
		if d := DistanceNM(lat, lon, p.Latitude, p.Longitude); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, bestDist
}
