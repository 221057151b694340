// Package geo holds spherical-earth helpers for the map: distances between
// points and their display form.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius.
const EarthRadiusMeters = 6_371_000.0

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// hav is the haversine of an angle in radians.
func hav(theta float64) float64 {
	s := math.Sin(theta / 2)
	return s * s
}

// Haversine returns the great-circle distance in meters between two points
// given in degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1, phi2 := radians(lat1), radians(lat2)
	h := hav(phi2-phi1) + math.Cos(phi1)*math.Cos(phi2)*hav(radians(lng2-lng1))
	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(1, h)
	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// ValidateCoordinates reports whether lat is in [-90,90] and lng in [-180,180].
func ValidateCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return math.Abs(lat) <= 90 && math.Abs(lng) <= 180
}

// FormatDistance renders meters for a list entry: "850 m" below one
// kilometer, "3.2 km" above.
func FormatDistance(meters float64) string {
	if meters < 999.5 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
