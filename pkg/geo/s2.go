package geo

import (
	"github.com/golang/geo/s2"
)

const earthRadiusMeter = earthRadiusKM * 1000

// GreatCircleDistance. distance in meter between a and b on the s2 sphere.
func GreatCircleDistance(a, b Coordinate) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusMeter
}

// PolylineLength. sum of great-circle distances between consecutive points, in meter.
func PolylineLength(coords []Coordinate) float64 {
	length := 0.0
	for i := 1; i < len(coords); i++ {
		length += GreatCircleDistance(coords[i-1], coords[i])
	}
	return length
}
