package geo

import (
	"github.com/twpayne/go-polyline"
)

// EncodePolyline. google encoded polyline (precision 5) of coords.
func EncodePolyline(coords []Coordinate) string {
	pts := make([][]float64, 0, len(coords))
	for _, c := range coords {
		pts = append(pts, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(pts))
}
