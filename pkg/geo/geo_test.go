package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
)

func TestGreatCircleDistanceMatchesHaversine(t *testing.T) {
	testCases := []struct {
		name string
		a, b Coordinate
	}{
		{name: "yogyakarta short hop", a: NewCoordinate(-7.7956, 110.3695), b: NewCoordinate(-7.7829, 110.3671)},
		{name: "solo to jogja", a: NewCoordinate(-7.5755, 110.8243), b: NewCoordinate(-7.7956, 110.3695)},
		{name: "same point", a: NewCoordinate(1, 1), b: NewCoordinate(1, 1)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			hav := CalculateHaversineDistance(tt.a.Lat, tt.a.Lon, tt.b.Lat, tt.b.Lon) * 1000
			assert.InDelta(t, hav, GreatCircleDistance(tt.a, tt.b), 1.0)
		})
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	coords := []Coordinate{NewCoordinate(38.5, -120.2), NewCoordinate(40.7, -120.95), NewCoordinate(43.252, -126.453)}
	encoded := EncodePolyline(coords)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)

	decoded, _, err := polyline.DecodeCoords([]byte(encoded))
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i := range coords {
		assert.InDelta(t, coords[i].Lat, decoded[i][0], 1e-5)
		assert.InDelta(t, coords[i].Lon, decoded[i][1], 1e-5)
	}
}

func TestPolylineLength(t *testing.T) {
	a := NewCoordinate(0, 0)
	mid := NewCoordinate(0, 0.5)
	b := NewCoordinate(0, 1)

	assert.Equal(t, 0.0, PolylineLength(nil))
	assert.Equal(t, 0.0, PolylineLength([]Coordinate{a}))
	// along the equator the midpoint adds nothing
	assert.InDelta(t, GreatCircleDistance(a, b), PolylineLength([]Coordinate{a, mid, b}), 1e-6)
	assert.InDelta(t, 2*GreatCircleDistance(a, b), PolylineLength([]Coordinate{a, b, a}), 1e-6)
}
