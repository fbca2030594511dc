package costfunction

import (
	"github.com/lintang-b-s/navigatorx-transit/pkg"
)

type EdgeAttributes interface {
	GetLength() float64
	GetHighwayType() pkg.OsmHighwayType
	GetPermission() pkg.TraverseModeSet
}

// SpeedProfile per-query speeds (m/s) & reluctances of the street modes.
type SpeedProfile interface {
	SpeedFor(mode pkg.TraverseMode) float64
	ReluctanceFor(mode pkg.TraverseMode) float64
	UsableStreetModes() pkg.TraverseModeSet
}

type CostFunction interface {
	// GetTravelTime whole seconds needed to traverse e with mode, at least 1.
	GetTravelTime(e EdgeAttributes, mode pkg.TraverseMode, p SpeedProfile) int64
	GetWeight(seconds int64, mode pkg.TraverseMode, p SpeedProfile) float64
	// GetLowerBoundWeight must never exceed GetWeight(GetTravelTime(e, m, p), m, p) for any mode m usable on e.
	GetLowerBoundWeight(e EdgeAttributes, p SpeedProfile) float64
}
