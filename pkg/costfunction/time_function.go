package costfunction

import (
	"math"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

type TimeFunction struct {
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{}
}

const (
	defaultSpeed = 20.0 / 3.6 // m/s, fallback when a profile has no speed for mode
)

func (tf *TimeFunction) speed(mode pkg.TraverseMode, p SpeedProfile) float64 {
	speed := p.SpeedFor(mode)
	if speed <= 0 {
		return defaultSpeed
	}
	return speed
}

func (tf *TimeFunction) GetTravelTime(e EdgeAttributes, mode pkg.TraverseMode, p SpeedProfile) int64 {
	return util.CeilSeconds(e.GetLength()/tf.speed(mode, p), 1)
}

func (tf *TimeFunction) GetWeight(seconds int64, mode pkg.TraverseMode, p SpeedProfile) float64 {
	reluctance := p.ReluctanceFor(mode)
	if reluctance < 1 {
		reluctance = 1
	}
	return float64(seconds) * reluctance
}

// GetLowerBoundWeight length over the fastest mode that is both usable by the query and permitted on e.
// +Inf when no such mode exists.
func (tf *TimeFunction) GetLowerBoundWeight(e EdgeAttributes, p SpeedProfile) float64 {
	maxSpeed := 0.0
	for _, m := range p.UsableStreetModes().Modes() {
		if !e.GetPermission().Contains(m) {
			continue
		}
		maxSpeed = math.Max(maxSpeed, tf.speed(m, p))
	}
	if maxSpeed == 0 {
		return pkg.INF_WEIGHT
	}
	return e.GetLength() / maxSpeed
}
