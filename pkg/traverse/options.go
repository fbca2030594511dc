package traverse

import (
	"math"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/costfunction"
)

// SearchOptions. per-query configuration, read-only after construction & shared by every state of the query.
type SearchOptions struct {
	Wheelchair bool
	// Mode non-transit mode of the traveller: WALK, BICYCLE or CAR.
	Mode pkg.TraverseMode
	// TransitModes transit is allowed iff non-empty.
	TransitModes pkg.TraverseModeSet
	KissAndRide  bool
	ParkAndRide  bool
	ArriveBy     bool

	WalkSpeed       float64 // m/s
	BikeSpeed       float64 // m/s
	CarSpeed        float64 // m/s
	WalkReluctance  float64
	BoardCost       float64
	TransferPenalty float64
	BoardSlack      int64 // seconds
	AlightSlack     int64 // seconds

	// CostFunction street cost model, nil = travel time.
	CostFunction costfunction.CostFunction
}

func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{
		Mode:            pkg.WALK,
		TransitModes:    pkg.ALL_TRANSIT_MODES,
		WalkSpeed:       pkg.DEFAULT_WALK_SPEED,
		BikeSpeed:       pkg.DEFAULT_BIKE_SPEED,
		CarSpeed:        pkg.DEFAULT_CAR_SPEED,
		WalkReluctance:  pkg.DEFAULT_WALK_RELUCTANCE,
		BoardCost:       pkg.DEFAULT_BOARD_COST,
		TransferPenalty: pkg.DEFAULT_TRANSFER_COST,
		BoardSlack:      pkg.DEFAULT_BOARD_SLACK,
		AlightSlack:     pkg.DEFAULT_ALIGHT_SLACK,
	}
}

// Clone. shallow copy, for deriving a new query from an existing one.
func (o *SearchOptions) Clone() *SearchOptions {
	c := *o
	return &c
}

func (o *SearchOptions) GetCostFunction() costfunction.CostFunction {
	if o.CostFunction == nil {
		return defaultCostFunction
	}
	return o.CostFunction
}

var defaultCostFunction = costfunction.NewTimeCostFunction()

func (o *SearchOptions) TransitAllowed() bool {
	return !o.TransitModes.IsEmpty()
}

func (o *SearchOptions) CarParkingAllowed() bool {
	return o.KissAndRide || o.ParkAndRide
}

// InitialCarParked. an arriveBy car-parking query starts at the destination on foot.
func (o *SearchOptions) InitialCarParked() bool {
	return o.ArriveBy && o.Mode.IsDriving() && o.CarParkingAllowed()
}

func (o *SearchOptions) SpeedFor(mode pkg.TraverseMode) float64 {
	switch mode {
	case pkg.WALK:
		return o.WalkSpeed
	case pkg.BICYCLE:
		return o.BikeSpeed
	case pkg.CAR:
		return o.CarSpeed
	default:
		return 0
	}
}

func (o *SearchOptions) ReluctanceFor(mode pkg.TraverseMode) float64 {
	if mode == pkg.WALK {
		return math.Max(1, o.WalkReluctance)
	}
	return 1
}

// UsableStreetModes. street modes any state of this query can be in.
func (o *SearchOptions) UsableStreetModes() pkg.TraverseModeSet {
	modes := pkg.NewTraverseModeSet(o.Mode)
	if o.Mode.IsDriving() && o.CarParkingAllowed() {
		modes = modes.With(pkg.WALK)
	}
	return modes
}

func (o *SearchOptions) Allows(mode pkg.TraverseMode) bool {
	if mode.IsTransit() {
		return o.TransitModes.Contains(mode)
	}
	return o.UsableStreetModes().Contains(mode)
}

// MaxSpeed. fastest street speed usable by this query, m/s.
func (o *SearchOptions) MaxSpeed() float64 {
	maxSpeed := 0.0
	for _, m := range o.UsableStreetModes().Modes() {
		maxSpeed = math.Max(maxSpeed, o.SpeedFor(m))
	}
	return maxSpeed
}
