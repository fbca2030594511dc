package pkg

import (
	"math"
	"strings"
)

// enum of traverse_mode
type TraverseMode uint8

const (
	WALK TraverseMode = iota
	BICYCLE
	CAR
	BUS
	TRAM
	SUBWAY
	RAIL
	FERRY
	// LEG_SWITCH marks a conceptual mode switch rather than physical movement.
	LEG_SWITCH
)

func (m TraverseMode) String() string {
	switch m {
	case WALK:
		return "WALK"
	case BICYCLE:
		return "BICYCLE"
	case CAR:
		return "CAR"
	case BUS:
		return "BUS"
	case TRAM:
		return "TRAM"
	case SUBWAY:
		return "SUBWAY"
	case RAIL:
		return "RAIL"
	case FERRY:
		return "FERRY"
	case LEG_SWITCH:
		return "LEG_SWITCH"
	default:
		return "UNKNOWN"
	}
}

func (m TraverseMode) IsTransit() bool {
	return m >= BUS && m <= FERRY
}

func (m TraverseMode) IsOnStreet() bool {
	return m == WALK || m == BICYCLE || m == CAR
}

// IsDriving. personal vehicle modes that may have to be parked before boarding transit.
func (m TraverseMode) IsDriving() bool {
	return m == CAR
}

func ParseTraverseMode(mode string) (TraverseMode, bool) {
	switch strings.ToUpper(strings.TrimSpace(mode)) {
	case "WALK":
		return WALK, true
	case "BICYCLE", "BIKE":
		return BICYCLE, true
	case "CAR", "DRIVE":
		return CAR, true
	case "BUS":
		return BUS, true
	case "TRAM":
		return TRAM, true
	case "SUBWAY", "METRO":
		return SUBWAY, true
	case "RAIL", "TRAIN":
		return RAIL, true
	case "FERRY":
		return FERRY, true
	case "LEG_SWITCH":
		return LEG_SWITCH, true
	default:
		return WALK, false
	}
}

// TraverseModeSet bitset of modes, bit i = TraverseMode(i)
type TraverseModeSet uint16

func NewTraverseModeSet(modes ...TraverseMode) TraverseModeSet {
	var set TraverseModeSet
	for _, m := range modes {
		set = set.With(m)
	}
	return set
}

func (s TraverseModeSet) With(m TraverseMode) TraverseModeSet {
	return s | (1 << m)
}

func (s TraverseModeSet) Contains(m TraverseMode) bool {
	return s&(1<<m) != 0
}

func (s TraverseModeSet) IsEmpty() bool {
	return s == 0
}

func (s TraverseModeSet) Intersects(other TraverseModeSet) bool {
	return s&other != 0
}

func (s TraverseModeSet) Modes() []TraverseMode {
	modes := make([]TraverseMode, 0, 4)
	for m := WALK; m <= LEG_SWITCH; m++ {
		if s.Contains(m) {
			modes = append(modes, m)
		}
	}
	return modes
}

var (
	ALL_TRANSIT_MODES = NewTraverseModeSet(BUS, TRAM, SUBWAY, RAIL, FERRY)
	ALL_STREET_MODES  = NewTraverseModeSet(WALK, BICYCLE, CAR)
)

var (
	// INF_WEIGHT weight of an edge class that can never be used by the active query.
	INF_WEIGHT = math.Inf(1)
)

const (
	// STL_TRAVERSE_COST structural cost (seconds & weight) of crossing a street <-> transit link
	STL_TRAVERSE_COST = 1

	DEFAULT_WALK_SPEED      = 1.33 // m/s
	DEFAULT_BIKE_SPEED      = 5.0  // m/s
	DEFAULT_CAR_SPEED       = 15.0 // m/s
	DEFAULT_WALK_RELUCTANCE = 2.0
	DEFAULT_BOARD_COST      = 60.0
	DEFAULT_TRANSFER_COST   = 0.0
	DEFAULT_BOARD_SLACK     = 0
	DEFAULT_ALIGHT_SLACK    = 0
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
	FOOTWAY        OsmHighwayType = 18
	CYCLEWAY       OsmHighwayType = 19
	PEDESTRIAN     OsmHighwayType = 20
	STEPS          OsmHighwayType = 21
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	case "footway", "path":
		return FOOTWAY
	case "cycleway":
		return CYCLEWAY
	case "pedestrian":
		return PEDESTRIAN
	case "steps":
		return STEPS
	default:
		return UNKNOWN
	}
}

// StreetPermission default street modes allowed on a highway class.
func StreetPermission(highway OsmHighwayType) TraverseModeSet {
	switch highway {
	case MOTORWAY, MOTORWAY_LINK, MOTORROAD:
		return NewTraverseModeSet(CAR)
	case TRUNK, TRUNK_LINK:
		return NewTraverseModeSet(CAR, BICYCLE)
	case FOOTWAY, PEDESTRIAN, STEPS:
		return NewTraverseModeSet(WALK)
	case CYCLEWAY:
		return NewTraverseModeSet(WALK, BICYCLE)
	default:
		return ALL_STREET_MODES
	}
}
