package datastructure

import (
	"fmt"
	"strconv"

	"github.com/lintang-b-s/navigatorx-transit/pkg/geo"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = ^Index(0)
)

type VertexKind uint8

const (
	STREET_VERTEX VertexKind = iota
	TRANSIT_STOP
	// TRANSIT_PLATFORM boarding/alighting side of a stop, only reachable through pre-board/pre-alight edges.
	TRANSIT_PLATFORM
)

func (k VertexKind) String() string {
	switch k {
	case STREET_VERTEX:
		return "street"
	case TRANSIT_STOP:
		return "stop"
	case TRANSIT_PLATFORM:
		return "platform"
	default:
		return "unknown"
	}
}

// Vertex. node of the multimodal graph. a vertex has no behaviour beyond identity & position,
// adjacency is owned by the graph.
type Vertex struct {
	lat   float64
	lon   float64
	id    Index
	kind  VertexKind
	label string

	// transit stop only
	streetToStopTime   int64 // seconds
	wheelchairBoarding bool
}

func NewVertex(lat, lon float64, id Index) *Vertex {
	return &Vertex{
		lat:  lat,
		lon:  lon,
		id:   id,
		kind: STREET_VERTEX,
	}
}

func NewStreetVertex(id Index, label string, lat, lon float64) *Vertex {
	return &Vertex{
		lat:   lat,
		lon:   lon,
		id:    id,
		kind:  STREET_VERTEX,
		label: label,
	}
}

// NewTransitStop. streetToStopTime is the access time (seconds) from the street network to the stop.
func NewTransitStop(id Index, label string, lat, lon float64, streetToStopTime int64, wheelchairBoarding bool) *Vertex {
	if streetToStopTime < 0 {
		streetToStopTime = 0
	}
	return &Vertex{
		lat:                lat,
		lon:                lon,
		id:                 id,
		kind:               TRANSIT_STOP,
		label:              label,
		streetToStopTime:   streetToStopTime,
		wheelchairBoarding: wheelchairBoarding,
	}
}

func NewTransitPlatform(id Index, label string, lat, lon float64, wheelchairBoarding bool) *Vertex {
	return &Vertex{
		lat:                lat,
		lon:                lon,
		id:                 id,
		kind:               TRANSIT_PLATFORM,
		label:              label,
		wheelchairBoarding: wheelchairBoarding,
	}
}

func (v *Vertex) SetId(id Index) {
	v.id = id
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetCoordinate() geo.Coordinate {
	return geo.NewCoordinate(v.lat, v.lon)
}

func (v *Vertex) GetKind() VertexKind {
	return v.kind
}

func (v *Vertex) GetLabel() string {
	return v.label
}

func (v *Vertex) IsTransitStop() bool {
	return v.kind == TRANSIT_STOP
}

func (v *Vertex) GetStreetToStopTime() int64 {
	return v.streetToStopTime
}

func (v *Vertex) IsWheelchairBoarding() bool {
	return v.wheelchairBoarding
}

func (v *Vertex) String() string {
	if v.label != "" {
		return fmt.Sprintf("<%s %s>", v.kind, v.label)
	}
	return fmt.Sprintf("<%s %d>", v.kind, v.id)
}

func ParseIndex(s string) (Index, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return Index(id), nil
}
