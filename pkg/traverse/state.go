package traverse

import (
	"fmt"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	da "github.com/lintang-b-s/navigatorx-transit/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-transit/pkg/util"
)

// StateRef index of a published state in its StateArena.
type StateRef int32

const (
	INVALID_STATE_REF StateRef = -1
)

// State. immutable snapshot of a path prefix ending at vertex.
// states are copied by value; back links are arena indices, never pointers.
type State struct {
	vertex       *da.Vertex
	time         int64 // seconds since query start, negative when arriveBy
	weight       float64
	backMode     pkg.TraverseMode
	carParked    bool
	numBoardings uint8

	back     StateRef
	backEdge Edge
	ref      StateRef

	options *SearchOptions
}

// NewState. initial state of a query at v.
func NewState(v *da.Vertex, opts *SearchOptions) State {
	return State{
		vertex:    v,
		backMode:  opts.Mode,
		carParked: opts.InitialCarParked(),
		back:      INVALID_STATE_REF,
		ref:       INVALID_STATE_REF,
		options:   opts,
	}
}

// NewInitialStates. every state a query can start in at v.
// an arriveBy car-parking query may end either driving or walking, so it gets both.
func NewInitialStates(v *da.Vertex, opts *SearchOptions) []State {
	s := NewState(v, opts)
	if !s.carParked {
		return []State{s}
	}
	driving := s
	driving.carParked = false
	return []State{s, driving}
}

func (s State) GetVertex() *da.Vertex {
	return s.vertex
}

func (s State) GetTime() int64 {
	return s.time
}

func (s State) GetElapsedTimeSeconds() int64 {
	return util.Abs(s.time)
}

func (s State) GetWeight() float64 {
	return s.weight
}

func (s State) GetBackMode() pkg.TraverseMode {
	return s.backMode
}

func (s State) IsCarParked() bool {
	return s.carParked
}

func (s State) GetNumBoardings() int {
	return int(s.numBoardings)
}

func (s State) GetBackEdge() Edge {
	return s.backEdge
}

func (s State) GetBackRef() StateRef {
	return s.back
}

func (s State) GetRef() StateRef {
	return s.ref
}

func (s State) GetOptions() *SearchOptions {
	return s.options
}

func (s State) IsArriveBy() bool {
	return s.options.ArriveBy
}

// IsPublished. true once the state was added to an arena.
func (s State) IsPublished() bool {
	return s.ref != INVALID_STATE_REF
}

// NonTransitMode. street mode the traveller uses from this state on.
func (s State) NonTransitMode() pkg.TraverseMode {
	if s.carParked {
		return pkg.WALK
	}
	return s.options.Mode
}

// Edit. stage a traversal of e from s. s itself is never modified.
func (s State) Edit(e Edge) *StateEditor {
	return newStateEditor(s, e)
}

func (s State) String() string {
	return fmt.Sprintf("<State %v t=%ds w=%.2f mode=%v parked=%v boardings=%d>",
		s.vertex, s.time, s.weight, s.backMode, s.carParked, s.numBoardings)
}
