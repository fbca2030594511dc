package traverse

import (
	"math"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
)

// StateEditor. staging area for exactly one traversal of one edge.
// any illegal change marks the editor defective, a defective editor never publishes a state.
type StateEditor struct {
	parent State
	child  State

	defective    bool
	spent        bool
	backModeSet  bool
	carParkedSet bool
}

func newStateEditor(parent State, e Edge) *StateEditor {
	child := parent
	child.back = parent.ref
	child.backEdge = e
	child.ref = INVALID_STATE_REF
	if parent.options.ArriveBy {
		child.vertex = e.GetFromVertex()
	} else {
		child.vertex = e.GetToVertex()
	}
	return &StateEditor{
		parent: parent,
		child:  child,
	}
}

// IncrementTimeInSeconds. moves the clock seconds further in the search direction.
func (se *StateEditor) IncrementTimeInSeconds(seconds int64) {
	if seconds < 0 {
		se.defective = true
		return
	}
	if se.child.options.ArriveBy {
		se.child.time -= seconds
	} else {
		se.child.time += seconds
	}
}

func (se *StateEditor) IncrementWeight(weight float64) {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		se.defective = true
		return
	}
	se.child.weight += weight
}

func (se *StateEditor) SetBackMode(mode pkg.TraverseMode) {
	if se.backModeSet {
		se.defective = true
		return
	}
	se.backModeSet = true
	se.child.backMode = mode
}

func (se *StateEditor) SetCarParked(parked bool) {
	if se.carParkedSet {
		se.defective = true
		return
	}
	se.carParkedSet = true
	se.child.carParked = parked
}

func (se *StateEditor) IncrementNumBoardings() {
	if se.child.numBoardings == math.MaxUint8 {
		se.defective = true
		return
	}
	se.child.numBoardings++
}

func (se *StateEditor) IsDefective() bool {
	return se.defective
}

func (se *StateEditor) GetNonTransitMode() pkg.TraverseMode {
	return se.child.NonTransitMode()
}

// MakeState. publishes the staged state, false if the traversal is not legal.
// an editor can be made into a state only once.
func (se *StateEditor) MakeState() (State, bool) {
	if se.spent || se.defective || !se.backModeSet {
		se.spent = true
		return State{}, false
	}
	se.spent = true
	if se.child.time == se.parent.time {
		// time must strictly progress, otherwise back links could form a cycle
		return State{}, false
	}
	return se.child, true
}

// MakeOptimisticState. like MakeState but never rejects, for lower bound computations only.
func (se *StateEditor) MakeOptimisticState() State {
	se.spent = true
	return se.child
}
