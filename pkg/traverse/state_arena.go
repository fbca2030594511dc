package traverse

import (
	"github.com/samber/lo"
)

// StateArena. append-only storage of the states published by one search.
// not safe for concurrent writes, each search owns its own arena.
type StateArena struct {
	states []State
}

func NewStateArena(capacity int) *StateArena {
	return &StateArena{
		states: make([]State, 0, capacity),
	}
}

// Add. publish s, returns s with its ref set.
func (a *StateArena) Add(s State) State {
	s.ref = StateRef(len(a.states))
	a.states = append(a.states, s)
	return s
}

func (a *StateArena) Get(ref StateRef) State {
	return a.states[ref]
}

func (a *StateArena) Len() int {
	return len(a.states)
}

func (a *StateArena) GetBackState(s State) (State, bool) {
	if s.back == INVALID_STATE_REF {
		return State{}, false
	}
	return a.states[s.back], true
}

// Path. states from the initial state up to ref, in search order.
func (a *StateArena) Path(ref StateRef) []State {
	path := make([]State, 0, 16)
	for cur := ref; cur != INVALID_STATE_REF; cur = a.states[cur].back {
		path = append(path, a.states[cur])
	}
	return lo.Reverse(path)
}

func (a *StateArena) Reset() {
	a.states = a.states[:0]
}
