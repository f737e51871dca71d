package rl

import "fmt"

// Action is one of the four strategy calls available on every lap.
type Action int

const (
	Stay Action = iota
	PitSoft
	PitMedium
	PitHard
)

// NumActions is the size of the action space.
const NumActions = 4

// AllActions lists every action in index order.
var AllActions = []Action{Stay, PitSoft, PitMedium, PitHard}

func (a Action) String() string {
	switch a {
	case Stay:
		return "STAY"
	case PitSoft:
		return "PIT_SOFT"
	case PitMedium:
		return "PIT_MEDIUM"
	case PitHard:
		return "PIT_HARD"
	}
	return fmt.Sprintf("ACTION(%d)", int(a))
}

// IsPit reports whether the action calls the car into the pit lane.
func (a Action) IsPit() bool {
	return a == PitSoft || a == PitMedium || a == PitHard
}

// Compound names the tire compound a pit action bolts on, empty for Stay.
func (a Action) Compound() string {
	switch a {
	case PitSoft:
		return "SOFT"
	case PitMedium:
		return "MEDIUM"
	case PitHard:
		return "HARD"
	}
	return ""
}

// StateDims is the number of components in a State vector.
const StateDims = 8

// stateBins is the number of buckets per component when discretizing.
const stateBins = 10

// State is the normalized observation vector an environment exposes to the
// agent. Components, in order: lap progress, tire age, compound index,
// track position, degradation estimate, laps remaining, weather flag,
// pit count. Every component lies in [0,1].
type State [StateDims]float64

// StateKey identifies one bucket of the discretized state space. Each of
// the 8 components maps to a digit in [0,9] and the digits pack into a
// single integer, so the key space is 10^8 and fits a uint32.
type StateKey uint32

// Key buckets every component into one of 10 equal-width bins, clamped to
// [0,9], and packs the bins into the table key.
func (s State) Key() StateKey {
	var key StateKey
	for _, v := range s {
		b := int(v * stateBins)
		if b < 0 {
			b = 0
		} else if b > stateBins-1 {
			b = stateBins - 1
		}
		key = key*stateBins + StateKey(b)
	}
	return key
}
