package components

import (
	"github.com/spaghettifunk/tesseract/engine/math"
	"github.com/spaghettifunk/tesseract/engine/projection"
)

/**
 * @brief The two long-lived mutable values of a session: where the
 * observer is in 4-space and how the hypercube is oriented. Owned by the
 * host frame loop and passed by value into and out of the integrator.
 */
type State struct {
	/** @brief The observer position in 4-space. */
	Position math.Vec4
	/**
	 * @brief The cumulative orientation.
	 * NOTE: fold increments in with Orientation.Rotate so drift correction runs.
	 */
	Orientation math.Orientation
}

func NewState() State {
	return State{
		Position:    math.NewVec4Zero(),
		Orientation: math.NewOrientation(),
	}
}

// NewStateWithPolicy returns a fresh state whose orientation re-orthonormalizes
// every `every` compositions or past `tolerance` drift.
func NewStateWithPolicy(every int, tolerance float64) State {
	s := NewState()
	s.Orientation = math.NewOrientationWithPolicy(every, tolerance)
	return s
}

// Reset restores identity orientation and the origin.
func (s *State) Reset() {
	s.Position = math.NewVec4Zero()
	s.Orientation.Reset()
}

func (s State) Right() math.Vec4 {
	return s.Orientation.Matrix.Right()
}

func (s State) Forward() math.Vec4 {
	return s.Orientation.Matrix.Forward()
}

func (s State) Ana() math.Vec4 {
	return s.Orientation.Matrix.Ana()
}

// Move translates the observer by amount along direction.
func (s *State) Move(direction math.Vec4, amount float64) {
	s.Position = s.Position.Add(direction.MulScalar(amount))
}

// IsFinite reports whether both position and orientation are finite.
func (s State) IsFinite() bool {
	return s.Position.IsFinite() && s.Orientation.Matrix.IsFinite()
}

// Snapshot captures the state for one projection pass.
func (s State) Snapshot() projection.Snapshot {
	return projection.Snapshot{
		Orientation: s.Orientation.Matrix,
		Observer:    s.Position,
	}
}
