package math

const (
	// DefaultRenormalizeEvery is the composition count after which the
	// orientation is re-orthonormalized regardless of measured drift.
	DefaultRenormalizeEvery = 32
	// DefaultDriftTolerance triggers an early re-orthonormalization.
	DefaultDriftTolerance = 1e-10
)

func NewOrientation() Orientation {
	return Orientation{Matrix: NewMat4Identity()}
}

// NewOrientationWithPolicy returns an identity orientation with an explicit
// drift correction cadence.
func NewOrientationWithPolicy(every int, tolerance float64) Orientation {
	o := NewOrientation()
	o.RenormalizeEvery = every
	o.DriftTolerance = tolerance
	return o
}

// Rotate folds increment into the orientation in local space
// (o' = o·increment) and re-orthonormalizes when the cadence is reached or
// the drift check fails.
func (o *Orientation) Rotate(increment Mat4) {
	o.Matrix = Compose(o.Matrix, increment)
	o.sinceNormalize++

	every := o.RenormalizeEvery
	if every <= 0 {
		every = DefaultRenormalizeEvery
	}
	tolerance := o.DriftTolerance
	if tolerance <= 0 {
		tolerance = DefaultDriftTolerance
	}
	if o.sinceNormalize >= every || Deviation(o.Matrix) > tolerance {
		o.Matrix = Orthonormalize(o.Matrix)
		o.sinceNormalize = 0
	}
}

// Reset restores the identity orientation. The drift policy is kept.
func (o *Orientation) Reset() {
	o.Matrix = NewMat4Identity()
	o.sinceNormalize = 0
}

// Apply rotates v by the orientation.
func (o Orientation) Apply(v Vec4) Vec4 {
	return Apply(o.Matrix, v)
}

// Deviation reports the current orthonormality error.
func (o Orientation) Deviation() float64 {
	return Deviation(o.Matrix)
}

// Pending returns the number of compositions since the last correction.
func (o Orientation) Pending() int {
	return o.sinceNormalize
}
