package projection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spaghettifunk/tesseract/engine/math"
)

// Mode selects how the hidden fourth axis is folded into 3D.
type Mode uint8

const (
	// ModePerspective divides by the distance to a focal point along w.
	ModePerspective Mode = iota
	// ModeParallel shears w into x, y and z with a constant blend factor.
	ModeParallel
)

const (
	// DefaultEpsilon is the smallest |focal - w| the perspective divide
	// accepts. Closer points fall back to their unscaled coordinates.
	DefaultEpsilon = 1e-6
	// DefaultFocalDistance places the 4D pinhole this far along +w.
	DefaultFocalDistance = 3.0
	// DefaultShear is the w blend constant of the parallel mode.
	DefaultShear = 0.5
)

var ErrUnknownMode = errors.New("unknown projection mode")

func (m Mode) String() string {
	switch m {
	case ModePerspective:
		return "perspective"
	case ModeParallel:
		return "parallel"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode accepts "perspective" or "parallel", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective":
		return ModePerspective, nil
	case "parallel", "shear":
		return ModeParallel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

/**
 * @brief Tunables for Project.
 */
type Params struct {
	/** @brief Blend factor k for ModeParallel: out = d.xyz + k·d.w */
	Shear float64
	/** @brief Distance of the pinhole along w for ModePerspective. */
	FocalDistance float64
	/**
	 * @brief Singularity guard threshold for ModePerspective. When
	 * |FocalDistance - w_local| < Epsilon the unscaled (x, y, z) of the
	 * camera-local point is returned instead of dividing. A zero, negative
	 * or non-finite value uses DefaultEpsilon.
	 */
	Epsilon float64
	/**
	 * @brief Rotation taking world offsets into camera-local space
	 * (perspective only). Must be a rotation; the zero value means identity.
	 */
	View math.Mat4
}

func DefaultParams() Params {
	return Params{
		Shear:         DefaultShear,
		FocalDistance: DefaultFocalDistance,
		Epsilon:       DefaultEpsilon,
		View:          math.NewMat4Identity(),
	}
}

func (p Params) epsilon() float64 {
	if !math.IsFinite(p.Epsilon) || p.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return p.Epsilon
}

// Project maps an already rotated 4D point, seen from observer, into 3D.
// It is pure: the same inputs always give the same output.
func Project(point, observer math.Vec4, mode Mode, params Params) math.Vec3 {
	d := point.Sub(observer)
	switch mode {
	case ModeParallel:
		k := params.Shear
		return math.NewVec3(d.X+k*d.W, d.Y+k*d.W, d.Z+k*d.W)
	default:
		local := d
		if params.View != (math.Mat4{}) {
			local = math.Apply(params.View, d)
		}
		eps := params.epsilon()
		denom := params.FocalDistance - local.W
		if !math.IsFinite(denom) || (denom < eps && denom > -eps) {
			return local.ToVec3()
		}
		s := params.FocalDistance / denom
		return math.NewVec3(local.X*s, local.Y*s, local.Z*s)
	}
}
