package math

import (
	"errors"
	"fmt"
)

var ErrInvalidPlane = errors.New("invalid rotation plane")

// Plane names one of the six coordinate planes of 4-space.
type Plane uint8

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneXW
	PlaneYZ
	PlaneYW
	PlaneZW
)

var planeAxes = [...][2]int{
	PlaneXY: {0, 1},
	PlaneXZ: {0, 2},
	PlaneXW: {0, 3},
	PlaneYZ: {1, 2},
	PlaneYW: {1, 3},
	PlaneZW: {2, 3},
}

var planeNames = [...]string{"xy", "xz", "xw", "yz", "yw", "zw"}

// Axes returns the two axis indices spanning the plane.
func (p Plane) Axes() (int, int) {
	if int(p) >= len(planeAxes) {
		panic(fmt.Errorf("%w: plane %d", ErrInvalidPlane, p))
	}
	return planeAxes[p][0], planeAxes[p][1]
}

// Rotation returns the elementary rotation by angle in this plane.
func (p Plane) Rotation(angle float64) Mat4 {
	a, b := p.Axes()
	return ElementaryRotation(a, b, angle)
}

func (p Plane) String() string {
	if int(p) >= len(planeNames) {
		return fmt.Sprintf("plane(%d)", p)
	}
	return planeNames[p]
}

// ElementaryRotation returns the identity matrix with the (a,b) block replaced
// by a 2D rotation:
//
//	M[a][a] = cos  M[a][b] = -sin
//	M[b][a] = sin  M[b][b] =  cos
//
// A positive angle turns axis a toward axis b, so rotating (1,0,0,0) by
// ElementaryRotation(0, 1, π/2) gives (0,1,0,0). Axes outside 0..3 or a == b
// are programming errors and panic.
func ElementaryRotation(a, b int, angle float64) Mat4 {
	if a < 0 || a > 3 || b < 0 || b > 3 || a == b {
		panic(fmt.Errorf("%w: axes (%d,%d)", ErrInvalidPlane, a, b))
	}
	c, s := kcos(angle), ksin(angle)
	mt := NewMat4Identity()
	mt.Set(a, a, c)
	mt.Set(a, b, -s)
	mt.Set(b, a, s)
	mt.Set(b, b, c)
	return mt
}

// Compose returns m1·m2. Applied to a vector, m2 acts first. Orientation
// increments are right-multiplied (orientation' = orientation·increment),
// i.e. they happen in the object's local frame.
func Compose(m1, m2 Mat4) Mat4 {
	return m1.Mul(m2)
}

// Apply returns m·v.
func Apply(mt Mat4, v Vec4) Vec4 {
	return mt.MulVec4(v)
}

// Deviation measures how far mt is from orthonormal: the largest
// |row_i·row_j - δij| over all row pairs. Zero for an exact rotation.
func Deviation(mt Mat4) float64 {
	worst := 0.0
	for i := 0; i < 4; i++ {
		ri := mt.Row(i)
		for j := i; j < 4; j++ {
			d := ri.Dot(mt.Row(j))
			if i == j {
				d -= 1
			}
			if d = kabs(d); d > worst {
				worst = d
			}
		}
	}
	return worst
}

// Orthonormalize runs modified Gram-Schmidt over the rows of mt, in order
// x, y, z, w. The first row keeps its direction.
func Orthonormalize(mt Mat4) Mat4 {
	var rows [4]Vec4
	for i := 0; i < 4; i++ {
		v := mt.Row(i)
		for j := 0; j < i; j++ {
			v = v.Sub(rows[j].MulScalar(v.Dot(rows[j])))
		}
		rows[i] = v.Normalize()
	}
	var out Mat4
	for i, r := range rows {
		out.setRow(i, r)
	}
	return out
}
