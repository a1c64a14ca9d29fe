package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float64 = m.Pi
	/** @brief An approximate representation of PI divided by 2. */
	K_HALF_PI float64 = 0.5 * K_PI
)

func ksin(x float64) float64 {
	return m.Sin(x)
}

func kcos(x float64) float64 {
	return m.Cos(x)
}

func ksqrt(x float64) float64 {
	return m.Sqrt(x)
}

func kabs(x float64) float64 {
	return m.Abs(x)
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 */
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}
	if kabs(v.Y-other.Y) > tolerance {
		return false
	}
	if kabs(v.Z-other.Z) > tolerance {
		return false
	}
	return true
}

// IsFinite reports whether every component is finite.
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 */
func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

/**
 * @brief Creates and returns a 4-component vector with all components set to 0.0.
 */
func NewVec4Zero() Vec4 {
	return Vec4{0.0, 0.0, 0.0, 0.0}
}

/**
 * @brief Returns a new vec3 containing the x, y and z components of the
 * supplied vec4, essentially dropping the w component.
 */
func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Component returns the coordinate at axis index i (0=x, 1=y, 2=z, 3=w).
func (v Vec4) Component(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	case 3:
		return v.W
	}
	panic("math: vec4 component index out of range")
}

func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

func (v Vec4) MulScalar(scalar float64) Vec4 {
	return Vec4{v.X * scalar, v.Y * scalar, v.Z * scalar, v.W * scalar}
}

// Dot returns the dot product between two 4D vectors.
func (v Vec4) Dot(other Vec4) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v Vec4) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the Euclidean length of the vector.
func (v Vec4) Length() float64 {
	return ksqrt(v.LengthSquared())
}

// Normalize returns a unit-length copy of v. The zero vector is returned as is.
func (v Vec4) Normalize() Vec4 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vec4{v.X / length, v.Y / length, v.Z / length, v.W / length}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec4) Compare(other Vec4, tolerance float64) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}
	if kabs(v.Y-other.Y) > tolerance {
		return false
	}
	if kabs(v.Z-other.Z) > tolerance {
		return false
	}
	if kabs(v.W-other.W) > tolerance {
		return false
	}
	return true
}

// Distance returns the Euclidean distance between v and other.
func (v Vec4) Distance(other Vec4) float64 {
	return v.Sub(other).Length()
}

// IsFinite reports whether every component is finite.
func (v Vec4) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z) && IsFinite(v.W)
}

// ------------------------------------------
// Mat4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 */
func NewMat4Identity() Mat4 {
	mt := Mat4{}
	mt.Data[0] = 1.0
	mt.Data[5] = 1.0
	mt.Data[10] = 1.0
	mt.Data[15] = 1.0
	return mt
}

// At returns the element at row r, column c.
func (mt Mat4) At(r, c int) float64 {
	return mt.Data[r*4+c]
}

// Set stores value at row r, column c.
func (mt *Mat4) Set(r, c int, value float64) {
	mt.Data[r*4+c] = value
}

/**
 * @brief Returns the result of multiplying mt and other (mt·other).
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += mt.Data[r*4+k] * other.Data[k*4+c]
			}
			out.Data[r*4+c] = sum
		}
	}
	return out
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums).
 * For a rotation this is also its inverse.
 */
func (mt Mat4) Transpose() Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.Data[r*4+c] = mt.Data[c*4+r]
		}
	}
	return out
}

// MulVec4 returns mt·v.
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := &mt.Data
	return Vec4{
		d[0]*v.X + d[1]*v.Y + d[2]*v.Z + d[3]*v.W,
		d[4]*v.X + d[5]*v.Y + d[6]*v.Z + d[7]*v.W,
		d[8]*v.X + d[9]*v.Y + d[10]*v.Z + d[11]*v.W,
		d[12]*v.X + d[13]*v.Y + d[14]*v.Z + d[15]*v.W,
	}
}

// Row returns row r as a vector.
func (mt Mat4) Row(r int) Vec4 {
	return Vec4{mt.Data[r*4], mt.Data[r*4+1], mt.Data[r*4+2], mt.Data[r*4+3]}
}

// Column returns column c as a vector. For an orientation, column c is
// where local axis c points in world space.
func (mt Mat4) Column(c int) Vec4 {
	return Vec4{mt.Data[c], mt.Data[4+c], mt.Data[8+c], mt.Data[12+c]}
}

func (mt *Mat4) setRow(r int, v Vec4) {
	mt.Data[r*4] = v.X
	mt.Data[r*4+1] = v.Y
	mt.Data[r*4+2] = v.Z
	mt.Data[r*4+3] = v.W
}

/**
 * @brief Returns a vector pointing to the right relative to the provided
 * orientation (local +x).
 */
func (mt Mat4) Right() Vec4 {
	return mt.Column(0)
}

/**
 * @brief Returns a forward vector relative to the provided orientation (local +z).
 */
func (mt Mat4) Forward() Vec4 {
	return mt.Column(2)
}

/**
 * @brief Returns the ana vector relative to the provided orientation (local +w).
 */
func (mt Mat4) Ana() Vec4 {
	return mt.Column(3)
}

// Compare reports whether every element of mt is within tolerance of other.
func (mt Mat4) Compare(other Mat4, tolerance float64) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

// IsFinite reports whether every element is finite.
func (mt Mat4) IsFinite() bool {
	for _, f := range mt.Data {
		if !IsFinite(f) {
			return false
		}
	}
	return true
}
