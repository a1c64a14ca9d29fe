package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 represents a 4D vector. Used both for points (vertices, observer
// position) and for directions in 4-space.
type Vec4 struct {
	X, Y, Z, W float64
}

/**
 * @brief a 4x4 matrix acting on Vec4. Only ever holds rotations
 * (orthonormal matrices), never affine transforms.
 */
type Mat4 struct {
	/** @brief The matrix elements, row-major: Data[row*4+col] */
	Data [16]float64
}

/**
 * @brief The accumulated orientation of an object in 4-space.
 * Increments are folded in with Rotate so the matrix is periodically
 * re-orthonormalized. NOTE: Do not edit Matrix directly.
 */
type Orientation struct {
	/** @brief The current rotation matrix. */
	Matrix Mat4
	/** @brief Compositions since the last re-orthonormalization. */
	sinceNormalize int
	/** @brief Re-orthonormalize after this many compositions. 0 uses DefaultRenormalizeEvery. */
	RenormalizeEvery int
	/** @brief Re-orthonormalize early when Deviation exceeds this. 0 uses DefaultDriftTolerance. */
	DriftTolerance float64
}
