package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief An RGBA colour. Alpha defaults to 1 when built with NewColorRGB. */
type Color struct {
	R, G, B, A float32
}

/**
 * @brief A quaternion, used to represent rotational orientation.
 * X, Y and Z hold the vector part, W the scalar part.
 */
type Quaternion Vec4

/** @brief a 4x4 matrix, stored column by column. */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the transform of an object in the world.
 * The composed matrix is cached and rebuilt lazily: it is valid as long
 * as position, rotation and scale equal the snapshot taken the last time
 * the matrix was built. Fields may be edited directly; the change is picked
 * up by comparison on the next GetMatrix call.
 */
type Transform struct {
	/** @brief The position relative to the parent. */
	Position Vec3
	/** @brief The rotation relative to the parent. */
	Rotation Quaternion
	/** @brief The scale relative to the parent. */
	Scale Vec3
	/**
	 * @brief Set by the mutator helpers and on creation, forcing the
	 * next GetMatrix call to rebuild regardless of the snapshot.
	 */
	IsDirty bool

	prevPosition Vec3
	prevRotation Quaternion
	prevScale    Vec3
	matrix       Mat4
}
