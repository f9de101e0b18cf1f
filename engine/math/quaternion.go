package math

import (
	"github.com/spaghettifunk/cgengine/engine/core"
)

/**
 * @brief Creates an identity quaternion.
 *
 * @return An identity quaternion.
 */
func NewQuatIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1.0}
}

/**
 * @brief Creates a quaternion rotating angle radians around axis. The axis
 * is normalized first.
 *
 * @param angle The angle of rotation in radians.
 * @param axis The axis of rotation.
 * @return A new quaternion.
 */
func NewQuatAngleAxis(angle float32, axis Vec3) Quaternion {
	half_angle := 0.5 * angle
	v := axis.Normalize().MulScalar(ksin(half_angle))
	return Quaternion{v.X, v.Y, v.Z, kcos(half_angle)}
}

/**
 * @brief Creates a quaternion from intrinsic X, then Y, then Z rotations
 * (q = qx * qy * qz). Zero angles yield the identity.
 *
 * @param angles The rotation around each axis, in radians.
 * @return A new quaternion.
 */
func NewQuatEuler(angles Vec3) Quaternion {
	cx, sx := kcos(angles.X*0.5), ksin(angles.X*0.5)
	cy, sy := kcos(angles.Y*0.5), ksin(angles.Y*0.5)
	cz, sz := kcos(angles.Z*0.5), ksin(angles.Z*0.5)

	return Quaternion{
		X: sx*cy*cz + cx*sy*sz,
		Y: cx*sy*cz - sx*cy*sz,
		Z: cx*cy*sz + sx*sy*cz,
		W: cx*cy*cz - sx*sy*sz,
	}
}

/**
 * @brief Extracts the rotation of the upper 3x3 block of mat. The largest of
 * the four squared-component candidates is used as pivot. The candidates
 * always sum to 4, so for a finite matrix the pivot is at least 1 and the
 * identity fallback for an all-negative set cannot be reached; it only
 * guards against that invariant breaking.
 *
 * @param mat A matrix holding a pure rotation in its upper 3x3 block.
 * @return A normalized quaternion.
 */
func NewQuatFromMat4(mat Mat4) Quaternion {
	m00, m10, m20 := mat.Data[0], mat.Data[1], mat.Data[2]
	m01, m11, m21 := mat.Data[4], mat.Data[5], mat.Data[6]
	m02, m12, m22 := mat.Data[8], mat.Data[9], mat.Data[10]

	element := [4]float32{
		m00 - m11 - m22 + 1,
		-m00 + m11 - m22 + 1,
		-m00 - m11 + m22 + 1,
		m00 + m11 + m22 + 1,
	}

	max_index := 0
	for i := 1; i < 4; i++ {
		if element[max_index] < element[i] {
			max_index = i
		}
	}

	if element[max_index] < 0 {
		core.LogError("cannot extract a rotation from matrix %v", mat.Data)
		return NewQuatIdentity()
	}

	q := [4]float32{}
	v := ksqrt(element[max_index])*0.5 + K_QUAT_EXTRACT_BIAS
	q[max_index] = v
	v = 0.25 / v

	switch max_index {
	case 0:
		q[1] = (m10 + m01) * v
		q[2] = (m02 + m20) * v
		q[3] = (m21 - m12) * v
	case 1:
		q[0] = (m10 + m01) * v
		q[2] = (m21 + m12) * v
		q[3] = (m02 - m20) * v
	case 2:
		q[0] = (m02 + m20) * v
		q[1] = (m21 + m12) * v
		q[3] = (m10 - m01) * v
	case 3:
		q[0] = (m21 - m12) * v
		q[1] = (m02 - m20) * v
		q[2] = (m10 - m01) * v
	}

	return Quaternion{q[0], q[1], q[2], q[3]}.Normalize()
}

/**
 * @brief Returns the normal of the provided quaternion.
 *
 * @return The normal of the provided quaternion.
 */
func (q Quaternion) Normal() float32 {
	return ksqrt(q.Dot(q))
}

/**
 * @brief Returns a normalized copy of the provided quaternion.
 *
 * @return A normalized copy of the provided quaternion.
 */
func (q Quaternion) Normalize() Quaternion {
	normal := q.Normal()
	checkDivisor("Quaternion", normal)
	return Quaternion{
		q.X / normal,
		q.Y / normal,
		q.Z / normal,
		q.W / normal}
}

/**
 * @brief Returns the conjugate of the provided quaternion. That is,
 * The x, y and z elements are negated, but the w element is untouched.
 */
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

/**
 * @brief Multiplies the provided quaternions (Hamilton product). The
 * result applies other first, then q.
 *
 * @param other The second quaternion.
 * @return The multiplied quaternion.
 */
func (q Quaternion) Mul(other Quaternion) Quaternion {
	out_quaternion := Quaternion{}

	out_quaternion.X = q.X*other.W +
		q.Y*other.Z -
		q.Z*other.Y +
		q.W*other.X

	out_quaternion.Y = -q.X*other.Z +
		q.Y*other.W +
		q.Z*other.X +
		q.W*other.Y

	out_quaternion.Z = q.X*other.Y -
		q.Y*other.X +
		q.Z*other.W +
		q.W*other.Z

	out_quaternion.W = -q.X*other.X -
		q.Y*other.Y -
		q.Z*other.Z +
		q.W*other.W

	return out_quaternion
}

/** @brief Rotates v by the rotation matrix of q. */
func (q Quaternion) MulVec4(v Vec4) Vec4 {
	return q.ToMat4().MulVec4(v)
}

/** @brief Calculates the dot product of the provided quaternions. */
func (q Quaternion) Dot(other Quaternion) float32 {
	return q.X*other.X +
		q.Y*other.Y +
		q.Z*other.Z +
		q.W*other.W
}

/**
 * @brief Creates a rotation matrix from the given quaternion. The input is
 * used as is; a non-unit quaternion also scales.
 *
 * @return A rotation matrix.
 */
func (q Quaternion) ToMat4() Mat4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W

	out_matrix := NewMat4Identity()
	o := &out_matrix.Data

	o[0] = x*x - y*y - z*z + w*w
	o[1] = 2 * (x*y + z*w)
	o[2] = 2 * (x*z - y*w)

	o[4] = 2 * (x*y - z*w)
	o[5] = y*y - x*x - z*z + w*w
	o[6] = 2 * (y*z + x*w)

	o[8] = 2 * (x*z + y*w)
	o[9] = 2 * (y*z - x*w)
	o[10] = z*z + w*w - x*x - y*y

	return out_matrix
}

// Equals reports exact componentwise equality.
func (q Quaternion) Equals(other Quaternion) bool {
	return q == other
}

func (q Quaternion) Compare(other Quaternion, tolerance float32) bool {
	return Vec4(q).Compare(Vec4(other), tolerance)
}

func (q Quaternion) Clone() Quaternion {
	return q
}

/**
 * @brief Calculates spherical linear interpolation of a given percentage
 * between two quaternions.
 *
 * @param other The target quaternion.
 * @param percentage The percentage of interpolation, typically a value from 0.0f-1.0f.
 * @return An interpolated quaternion.
 */
func (q Quaternion) Slerp(other Quaternion, percentage float32) Quaternion {
	v0 := q.Normalize()
	v1 := other.Normalize()

	dot := v0.Dot(v1)

	// v1 and -v1 are the same rotation; flip to take the shorter arc.
	if dot < 0.0 {
		v1 = Quaternion{-v1.X, -v1.Y, -v1.Z, -v1.W}
		dot = -dot
	}

	const dotThreshold = float32(0.9995)
	if dot > dotThreshold {
		qt := Quaternion{
			v0.X + ((v1.X - v0.X) * percentage),
			v0.Y + ((v1.Y - v0.Y) * percentage),
			v0.Z + ((v1.Z - v0.Z) * percentage),
			v0.W + ((v1.W - v0.W) * percentage)}

		return qt.Normalize()
	}

	theta_0 := kacos(dot)
	theta := theta_0 * percentage
	sin_theta := ksin(theta)
	sin_theta_0 := ksin(theta_0)

	s0 := kcos(theta) - dot*sin_theta/sin_theta_0
	s1 := sin_theta / sin_theta_0

	return Quaternion{
		(v0.X * s0) + (v1.X * s1),
		(v0.Y * s0) + (v1.Y * s1),
		(v0.Z * s0) + (v1.Z * s1),
		(v0.W * s0) + (v1.W * s1)}
}
