package math

import (
	"fmt"

	"github.com/spaghettifunk/cgengine/engine/core"
)

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Creates a matrix from 16 column-major elements. Any other element
 * count is reported and an identity matrix is returned instead.
 *
 * @param elements The column-major elements.
 * @return A new matrix.
 */
func NewMat4FromSlice(elements []float32) Mat4 {
	if len(elements) != 16 {
		core.LogError("invalid number of matrix elements: %d", len(elements))
		return NewMat4Identity()
	}
	out_matrix := Mat4{}
	copy(out_matrix.Data[:], elements)
	return out_matrix
}

/**
 * @brief Returns the result of multiplying mt and other (mt × other), so
 * other is applied first when transforming a vector.
 *
 * @param other The right hand side matrix.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[i*4+row] * other.Data[col*4+i]
			}
			out_matrix.Data[col*4+row] = sum
		}
	}

	return out_matrix
}

/** @brief Multiplies a column vector by the matrix. */
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	m := mt.Data
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

func (mt Mat4) MulScalar(s float32) Mat4 {
	for i := range mt.Data {
		mt.Data[i] *= s
	}
	return mt
}

func (mt Mat4) Add(other Mat4) Mat4 {
	for i := range mt.Data {
		mt.Data[i] += other.Data[i]
	}
	return mt
}

func (mt Mat4) Sub(other Mat4) Mat4 {
	for i := range mt.Data {
		mt.Data[i] -= other.Data[i]
	}
	return mt
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 *
 * @return A transposed copy of of the provided matrix.
 */
func (mt Mat4) Transpose() Mat4 {
	out_matrix := Mat4{}
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out_matrix.Data[row*4+col] = mt.Data[col*4+row]
		}
	}
	return out_matrix
}

/**
 * @brief Creates and returns an inverse of the provided matrix using the
 * closed-form cofactor expansion.
 *
 * @return An inverted copy of the matrix, or core.ErrSingularMatrix when
 * the determinant is exactly zero.
 */
func (mt Mat4) Inverse() (Mat4, error) {
	m := mt.Data

	q := m[0]*m[5] - m[1]*m[4]
	r := m[0]*m[6] - m[2]*m[4]
	s := m[0]*m[7] - m[3]*m[4]
	t := m[1]*m[6] - m[2]*m[5]
	u := m[1]*m[7] - m[3]*m[5]
	v := m[2]*m[7] - m[3]*m[6]
	w := m[8]*m[13] - m[9]*m[12]
	x := m[8]*m[14] - m[10]*m[12]
	y := m[8]*m[15] - m[11]*m[12]
	z := m[9]*m[14] - m[10]*m[13]
	a := m[9]*m[15] - m[11]*m[13]
	b := m[10]*m[15] - m[11]*m[14]

	det := q*b - r*a + s*z + t*y - u*x + v*w
	if det == 0 {
		return NewMat4Identity(), fmt.Errorf("mat4 inverse: %w", core.ErrSingularMatrix)
	}
	d := 1.0 / det

	out_matrix := Mat4{}
	o := &out_matrix.Data

	o[0] = (m[5]*b - m[6]*a + m[7]*z) * d
	o[1] = (-m[1]*b + m[2]*a - m[3]*z) * d
	o[2] = (m[13]*v - m[14]*u + m[15]*t) * d
	o[3] = (-m[9]*v + m[10]*u - m[11]*t) * d
	o[4] = (-m[4]*b + m[6]*y - m[7]*x) * d
	o[5] = (m[0]*b - m[2]*y + m[3]*x) * d
	o[6] = (-m[12]*v + m[14]*s - m[15]*r) * d
	o[7] = (m[8]*v - m[10]*s + m[11]*r) * d
	o[8] = (m[4]*a - m[5]*y + m[7]*w) * d
	o[9] = (-m[0]*a + m[1]*y - m[3]*w) * d
	o[10] = (m[12]*u - m[13]*s + m[15]*q) * d
	o[11] = (-m[8]*u + m[9]*s - m[11]*q) * d
	o[12] = (-m[4]*z + m[5]*x - m[6]*w) * d
	o[13] = (m[0]*z - m[1]*x + m[2]*w) * d
	o[14] = (-m[12]*t + m[13]*r - m[14]*q) * d
	o[15] = (m[8]*t - m[9]*r + m[10]*q) * d

	return out_matrix, nil
}

/**
 * @brief Returns a copy holding only the upper 3x3 scale/rotation block;
 * the translation column is zeroed. Used as the normal matrix.
 */
func (mt Mat4) ScaleRotation() Mat4 {
	out_matrix := mt
	out_matrix.Data[3] = 0
	out_matrix.Data[7] = 0
	out_matrix.Data[11] = 0
	out_matrix.Data[12] = 0
	out_matrix.Data[13] = 0
	out_matrix.Data[14] = 0
	out_matrix.Data[15] = 1
	return out_matrix
}

/** @brief Returns the translation column. */
func (mt Mat4) Translation() Vec3 {
	return Vec3{mt.Data[12], mt.Data[13], mt.Data[14]}
}

// Equals reports exact elementwise equality.
func (mt Mat4) Equals(other Mat4) bool {
	return mt.Data == other.Data
}

func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := range mt.Data {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

func (mt Mat4) Clone() Mat4 {
	return mt
}

// Array returns the elements in column-major order as an upload buffer.
func (mt Mat4) Array() []float32 {
	out := make([]float32, 16)
	copy(out, mt.Data[:])
	return out
}

/**
 * @brief Creates and returns a translation matrix from the given position.
 *
 * @param position The position to be used to create the matrix.
 * @return A newly created translation matrix.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = position.X
	out_matrix.Data[13] = position.Y
	out_matrix.Data[14] = position.Z
	return out_matrix
}

/**
 * @brief Returns a scale matrix using the provided scale.
 *
 * @param scale The 3-component scale.
 * @return A scale matrix.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = scale.X
	out_matrix.Data[5] = scale.Y
	out_matrix.Data[10] = scale.Z
	return out_matrix
}

/**
 * @brief Creates and returns an orthographic projection matrix from the
 * six planes of the view box.
 *
 * @param left The left side of the view frustum.
 * @param right The right side of the view frustum.
 * @param bottom The bottom side of the view frustum.
 * @param top The top side of the view frustum.
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new orthographic projection matrix.
 */
func NewMat4OrthographicBounds(left, right, bottom, top, near_clip, far_clip float32) Mat4 {
	out_matrix := NewMat4Identity()

	lr := 1.0 / (left - right)
	bt := 1.0 / (bottom - top)
	nf := 1.0 / (near_clip - far_clip)

	out_matrix.Data[0] = -2.0 * lr
	out_matrix.Data[5] = -2.0 * bt
	out_matrix.Data[10] = 2.0 * nf

	out_matrix.Data[12] = (left + right) * lr
	out_matrix.Data[13] = (top + bottom) * bt
	out_matrix.Data[14] = (far_clip + near_clip) * nf
	return out_matrix
}

/**
 * @brief Creates a centered orthographic projection whose view box is
 * height units tall and height*aspect_ratio units wide.
 */
func NewMat4Orthographic(height, aspect_ratio, near_clip, far_clip float32) Mat4 {
	half_h := height * 0.5
	half_w := half_h * aspect_ratio
	return NewMat4OrthographicBounds(-half_w, half_w, -half_h, half_h, near_clip, far_clip)
}

/**
 * @brief Creates and returns a perspective matrix. Typically used to render 3d scenes.
 *
 * @param fov_radians The vertical field of view in radians.
 * @param aspect_ratio The aspect ratio.
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new perspective matrix.
 */
func NewMat4Perspective(fov_radians, aspect_ratio, near_clip, far_clip float32) Mat4 {
	half_tan_fov := ktan(fov_radians * 0.5)
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0 / (aspect_ratio * half_tan_fov)
	out_matrix.Data[5] = 1.0 / half_tan_fov
	out_matrix.Data[10] = -((far_clip + near_clip) / (far_clip - near_clip))
	out_matrix.Data[11] = -1.0
	out_matrix.Data[14] = -((2.0 * far_clip * near_clip) / (far_clip - near_clip))
	return out_matrix
}

/**
 * @brief Returns a forward vector relative to the provided matrix.
 *
 * @return A 3-component directional vector.
 */
func (mt Mat4) Forward() Vec3 {
	return Vec3{-mt.Data[8], -mt.Data[9], -mt.Data[10]}.Normalize()
}

/**
 * @brief Returns an up vector relative to the provided matrix.
 *
 * @return A 3-component directional vector.
 */
func (mt Mat4) Up() Vec3 {
	return Vec3{mt.Data[4], mt.Data[5], mt.Data[6]}.Normalize()
}

/**
 * @brief Returns a right vector relative to the provided matrix.
 *
 * @return A 3-component directional vector.
 */
func (mt Mat4) Right() Vec3 {
	return Vec3{mt.Data[0], mt.Data[1], mt.Data[2]}.Normalize()
}
