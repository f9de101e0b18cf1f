package math

import (
	"github.com/spaghettifunk/cgengine/engine/core"
)

func checkDivisor(kind string, components ...float32) {
	for _, c := range components {
		if c == 0 {
			core.LogWarn("%s division by zero", kind)
			return
		}
	}
}

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @return A new 2-element vector.
 */
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

/** @brief Creates and returns a 2-component vector with all components set to 0.0f. */
func NewVec2Zero() Vec2 {
	return Vec2{}
}

/** @brief Creates and returns a 2-component vector with all components set to 1.0f. */
func NewVec2One() Vec2 {
	return Vec2{1.0, 1.0}
}

// Set overwrites the components in place.
func (v *Vec2) Set(x, y float32) {
	v.X, v.Y = x, y
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

func (v Vec2) Div(other Vec2) Vec2 {
	checkDivisor("Vec2", other.X, other.Y)
	return Vec2{v.X / other.X, v.Y / other.Y}
}

func (v Vec2) AddScalar(s float32) Vec2 {
	return Vec2{v.X + s, v.Y + s}
}

func (v Vec2) SubScalar(s float32) Vec2 {
	return Vec2{v.X - s, v.Y - s}
}

func (v Vec2) MulScalar(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) DivScalar(s float32) Vec2 {
	checkDivisor("Vec2", s)
	return Vec2{v.X / s, v.Y / s}
}

/** @brief Returns the squared length of the provided vector. */
func (v Vec2) Length2() float32 {
	return v.X*v.X + v.Y*v.Y
}

/** @brief Returns the length of the provided vector. */
func (v Vec2) Length() float32 {
	return ksqrt(v.Length2())
}

func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

/**
 * @brief Returns a unit-length copy of the vector. A zero-length vector is
 * reported and yields NaN components.
 */
func (v Vec2) Normalize() Vec2 {
	return v.DivScalar(v.Length())
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param other The vector to compare with.
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec2) Compare(other Vec2, tolerance float32) bool {
	return kabs(v.X-other.X) <= tolerance && kabs(v.Y-other.Y) <= tolerance
}

// Equals reports exact componentwise equality.
func (v Vec2) Equals(other Vec2) bool {
	return v == other
}

func (v Vec2) Distance(other Vec2) float32 {
	return v.Sub(other).Length()
}

func (v Vec2) Clone() Vec2 {
	return v
}

// Array returns the components as an upload buffer.
func (v Vec2) Array() []float32 {
	return []float32{v.X, v.Y}
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

/** @brief Creates and returns a 3-component vector with all components set to 0.0f. */
func NewVec3Zero() Vec3 {
	return Vec3{}
}

/** @brief Creates and returns a 3-component vector with all components set to 1.0f. */
func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

/** @brief Creates and returns a 3-component vector pointing up (0, 1, 0). */
func NewVec3Up() Vec3 {
	return Vec3{0.0, 1.0, 0.0}
}

/** @brief Creates and returns a 3-component vector pointing forward (0, 0, -1). */
func NewVec3Forward() Vec3 {
	return Vec3{0.0, 0.0, -1.0}
}

/**
 * @brief Returns a new vec3 containing the x, y and z components of the
 * supplied vec4, essentially dropping the w component.
 */
func NewVec3FromVec4(vector Vec4) Vec3 {
	return Vec3{vector.X, vector.Y, vector.Z}
}

/** @brief Returns a new Vec4 using vector as the x, y and z components and w for w. */
func (v Vec3) ToVec4(w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// Set overwrites the components in place.
func (v *Vec3) Set(x, y, z float32) {
	v.X, v.Y, v.Z = x, y, z
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{
		v.X * other.X,
		v.Y * other.Y,
		v.Z * other.Z}
}

func (v Vec3) Div(other Vec3) Vec3 {
	checkDivisor("Vec3", other.X, other.Y, other.Z)
	return Vec3{
		v.X / other.X,
		v.Y / other.Y,
		v.Z / other.Z}
}

func (v Vec3) AddScalar(s float32) Vec3 {
	return Vec3{v.X + s, v.Y + s, v.Z + s}
}

func (v Vec3) SubScalar(s float32) Vec3 {
	return Vec3{v.X - s, v.Y - s, v.Z - s}
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 *
 * @param scalar The scalar value.
 * @return A copy of the resulting vector.
 */
func (v Vec3) MulScalar(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) DivScalar(s float32) Vec3 {
	checkDivisor("Vec3", s)
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

/** @brief Returns the squared length of the provided vector. */
func (v Vec3) Length2() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

/** @brief Returns the length of the provided vector. */
func (v Vec3) Length() float32 {
	return ksqrt(v.Length2())
}

/**
 * @brief Returns the dot product between the provided vectors. Typically used
 * to calculate the difference in direction.
 */
func (v Vec3) Dot(other Vec3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

/**
 * @brief Calculates and returns the cross product of the supplied vectors.
 * The cross product is a new vector which is orthoganal to both provided vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X}
}

/**
 * @brief Returns a unit-length copy of the vector. A zero-length vector is
 * reported and yields NaN components.
 */
func (v Vec3) Normalize() Vec3 {
	return v.DivScalar(v.Length())
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param other The vector to compare with.
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
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

// Equals reports exact componentwise equality.
func (v Vec3) Equals(other Vec3) bool {
	return v == other
}

/** @brief Returns the distance between v and other. */
func (v Vec3) Distance(other Vec3) float32 {
	return v.Sub(other).Length()
}

func (v Vec3) Clone() Vec3 {
	return v
}

// Array returns the components as an upload buffer.
func (v Vec3) Array() []float32 {
	return []float32{v.X, v.Y, v.Z}
}

/**
 * @brief Transform v by m. NOTE: It is assumed by this function that the
 * vector v is a point, not a direction, and is calculated as if a w component
 * with a value of 1.0f is there.
 */
func (v Vec3) Transform(m Mat4) Vec3 {
	return NewVec3FromVec4(m.MulVec4(v.ToVec4(1.0)))
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @param w The w value.
 * @return A new 4-element vector.
 */
func NewVec4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

/** @brief Creates and returns a 4-component vector with all components set to 0.0f. */
func NewVec4Zero() Vec4 {
	return Vec4{}
}

/** @brief Creates and returns a 4-component vector with all components set to 1.0f. */
func NewVec4One() Vec4 {
	return Vec4{1.0, 1.0, 1.0, 1.0}
}

/** @brief Returns a new vec3 containing the x, y and z components of the vec4. */
func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Set overwrites the components in place.
func (v *Vec4) Set(x, y, z, w float32) {
	v.X, v.Y, v.Z, v.W = x, y, z, w
}

func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{v.X * other.X, v.Y * other.Y, v.Z * other.Z, v.W * other.W}
}

func (v Vec4) Div(other Vec4) Vec4 {
	checkDivisor("Vec4", other.X, other.Y, other.Z, other.W)
	return Vec4{v.X / other.X, v.Y / other.Y, v.Z / other.Z, v.W / other.W}
}

func (v Vec4) AddScalar(s float32) Vec4 {
	return Vec4{v.X + s, v.Y + s, v.Z + s, v.W + s}
}

func (v Vec4) SubScalar(s float32) Vec4 {
	return Vec4{v.X - s, v.Y - s, v.Z - s, v.W - s}
}

func (v Vec4) MulScalar(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

func (v Vec4) DivScalar(s float32) Vec4 {
	checkDivisor("Vec4", s)
	return Vec4{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

/** @brief Returns the squared length of the provided vector. */
func (v Vec4) Length2() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

/** @brief Returns the length of the provided vector. */
func (v Vec4) Length() float32 {
	return ksqrt(v.Length2())
}

func (v Vec4) Dot(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v Vec4) Normalize() Vec4 {
	return v.DivScalar(v.Length())
}

func (v Vec4) Compare(other Vec4, tolerance float32) bool {
	return kabs(v.X-other.X) <= tolerance &&
		kabs(v.Y-other.Y) <= tolerance &&
		kabs(v.Z-other.Z) <= tolerance &&
		kabs(v.W-other.W) <= tolerance
}

// Equals reports exact componentwise equality.
func (v Vec4) Equals(other Vec4) bool {
	return v == other
}

func (v Vec4) Distance(other Vec4) float32 {
	return v.Sub(other).Length()
}

func (v Vec4) Clone() Vec4 {
	return v
}

// Array returns the components as an upload buffer.
func (v Vec4) Array() []float32 {
	return []float32{v.X, v.Y, v.Z, v.W}
}
