package metadata

import (
	"github.com/spaghettifunk/cgengine/engine/math"
)

/**
 * @brief A backend uniform location. nil means the linked program does not
 * use the name; uploads to a nil location are skipped.
 */
type UniformLocation any

/** @brief The typed upload calls a graphics context exposes. */
type UniformUploader interface {
	Uniform1f(location UniformLocation, v float32)
	Uniform1i(location UniformLocation, v int32)
	Uniform2fv(location UniformLocation, v []float32)
	Uniform3fv(location UniformLocation, v []float32)
	Uniform4fv(location UniformLocation, v []float32)
	UniformMatrix4fv(location UniformLocation, transpose bool, v []float32)
}

/**
 * @brief A single terminal uniform value. Type selects which of the payload
 * fields is meaningful and which upload call is used.
 */
type UniformValue struct {
	/** @brief The kind of value, also the upload path. */
	Type ShaderUniformType
	/** @brief Payload for int uniforms. */
	Int int32
	/** @brief Payload for float and vector uniforms, one entry per component. */
	Float [4]float32
	/** @brief Payload for matrix uniforms, column-major. */
	Matrix math.Mat4
}

func FloatUniform(v float32) UniformValue {
	return UniformValue{Type: ShaderUniformTypeFloat32, Float: [4]float32{v}}
}

func IntUniform(v int32) UniformValue {
	return UniformValue{Type: ShaderUniformTypeInt32, Int: v}
}

func Vec2Uniform(v math.Vec2) UniformValue {
	return UniformValue{Type: ShaderUniformTypeFloat32_2, Float: [4]float32{v.X, v.Y}}
}

func Vec3Uniform(v math.Vec3) UniformValue {
	return UniformValue{Type: ShaderUniformTypeFloat32_3, Float: [4]float32{v.X, v.Y, v.Z}}
}

func Vec4Uniform(v math.Vec4) UniformValue {
	return UniformValue{Type: ShaderUniformTypeFloat32_4, Float: [4]float32{v.X, v.Y, v.Z, v.W}}
}

// ColorUniform uploads a colour as a vec4.
func ColorUniform(c math.Color) UniformValue {
	return Vec4Uniform(c.ToVec4())
}

func Mat4Uniform(m math.Mat4) UniformValue {
	return UniformValue{Type: ShaderUniformTypeMatrix4, Matrix: m}
}

// UniformFromConfig builds a value from a declared type and its raw
// components, as read from a material file.
func UniformFromConfig(cfg ShaderUniformConfig) (UniformValue, bool) {
	want := map[ShaderUniformType]int{
		ShaderUniformTypeFloat32:   1,
		ShaderUniformTypeFloat32_2: 2,
		ShaderUniformTypeFloat32_3: 3,
		ShaderUniformTypeFloat32_4: 4,
		ShaderUniformTypeInt32:     1,
		ShaderUniformTypeMatrix4:   16,
	}[cfg.ShaderUniformType]
	if want == 0 || len(cfg.Values) != want {
		return UniformValue{}, false
	}

	v := cfg.Values
	switch cfg.ShaderUniformType {
	case ShaderUniformTypeInt32:
		return IntUniform(int32(v[0])), true
	case ShaderUniformTypeMatrix4:
		return Mat4Uniform(math.NewMat4FromSlice(v)), true
	}
	u := UniformValue{Type: cfg.ShaderUniformType}
	copy(u.Float[:], v)
	return u, true
}

// IsSet reports whether the value carries data to upload.
func (u UniformValue) IsSet() bool {
	return u.Type != ShaderUniformTypeNone
}

func (u UniformValue) Vec3() math.Vec3 {
	return math.NewVec3(u.Float[0], u.Float[1], u.Float[2])
}

func (u UniformValue) Vec4() math.Vec4 {
	return math.NewVec4(u.Float[0], u.Float[1], u.Float[2], u.Float[3])
}

// Array returns the flat buffer handed to the upload call.
func (u UniformValue) Array() []float32 {
	switch u.Type {
	case ShaderUniformTypeFloat32:
		return u.Float[:1]
	case ShaderUniformTypeFloat32_2:
		return u.Float[:2]
	case ShaderUniformTypeFloat32_3:
		return u.Float[:3]
	case ShaderUniformTypeFloat32_4:
		return u.Float[:4]
	case ShaderUniformTypeInt32:
		return []float32{float32(u.Int)}
	case ShaderUniformTypeMatrix4:
		return u.Matrix.Array()
	}
	return nil
}

/**
 * @brief Uploads the value through the call matching its type. Unset values
 * and nil locations are skipped.
 */
func (u UniformValue) Upload(dst UniformUploader, location UniformLocation) {
	if location == nil {
		return
	}
	switch u.Type {
	case ShaderUniformTypeNone:
	case ShaderUniformTypeFloat32:
		dst.Uniform1f(location, u.Float[0])
	case ShaderUniformTypeFloat32_2:
		dst.Uniform2fv(location, u.Float[:2])
	case ShaderUniformTypeFloat32_3:
		dst.Uniform3fv(location, u.Float[:3])
	case ShaderUniformTypeFloat32_4:
		dst.Uniform4fv(location, u.Float[:4])
	case ShaderUniformTypeInt32:
		dst.Uniform1i(location, u.Int)
	case ShaderUniformTypeMatrix4:
		dst.UniformMatrix4fv(location, false, u.Matrix.Array())
	}
}
