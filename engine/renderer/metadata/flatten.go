package metadata

import (
	"fmt"
	"strconv"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
)

// Struct is a nested uniform record: field name to value. Fields become
// `parent.field` names once flattened.
type Struct map[string]any

// Array is an ordered uniform sequence. Elements become `parent[i]` names.
type Array []any

// Int marks a number that must be uploaded through the integer path, such
// as a light count.
type Int int32

// Uniformer is implemented by types that know their own uniform encoding.
type Uniformer interface {
	Uniform() UniformValue
}

func (i Int) Uniform() UniformValue {
	return IntUniform(int32(i))
}

/**
 * @brief Converts a terminal value to its uniform encoding. Plain numbers
 * go through the float path; Int goes through the integer path.
 *
 * @param v The candidate value.
 * @return The encoded value and whether v is terminal.
 */
func ToUniform(v any) (UniformValue, bool) {
	switch t := v.(type) {
	case UniformValue:
		return t, true
	case Uniformer:
		return t.Uniform(), true
	case float32:
		return FloatUniform(t), true
	case float64:
		return FloatUniform(float32(t)), true
	case int:
		return FloatUniform(float32(t)), true
	case math.Vec2:
		return Vec2Uniform(t), true
	case math.Vec3:
		return Vec3Uniform(t), true
	case math.Vec4:
		return Vec4Uniform(t), true
	case math.Color:
		return ColorUniform(t), true
	case math.Mat4:
		return Mat4Uniform(t), true
	}
	return UniformValue{}, false
}

/**
 * @brief Flattens a nested uniform structure into GLSL uniform names.
 * Struct fields are joined with '.', sequence elements with '[i]', and
 * the root contributes no prefix, so
 * {uPointLight: [{pos: v}]} becomes uPointLight[0].pos.
 * A nil leaf declares the name without a value.
 *
 * @param v A Struct, Array, []Struct or a terminal value.
 * @return The flat name to value mapping.
 */
func Flatten(v any) (map[string]UniformValue, error) {
	out := make(map[string]UniformValue)
	if err := flatten("", v, out); err != nil {
		return nil, err
	}
	return out, nil
}

func flatten(path string, v any, out map[string]UniformValue) error {
	switch t := v.(type) {
	case Struct:
		return flattenStruct(path, t, out)
	case map[string]any:
		return flattenStruct(path, t, out)
	case Array:
		for i, e := range t {
			if err := flatten(indexName(path, i), e, out); err != nil {
				return err
			}
		}
		return nil
	case []any:
		return flatten(path, Array(t), out)
	case []Struct:
		for i, e := range t {
			if err := flattenStruct(indexName(path, i), e, out); err != nil {
				return err
			}
		}
		return nil
	case nil:
		if path == "" {
			return nil
		}
		out[path] = UniformValue{}
		return nil
	}

	u, ok := ToUniform(v)
	if !ok || path == "" {
		return fmt.Errorf("uniform %q of type %T: %w", path, v, core.ErrUnsupportedUniform)
	}
	out[path] = u
	return nil
}

func flattenStruct(path string, s map[string]any, out map[string]UniformValue) error {
	for name, field := range s {
		if err := flatten(fieldName(path, name), field, out); err != nil {
			return err
		}
	}
	return nil
}

func fieldName(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

func indexName(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

// Merge copies every entry of src over dst, returning dst. A nil dst is
// allocated.
func Merge(dst map[string]UniformValue, srcs ...map[string]UniformValue) map[string]UniformValue {
	if dst == nil {
		dst = make(map[string]UniformValue)
	}
	for _, src := range srcs {
		for k, v := range src {
			dst[k] = v
		}
	}
	return dst
}
