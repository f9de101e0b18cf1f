package metadata

import "fmt"

/** @brief The programmable stages a material supplies source for. */
type ShaderStage uint32

const (
	ShaderStageVertex   ShaderStage = 0x0000001
	ShaderStageFragment ShaderStage = 0x0000002
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return fmt.Sprintf("ShaderStage(%d)", uint32(s))
}

/** @brief Available attribute types. */
type ShaderAttributeType uint

const (
	ShaderAttribTypeFloat32   ShaderAttributeType = 0
	ShaderAttribTypeFloat32_2 ShaderAttributeType = 1
	ShaderAttribTypeFloat32_3 ShaderAttributeType = 2
	ShaderAttribTypeFloat32_4 ShaderAttributeType = 3
)

// Components returns how many floats one vertex contributes.
func (t ShaderAttributeType) Components() int32 {
	return int32(t) + 1
}

/**
 * @brief Available uniform types. The zero value marks a name that is
 * declared but has no value yet; it is resolved but never uploaded.
 */
type ShaderUniformType uint

const (
	ShaderUniformTypeNone      ShaderUniformType = 0
	ShaderUniformTypeFloat32   ShaderUniformType = 1
	ShaderUniformTypeFloat32_2 ShaderUniformType = 2
	ShaderUniformTypeFloat32_3 ShaderUniformType = 3
	ShaderUniformTypeFloat32_4 ShaderUniformType = 4
	ShaderUniformTypeInt32     ShaderUniformType = 5
	ShaderUniformTypeMatrix4   ShaderUniformType = 6
)

// ShaderUniformTypeFromString maps a GLSL type keyword to a uniform type.
func ShaderUniformTypeFromString(s string) (ShaderUniformType, error) {
	switch s {
	case "float":
		return ShaderUniformTypeFloat32, nil
	case "vec2":
		return ShaderUniformTypeFloat32_2, nil
	case "vec3":
		return ShaderUniformTypeFloat32_3, nil
	case "vec4", "color":
		return ShaderUniformTypeFloat32_4, nil
	case "int", "bool":
		return ShaderUniformTypeInt32, nil
	case "mat4":
		return ShaderUniformTypeMatrix4, nil
	}
	return ShaderUniformTypeNone, fmt.Errorf("string %s is not a valid ShaderUniformType", s)
}

func (t ShaderUniformType) String() string {
	switch t {
	case ShaderUniformTypeNone:
		return "none"
	case ShaderUniformTypeFloat32:
		return "float"
	case ShaderUniformTypeFloat32_2:
		return "vec2"
	case ShaderUniformTypeFloat32_3:
		return "vec3"
	case ShaderUniformTypeFloat32_4:
		return "vec4"
	case ShaderUniformTypeInt32:
		return "int"
	case ShaderUniformTypeMatrix4:
		return "mat4"
	}
	return fmt.Sprintf("ShaderUniformType(%d)", uint(t))
}

/** @brief Configuration for a vertex attribute. */
type ShaderAttributeConfig struct {
	/** @brief The name of the attribute in the vertex shader. */
	Name string
	/** @brief The type of the attribute. */
	ShaderAttributeType ShaderAttributeType
	/** @brief Whether the data is normalized when fetched. */
	Normalized bool
}

/**
 * @brief The attributes every geometry binds, in binding order. Tangent and
 * bitangent are bound only when the geometry carries them.
 */
var (
	AttributeVertex    = ShaderAttributeConfig{Name: "vertex", ShaderAttributeType: ShaderAttribTypeFloat32_3}
	AttributeNormal    = ShaderAttributeConfig{Name: "normal", ShaderAttributeType: ShaderAttribTypeFloat32_3, Normalized: true}
	AttributeUV        = ShaderAttributeConfig{Name: "uv", ShaderAttributeType: ShaderAttribTypeFloat32_2}
	AttributeTangent   = ShaderAttributeConfig{Name: "tangent", ShaderAttributeType: ShaderAttribTypeFloat32_3}
	AttributeBitangent = ShaderAttributeConfig{Name: "bitangent", ShaderAttributeType: ShaderAttribTypeFloat32_3}
)

/** @brief Configuration for a uniform declared by a material file. */
type ShaderUniformConfig struct {
	/** @brief The name of the uniform. */
	Name string
	/** @brief The type of the uniform. */
	ShaderUniformType ShaderUniformType
	/** @brief The raw value, one float per component. */
	Values []float32
}

/**
 * @brief Configuration for a shader program. Typically created by the
 * material loader from a .toml material file.
 */
type ShaderConfig struct {
	/** @brief The name of the shader to be created. */
	Name string
	/** @brief The vertex stage source. */
	VertexSource string
	/** @brief The fragment stage source. */
	FragmentSource string
	/** @brief The collection of uniforms with their initial values. */
	Uniforms []ShaderUniformConfig
}
