package resources

import (
	"path/filepath"

	"github.com/google/uuid"
)

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Files the asset manager ignores. */
	ResourceTypeNone ResourceType = iota
	/** @brief GLSL stage source. */
	ResourceTypeShader
	/** @brief Material definition (TOML), compiled into a shader config. */
	ResourceTypeMaterial
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeMaterial:
		return "material"
	}
	return "none"
}

// ResourceTypeFromPath classifies a file by its extension.
func ResourceTypeFromPath(path string) ResourceType {
	switch filepath.Ext(path) {
	case ".vert", ".frag", ".glsl":
		return ResourceTypeShader
	case ".toml":
		return ResourceTypeMaterial
	default:
		return ResourceTypeNone
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief Stable identity of the file across reloads. */
	ID uuid.UUID
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The type of the resource. */
	Type ResourceType
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}
