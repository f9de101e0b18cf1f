package loaders

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/cgengine/engine/resources"
)

type ShaderLoader struct{}

// Load reads a GLSL stage source; Data holds the source string.
func (sl *ShaderLoader) Load(path string) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &resources.Resource{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FullPath: path,
		Type:     resources.ResourceTypeShader,
		DataSize: uint64(len(data)),
		Data:     string(data),
	}, nil
}

func (sl *ShaderLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	return nil
}
