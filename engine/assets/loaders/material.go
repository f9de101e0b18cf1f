package loaders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
	"github.com/spaghettifunk/cgengine/engine/resources"
	"github.com/spaghettifunk/cgengine/engine/shaders"
)

// BuiltinPrefix selects one of the sources shipped in package shaders
// instead of a file, e.g. "builtin:phong".
const BuiltinPrefix = "builtin:"

var builtins = map[string]string{
	"basic": shaders.BasicVertex,
	"flat":  shaders.FlatFragment,
	"phong": shaders.PhongFragment,
}

type materialFile struct {
	Name     string        `toml:"name"`
	Vertex   string        `toml:"vertex"`
	Fragment string        `toml:"fragment"`
	BRDF     string        `toml:"brdf"`
	Uniforms []uniformFile `toml:"uniforms"`
}

type uniformFile struct {
	Name   string    `toml:"name"`
	Type   string    `toml:"type"`
	Values []float32 `toml:"values"`
}

/**
 * @brief The result of loading a material file.
 */
type MaterialData struct {
	/** @brief The resolved program sources and uniform values. */
	Config metadata.ShaderConfig
	/** @brief Shader files the material reads; a change to any of them invalidates the material. */
	Dependencies []string
}

type MaterialLoader struct{}

func (ml *MaterialLoader) Load(path string) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	md, err := parseMaterial(path, data)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", path, err)
	}
	return &resources.Resource{
		Name:     md.Config.Name,
		FullPath: path,
		Type:     resources.ResourceTypeMaterial,
		DataSize: uint64(len(data)),
		Data:     md,
	}, nil
}

func (ml *MaterialLoader) Unload(res *resources.Resource) error {
	res.Data = nil
	return nil
}

func parseMaterial(path string, data []byte) (*MaterialData, error) {
	var mf materialFile
	if err := toml.Unmarshal(data, &mf); err != nil {
		return nil, err
	}
	if mf.Name == "" {
		mf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if mf.Vertex == "" {
		return nil, fmt.Errorf("vertex source is required")
	}
	if mf.Fragment == "" {
		return nil, fmt.Errorf("fragment source is required")
	}

	md := &MaterialData{Config: metadata.ShaderConfig{Name: mf.Name}}
	dir := filepath.Dir(path)

	vs, dep, err := resolveSource(dir, mf.Vertex)
	if err != nil {
		return nil, fmt.Errorf("vertex: %w", err)
	}
	md.Config.VertexSource = vs
	if dep != "" {
		md.Dependencies = append(md.Dependencies, dep)
	}

	if mf.Fragment == BuiltinPrefix+"physical" {
		brdf := shaders.Standard
		if mf.BRDF != "" {
			var ok bool
			if brdf, ok = shaders.Preset(mf.BRDF); !ok {
				return nil, fmt.Errorf("unknown brdf preset %q", mf.BRDF)
			}
		}
		md.Config.FragmentSource = shaders.PhysicalFragment(brdf)
	} else {
		if mf.BRDF != "" {
			core.LogWarn("material %s: brdf %q is ignored by fragment %s", mf.Name, mf.BRDF, mf.Fragment)
		}
		fs, dep, err := resolveSource(dir, mf.Fragment)
		if err != nil {
			return nil, fmt.Errorf("fragment: %w", err)
		}
		md.Config.FragmentSource = fs
		if dep != "" {
			md.Dependencies = append(md.Dependencies, dep)
		}
	}

	for _, u := range mf.Uniforms {
		typ, err := metadata.ShaderUniformTypeFromString(u.Type)
		if err != nil {
			return nil, fmt.Errorf("uniform %q: %s: %w", u.Name, err, core.ErrUnsupportedUniform)
		}
		if u.Name == "" {
			return nil, fmt.Errorf("uniform of type %s has no name", typ)
		}
		md.Config.Uniforms = append(md.Config.Uniforms, metadata.ShaderUniformConfig{
			Name:              u.Name,
			ShaderUniformType: typ,
			Values:            u.Values,
		})
	}
	return md, nil
}

// resolveSource returns the GLSL for ref and, when ref is a file, its
// cleaned path.
func resolveSource(dir, ref string) (string, string, error) {
	if name, ok := strings.CutPrefix(ref, BuiltinPrefix); ok {
		src, found := builtins[name]
		if !found {
			return "", "", fmt.Errorf("unknown builtin shader %q", name)
		}
		return src, "", nil
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	path = filepath.Clean(path)
	src, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(src), path, nil
}
