package resources

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/**
 * @brief A shader program plus the named uniform values it is drawn with.
 * The program and resolved locations are owned by the material and
 * released by Destroy.
 */
type Material struct {
	/** @brief The material id. */
	ID uuid.UUID
	/** @brief The material name. */
	Name string

	VertexSource   string
	FragmentSource string
	/** @brief Values uploaded on every draw unless the frame overrides them. */
	Uniforms map[string]metadata.UniformValue

	program   renderer.Program
	locations map[string]metadata.UniformLocation
	// names the scene declared at Initialize; dropped by Destroy
	defaults map[string]metadata.UniformValue
	// names of every resolved uniform, sorted so uploads are deterministic
	names []string
}

func NewMaterial(name, vertexSource, fragmentSource string, uniforms map[string]metadata.UniformValue) *Material {
	m := &Material{
		ID:             uuid.New(),
		Name:           name,
		VertexSource:   vertexSource,
		FragmentSource: fragmentSource,
		Uniforms:       make(map[string]metadata.UniformValue, len(uniforms)),
	}
	if m.Name == "" {
		m.Name = m.ID.String()
	}
	for k, v := range uniforms {
		m.Uniforms[k] = v
	}
	return m
}

/**
 * @brief Builds a material from a shader config, typically one read from a
 * material file.
 */
func NewMaterialFromConfig(config metadata.ShaderConfig) (*Material, error) {
	uniforms, err := uniformsFromConfig(config)
	if err != nil {
		return nil, err
	}
	return NewMaterial(config.Name, config.VertexSource, config.FragmentSource, uniforms), nil
}

func uniformsFromConfig(config metadata.ShaderConfig) (map[string]metadata.UniformValue, error) {
	uniforms := make(map[string]metadata.UniformValue, len(config.Uniforms))
	for _, u := range config.Uniforms {
		v, ok := metadata.UniformFromConfig(u)
		if !ok {
			return nil, fmt.Errorf("material %q: uniform %q (%s, %d values): %w",
				config.Name, u.Name, u.ShaderUniformType, len(u.Values), core.ErrUnsupportedUniform)
		}
		uniforms[u.Name] = v
	}
	return uniforms, nil
}

func (m *Material) Program() renderer.Program {
	return m.program
}

func (m *Material) IsInitialized() bool {
	return m.program != nil
}

/**
 * @brief Compiles and links the program, then resolves a location for
 * every uniform the material knows plus every name in defaults. Names
 * already set on the material keep their value. Defaults are held apart
 * from Uniforms and forgotten by Destroy.
 */
func (m *Material) Initialize(ctx renderer.Context, defaults map[string]metadata.UniformValue) error {
	if m.program != nil {
		return fmt.Errorf("material %q: %w", m.Name, core.ErrAlreadyInitialized)
	}
	program, err := ctx.CreateProgram(m.VertexSource, m.FragmentSource)
	if err != nil {
		return fmt.Errorf("material %q: %w", m.Name, err)
	}
	if program == nil {
		return fmt.Errorf("material %q: program: %w", m.Name, core.ErrResourceCreation)
	}
	m.program = program

	m.defaults = make(map[string]metadata.UniformValue, len(defaults))
	for k, v := range defaults {
		m.defaults[k] = v
	}
	m.resolveLocations(ctx)
	return nil
}

func (m *Material) resolveLocations(ctx renderer.Context) {
	m.locations = make(map[string]metadata.UniformLocation, len(m.Uniforms)+len(m.defaults))
	m.names = m.names[:0]
	for name := range m.Uniforms {
		m.names = append(m.names, name)
	}
	for name := range m.defaults {
		if _, ok := m.Uniforms[name]; !ok {
			m.names = append(m.names, name)
		}
	}
	sort.Strings(m.names)
	for _, name := range m.names {
		m.locations[name] = ctx.GetUniformLocation(m.program, name)
	}
}

/**
 * @brief Replaces the shader sources and uniform values with those of
 * config and relinks. The names declared at Initialize stay resolved. The
 * previous program and values are kept when the new ones fail to build.
 */
func (m *Material) Reload(ctx renderer.Context, config metadata.ShaderConfig) error {
	uniforms, err := uniformsFromConfig(config)
	if err != nil {
		return err
	}
	vertexSource, fragmentSource := config.VertexSource, config.FragmentSource
	if m.program == nil {
		m.VertexSource, m.FragmentSource = vertexSource, fragmentSource
		m.Uniforms = uniforms
		return nil
	}
	program, err := ctx.CreateProgram(vertexSource, fragmentSource)
	if err != nil {
		return fmt.Errorf("material %q reload: %w", m.Name, err)
	}
	if program == nil {
		return fmt.Errorf("material %q reload: %w", m.Name, core.ErrResourceCreation)
	}
	ctx.DeleteProgram(m.program)
	m.program = program
	m.VertexSource, m.FragmentSource = vertexSource, fragmentSource
	m.Uniforms = uniforms
	m.resolveLocations(ctx)
	return nil
}

/**
 * @brief Uploads every resolved uniform. For each name the last of the
 * overrides that holds it wins, otherwise the material's own value is used.
 * Names the program does not use are skipped.
 */
func (m *Material) SetUniforms(ctx renderer.Context, overrides ...map[string]metadata.UniformValue) {
	for _, name := range m.names {
		loc := m.locations[name]
		if loc == nil {
			continue
		}
		value, ok := m.Uniforms[name]
		if !ok {
			value = m.defaults[name]
		}
		for _, o := range overrides {
			if v, ok := o[name]; ok {
				value = v
			}
		}
		value.Upload(ctx, loc)
	}
}

// Location returns the resolved location of name, nil when unused or
// unknown.
func (m *Material) Location(name string) metadata.UniformLocation {
	return m.locations[name]
}

// Destroy deletes the program. The material can be initialized again
// afterwards.
func (m *Material) Destroy(ctx renderer.Context) {
	if m.program == nil {
		return
	}
	ctx.DeleteProgram(m.program)
	m.program = nil
	m.locations = nil
	m.defaults = nil
	m.names = nil
}
