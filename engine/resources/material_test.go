package resources

import (
	"testing"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
	"github.com/spaghettifunk/cgengine/engine/renderer/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialInitialize(t *testing.T) {
	ctx := recorder.New()
	m := NewMaterial("flat", "vs", "fs", map[string]metadata.UniformValue{
		"uColor": metadata.ColorUniform(math.NewColorRGB(1, 0, 0)),
	})

	defaults := metadata.DefaultUniformNames()
	defaults["uColor"] = metadata.ColorUniform(math.NewColorBlack())

	require.NoError(t, m.Initialize(ctx, defaults))
	assert.True(t, m.IsInitialized())
	assert.Equal(t, 1, ctx.LivePrograms())

	// the material's own value survives the placeholder merge
	assert.Equal(t, []float32{1, 0, 0, 1}, m.Uniforms["uColor"].Array())
	for name := range metadata.DefaultUniformNames() {
		assert.NotContains(t, m.Uniforms, name)
		assert.NotNil(t, m.Location(name))
	}

	assert.ErrorIs(t, m.Initialize(ctx, nil), core.ErrAlreadyInitialized)

	m.Destroy(ctx)
	assert.False(t, m.IsInitialized())
	assert.Equal(t, 0, ctx.LivePrograms())
}

func TestMaterialInitializeErrors(t *testing.T) {
	ctx := recorder.New()
	ctx.FailCompile = true
	m := NewMaterial("broken", "vs", "fs", nil)
	assert.ErrorIs(t, m.Initialize(ctx, nil), core.ErrShaderCompile)

	ctx.FailCompile = false
	ctx.FailLink = true
	assert.ErrorIs(t, m.Initialize(ctx, nil), core.ErrProgramLink)
	assert.False(t, m.IsInitialized())
}

func TestMaterialSetUniforms(t *testing.T) {
	ctx := recorder.New()
	ctx.Inactive = func(name string) bool { return name == "uUnused" }

	m := NewMaterial("flat", "vs", "fs", map[string]metadata.UniformValue{
		"uColor":     metadata.Vec3Uniform(math.NewVec3(0, 1, 0)),
		"uShininess": metadata.FloatUniform(8),
		"uUnused":    metadata.FloatUniform(1),
	})
	require.NoError(t, m.Initialize(ctx, metadata.DefaultUniformNames()))

	ctx.UseProgram(m.Program())
	ctx.Reset()
	m.SetUniforms(ctx,
		map[string]metadata.UniformValue{"uShininess": metadata.FloatUniform(16)},
		map[string]metadata.UniformValue{"mMatrix": metadata.Mat4Uniform(math.NewMat4Identity())},
	)

	// unset placeholders and inactive uniforms are never uploaded
	assert.Equal(t, 3, len(ctx.Calls))
	assert.Equal(t, 1, ctx.Count("Uniform1f"))
	assert.Equal(t, 1, ctx.Count("Uniform3fv"))
	assert.Equal(t, 1, ctx.Count("UniformMatrix4fv"))

	p := m.Program().(*recorder.Program)
	assert.Equal(t, []float32{16}, p.Uniforms["uShininess"].Values)
	assert.Equal(t, []float32{0, 1, 0}, p.Uniforms["uColor"].Values)
	assert.NotContains(t, p.Uniforms, "uUnused")
}

func TestMaterialReload(t *testing.T) {
	ctx := recorder.New()
	m := NewMaterial("flat", "vs", "fs", nil)
	require.NoError(t, m.Initialize(ctx, metadata.DefaultUniformNames()))
	old := m.Program()

	config := metadata.ShaderConfig{
		Name:           "flat",
		VertexSource:   "vs2",
		FragmentSource: "fs2",
		Uniforms: []metadata.ShaderUniformConfig{
			{Name: "uColor", ShaderUniformType: metadata.ShaderUniformTypeFloat32_3, Values: []float32{0, 0, 1}},
		},
	}

	ctx.FailCompile = true
	assert.ErrorIs(t, m.Reload(ctx, config), core.ErrShaderCompile)
	assert.Equal(t, old, m.Program())
	assert.Equal(t, "vs", m.VertexSource)
	assert.NotContains(t, m.Uniforms, "uColor")

	ctx.FailCompile = false
	require.NoError(t, m.Reload(ctx, config))
	assert.NotEqual(t, old, m.Program())
	assert.Equal(t, 1, ctx.LivePrograms())
	assert.Equal(t, "fs2", m.Program().(*recorder.Program).FragmentSource)
	assert.NotNil(t, m.Location(metadata.UniformModelMatrix))
	assert.NotNil(t, m.Location("uColor"))

	ctx.UseProgram(m.Program())
	m.SetUniforms(ctx)
	assert.Equal(t, []float32{0, 0, 1}, m.Program().(*recorder.Program).Uniforms["uColor"].Values)

	bad := config
	bad.Uniforms = []metadata.ShaderUniformConfig{
		{Name: "uColor", ShaderUniformType: metadata.ShaderUniformTypeFloat32_3, Values: []float32{1}},
	}
	assert.ErrorIs(t, m.Reload(ctx, bad), core.ErrUnsupportedUniform)
	assert.Equal(t, []float32{0, 0, 1}, m.Uniforms["uColor"].Array())
}

func TestMaterialReinitializeForgetsDefaults(t *testing.T) {
	ctx := recorder.New()
	m := NewMaterial("flat", "vs", "fs", nil)

	defaults := metadata.DefaultUniformNames()
	defaults["uPointLight[1].pos"] = metadata.Vec3Uniform(math.NewVec3Zero())
	require.NoError(t, m.Initialize(ctx, defaults))
	assert.NotNil(t, m.Location("uPointLight[1].pos"))

	m.Destroy(ctx)
	require.NoError(t, m.Initialize(ctx, metadata.DefaultUniformNames()))
	assert.Nil(t, m.Location("uPointLight[1].pos"))
	assert.NotContains(t, m.Uniforms, "uPointLight[1].pos")

	ctx.UseProgram(m.Program())
	m.SetUniforms(ctx)
	assert.NotContains(t, m.Program().(*recorder.Program).Uniforms, "uPointLight[1].pos")
}

func TestNewMaterialFromConfig(t *testing.T) {
	m, err := NewMaterialFromConfig(metadata.ShaderConfig{
		Name:           "phong",
		VertexSource:   "vs",
		FragmentSource: "fs",
		Uniforms: []metadata.ShaderUniformConfig{
			{Name: "uColor", ShaderUniformType: metadata.ShaderUniformTypeFloat32_3, Values: []float32{1, 1, 1}},
			{Name: "uShininess", ShaderUniformType: metadata.ShaderUniformTypeFloat32, Values: []float32{32}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "phong", m.Name)
	assert.Equal(t, []float32{1, 1, 1}, m.Uniforms["uColor"].Array())

	_, err = NewMaterialFromConfig(metadata.ShaderConfig{
		Name: "bad",
		Uniforms: []metadata.ShaderUniformConfig{
			{Name: "uColor", ShaderUniformType: metadata.ShaderUniformTypeFloat32_3, Values: []float32{1}},
		},
	})
	assert.ErrorIs(t, err, core.ErrUnsupportedUniform)
}
