package metadata

import (
	"fmt"
	"testing"

	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/stretchr/testify/assert"
)

type uploadCall struct {
	fn       string
	location UniformLocation
	values   []float32
}

type fakeUploader struct {
	calls []uploadCall
}

func (f *fakeUploader) record(fn string, loc UniformLocation, v ...float32) {
	f.calls = append(f.calls, uploadCall{fn, loc, append([]float32(nil), v...)})
}

func (f *fakeUploader) Uniform1f(l UniformLocation, v float32) { f.record("1f", l, v) }
func (f *fakeUploader) Uniform1i(l UniformLocation, v int32) { f.record("1i", l, float32(v)) }
func (f *fakeUploader) Uniform2fv(l UniformLocation, v []float32) { f.record("2fv", l, v...) }
func (f *fakeUploader) Uniform3fv(l UniformLocation, v []float32) { f.record("3fv", l, v...) }
func (f *fakeUploader) Uniform4fv(l UniformLocation, v []float32) { f.record("4fv", l, v...) }
func (f *fakeUploader) UniformMatrix4fv(l UniformLocation, transpose bool, v []float32) {
	f.record(fmt.Sprintf("matrix4fv(%t)", transpose), l, v...)
}

func TestUniformUploadPaths(t *testing.T) {
	tests := []struct {
		value UniformValue
		fn    string
		n     int
	}{
		{FloatUniform(1.5), "1f", 1},
		{IntUniform(2), "1i", 1},
		{Vec2Uniform(math.NewVec2(1, 2)), "2fv", 2},
		{Vec3Uniform(math.NewVec3(1, 2, 3)), "3fv", 3},
		{ColorUniform(math.NewColorRGB(1, 1, 1)), "4fv", 4},
		{Mat4Uniform(math.NewMat4Identity()), "matrix4fv(false)", 16},
	}
	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			up := &fakeUploader{}
			tt.value.Upload(up, 3)
			if assert.Len(t, up.calls, 1) {
				assert.Equal(t, tt.fn, up.calls[0].fn)
				assert.Equal(t, 3, up.calls[0].location)
				assert.Len(t, up.calls[0].values, tt.n)
			}
		})
	}
}

func TestUniformUploadSkips(t *testing.T) {
	up := &fakeUploader{}
	FloatUniform(1).Upload(up, nil)
	UniformValue{}.Upload(up, 1)
	assert.Empty(t, up.calls)
}

func TestUniformFromConfig(t *testing.T) {
	u, ok := UniformFromConfig(ShaderUniformConfig{Name: "uColor", ShaderUniformType: ShaderUniformTypeFloat32_4, Values: []float32{1, 0, 0, 1}})
	assert.True(t, ok)
	assert.Equal(t, ColorUniform(math.NewColorRGB(1, 0, 0)), u)

	u, ok = UniformFromConfig(ShaderUniformConfig{ShaderUniformType: ShaderUniformTypeInt32, Values: []float32{4}})
	assert.True(t, ok)
	assert.Equal(t, IntUniform(4), u)

	_, ok = UniformFromConfig(ShaderUniformConfig{ShaderUniformType: ShaderUniformTypeFloat32_3, Values: []float32{1}})
	assert.False(t, ok)
}

func TestShaderUniformTypeFromString(t *testing.T) {
	for _, s := range []string{"float", "vec2", "vec3", "vec4", "int", "mat4"} {
		typ, err := ShaderUniformTypeFromString(s)
		assert.NoError(t, err)
		assert.Equal(t, s, typ.String())
	}
	_, err := ShaderUniformTypeFromString("sampler2D")
	assert.Error(t, err)
}
