package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhysicalFragment(t *testing.T) {
	src := PhysicalFragment(CookTorrance)
	assert.Contains(t, src, "exp(-(1.0 - cosa2)")
	assert.Contains(t, src, "(PI * dot(n,l) * dot(n, v))")
	assert.True(t, strings.Index(src, "DiffuseBRDF(in NormalizedLight") < strings.Index(src, "void ReflectLight"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(src), "}"))

	assert.Equal(t, PhysicalFragment(Standard), PhysicalFragment(""))
}

func TestPresetsDefineEveryTerm(t *testing.T) {
	for name, brdf := range presets {
		t.Run(name, func(t *testing.T) {
			for _, sym := range []string{"vec3 DiffuseBRDF(", "float D(", "float G(", "vec3 F(", "vec3 SpecularBRDF("} {
				assert.Equal(t, 1, strings.Count(brdf, sym), sym)
			}
		})
	}
}

func TestPreset(t *testing.T) {
	brdf, ok := Preset("CookTorrance")
	assert.True(t, ok)
	assert.Equal(t, CookTorrance, brdf)

	_, ok = Preset("ward")
	assert.False(t, ok)

	assert.Equal(t, Standard, Compose(DiffuseNormalizedLambert, DistributionGGX, GeometrySmithSchlickGGX, FresnelSchlick, SpecularFour))
}

func TestFragmentsDeclareLightUniforms(t *testing.T) {
	for _, src := range []string{PhongFragment, PhysicalFragment(Standard)} {
		for _, name := range []string{"uDirectionalLight[LIGHT_MAX]", "uPointNum", "uSpotLight[LIGHT_MAX]", "uAmbientNum", "uCameraPos"} {
			assert.Contains(t, src, name)
		}
	}
	assert.Contains(t, FlatFragment, "uniform vec4 "+MainColor)
	assert.Contains(t, BasicVertex, "uniform mat4 rMatrix")
}

func TestToDesktop(t *testing.T) {
	src := ToDesktop(BasicVertex)
	assert.True(t, strings.HasPrefix(src, DesktopVersion+"\n"))
	assert.NotContains(t, src, "precision")
	assert.Contains(t, src, "attribute vec3 vertex;\n")
	assert.Contains(t, src, "gl_Position = pMatrix * vMatrix * vec4(vWorldPos, 1.0);")

	assert.Equal(t, DesktopVersion+"\nvoid main(void) {}", ToDesktop("  precision highp float;\nvoid main(void) {}"))
}
