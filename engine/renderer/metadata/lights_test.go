package metadata

import (
	"testing"

	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLightsUniformStruct(t *testing.T) {
	l := NewLightsUniform()
	l.AddDirectional(DirectionalLightRecord{Dir: math.NewVec3(0, 1, 0), Color: math.NewColorRGB(1, 1, 1)})
	l.AddSpot(SpotLightRecord{Color: math.NewColorRGB(1, 0, 0), ConeCos: 0.5})
	l.AddSpot(SpotLightRecord{Color: math.NewColorRGB(0, 1, 0)})
	assert.Equal(t, [4]int{1, 0, 2, 0}, l.Counts())

	out, err := Flatten(l.Struct(true))
	require.NoError(t, err)

	assert.Equal(t, IntUniform(1), out["uDirectionalNum"])
	assert.Equal(t, IntUniform(2), out["uSpotNum"])
	assert.Equal(t, IntUniform(0), out["uPointNum"])
	assert.Equal(t, IntUniform(0), out["uAmbientNum"])
	assert.Equal(t, FloatUniform(0.5), out["uSpotLight[0].coneCos"])
	assert.Contains(t, out, "uSpotLight[1].penumbraCos")
	assert.NotContains(t, out, "uSpotLight[2].pos")
	assert.NotContains(t, out, "uPointLight[0].pos")
	// 1 directional x 2 fields, 2 spots x 7 fields, 4 counts
	assert.Len(t, out, 2+14+4)

	template, err := Flatten(l.Struct(false))
	require.NoError(t, err)
	assert.Equal(t, keys(out), keys(template))
	assert.Equal(t, FloatUniform(1), template["uDirectionalNum"])
}

func TestDefaultUniformNames(t *testing.T) {
	names := DefaultUniformNames()
	assert.Len(t, names, 5)
	for _, n := range []string{"mMatrix", "vMatrix", "pMatrix", "rMatrix", "uCameraPos"} {
		assert.Contains(t, names, n)
		assert.False(t, names[n].IsSet())
	}
}
