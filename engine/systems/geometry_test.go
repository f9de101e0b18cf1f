package systems

import (
	"testing"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec3At(data []float32, i int) math.Vec3 {
	return math.NewVec3(data[i*3], data[i*3+1], data[i*3+2])
}

// assertOutwardWinding checks every triangle is counter-clockwise when seen
// from the side its vertex normals point to.
func assertOutwardWinding(t *testing.T, cfg *resources.GeometryConfig) {
	t.Helper()
	for i := 0; i+2 < len(cfg.Indices); i += 3 {
		a := vec3At(cfg.Vertices, int(cfg.Indices[i]))
		b := vec3At(cfg.Vertices, int(cfg.Indices[i+1]))
		c := vec3At(cfg.Vertices, int(cfg.Indices[i+2]))
		face := b.Sub(a).Cross(c.Sub(a))
		if face.Length2() < 1e-12 {
			// collapsed triangle at a pole
			continue
		}
		n := vec3At(cfg.Normals, int(cfg.Indices[i])).
			Add(vec3At(cfg.Normals, int(cfg.Indices[i+1]))).
			Add(vec3At(cfg.Normals, int(cfg.Indices[i+2])))
		if !assert.Greater(t, face.Dot(n), float32(0), "triangle %d", i/3) {
			return
		}
	}
}

func TestGenerateCubeConfig(t *testing.T) {
	cfg, err := GenerateCubeConfig(2, 2, 2, 1, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "cube", cfg.Name)
	assert.Len(t, cfg.Vertices, 24*3)
	assert.Len(t, cfg.UVs, 24*2)
	assert.Len(t, cfg.Indices, 36)
	for i := 0; i < 24; i++ {
		p := vec3At(cfg.Vertices, i)
		n := vec3At(cfg.Normals, i)
		// every vertex lies on the face its normal names
		assert.InDelta(t, 1, p.Dot(n), 1e-6)
		assert.InDelta(t, 0, n.Dot(vec3At(cfg.Tangents, i)), 1e-6)
	}
	assertOutwardWinding(t, cfg)

	_, err = resources.NewGeometry(*cfg)
	assert.NoError(t, err)
}

func TestGenerateCubeConfigDefaults(t *testing.T) {
	cfg, err := GenerateCubeConfig(0, 1, 1, 0, 1, "box")
	require.NoError(t, err)
	assert.Equal(t, "box", cfg.Name)
	assert.Equal(t, float32(-0.5), cfg.Vertices[0])
}

func TestGeneratePlaneConfig(t *testing.T) {
	cfg, err := GeneratePlaneConfig(4, 2, 2, 3, 1, 1, "")
	require.NoError(t, err)
	assert.Len(t, cfg.Vertices, 2*3*4*3)
	assert.Len(t, cfg.Indices, 2*3*6)
	for i := 0; i < len(cfg.Vertices)/3; i++ {
		p := vec3At(cfg.Vertices, i)
		assert.Equal(t, float32(0), p.Y)
		assert.LessOrEqual(t, p.X, float32(2))
		assert.GreaterOrEqual(t, p.Z, float32(-1))
		assert.Equal(t, math.NewVec3(0, 1, 0), vec3At(cfg.Normals, i))
	}
	assertOutwardWinding(t, cfg)

	_, err = GeneratePlaneConfig(1, 1, 256, 256, 1, 1, "")
	assert.ErrorIs(t, err, core.ErrInvalidGeometry)
}

func TestGenerateSphereConfig(t *testing.T) {
	cfg, err := GenerateSphereConfig(0.5, 10, 10, "")
	require.NoError(t, err)
	assert.Len(t, cfg.Vertices, 11*11*3)
	assert.Len(t, cfg.Indices, 10*10*6)
	for i := 0; i < len(cfg.Vertices)/3; i++ {
		assert.InDelta(t, 0.5, vec3At(cfg.Vertices, i).Length(), 1e-5)
		assert.InDelta(t, 1, vec3At(cfg.Normals, i).Length(), 1e-5)
	}
	assertOutwardWinding(t, cfg)

	_, err = GenerateSphereConfig(1, 300, 300, "")
	assert.ErrorIs(t, err, core.ErrInvalidGeometry)
}

func TestGenerateTorusConfig(t *testing.T) {
	cfg, err := GenerateTorusConfig(1, 0.25, 8, 16, "")
	require.NoError(t, err)
	assert.Len(t, cfg.Vertices, 9*17*3)
	assert.Len(t, cfg.Indices, 8*16*6)
	for i := 0; i < len(cfg.Vertices)/3; i++ {
		p := vec3At(cfg.Vertices, i)
		ring := math.NewVec3(p.X, p.Y, 0).Normalize()
		assert.InDelta(t, 0.25, p.Distance(ring), 1e-5)
	}
	assertOutwardWinding(t, cfg)
}

func TestGenerateGeometry(t *testing.T) {
	for _, kind := range []string{"cube", "plane", "sphere", "torus"} {
		g, err := GenerateGeometry(kind)
		require.NoError(t, err, kind)
		assert.Equal(t, kind, g.Name)
		assert.True(t, g.HasTangents())
	}
	_, err := GenerateGeometry("teapot")
	assert.ErrorIs(t, err, core.ErrInvalidGeometry)
}
