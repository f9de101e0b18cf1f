package math

import (
	"bytes"
	"os"
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/stretchr/testify/assert"
)

const standardTol = float32(1.0e-5)

func TestVec3AddSubRoundTrip(t *testing.T) {
	a := NewVec3(1.5, -2, 3.25)
	b := NewVec3(0.5, 4, -1)

	assert.Equal(t, a, a.Add(b).Sub(b))
	assert.Equal(t, NewVec3(2, 2, 2.25), a.Add(b))
	assert.Equal(t, NewVec3(3, -4, 6.5), a.MulScalar(2))
	assert.Equal(t, NewVec3(2.5, -1, 4.25), a.AddScalar(1))
}

func TestVec3Normalize(t *testing.T) {
	for _, v := range []Vec3{{3, 4, 0}, {1, 1, 1}, {-7, 0.5, 12}} {
		assert.InDelta(t, 1.0, v.Normalize().Length(), 1e-6, "%v", v)
	}
	assert.Equal(t, float32(25), NewVec3(3, 4, 0).Length2())
}

func TestVec3Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	assert.Equal(t, NewVec3(0, 0, 1), x.Cross(y))
	assert.Equal(t, NewVec3(0, 0, -1), y.Cross(x))
	assert.Equal(t, float32(0), x.Dot(y))
}

func TestVec3EqualsIsExact(t *testing.T) {
	a := NewVec3(1, 2, 3)
	assert.True(t, a.Equals(a.Clone()))
	assert.False(t, a.Equals(NewVec3(1, 2, 3.0001)))
	assert.True(t, a.Compare(NewVec3(1, 2, 3.000001), standardTol))
}

func TestDivisionByZeroIsReported(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	defer core.SetLogOutput(os.Stderr)

	out := NewVec2(1, 1).DivScalar(0)
	assert.True(t, math32.IsInf(out.X, 1))
	assert.Contains(t, buf.String(), "division by zero")
}

func TestVec4Array(t *testing.T) {
	v := NewVec4(1, 2, 3, 4)
	assert.Equal(t, []float32{1, 2, 3, 4}, v.Array())
	assert.Equal(t, NewVec3(1, 2, 3), v.ToVec3())
	assert.Equal(t, float32(30), v.Dot(v))
}

func TestColorDefaults(t *testing.T) {
	assert.Equal(t, Color{0, 0, 0, 1}, NewColorBlack())
	assert.Equal(t, float32(1), NewColorRGB(0.2, 0.3, 0.4).A)
	assert.Equal(t, Color{1, 0, 0.5, 1}, NewColor(2, -1, 0.5, 1).Clamped())
	assert.Equal(t, []float32{0.2, 0.3, 0.4, 1}, NewColorRGB(0.2, 0.3, 0.4).Array())
}
