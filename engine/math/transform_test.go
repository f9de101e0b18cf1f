package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformNeedUpdateOnce(t *testing.T) {
	tr := NewTransform()
	assert.True(t, tr.NeedUpdate())

	m := tr.GetMatrix()
	assert.Equal(t, NewMat4Identity(), m)
	assert.False(t, tr.NeedUpdate())
	assert.Equal(t, m, tr.GetMatrix())
}

func TestTransformDetectsDirectFieldChanges(t *testing.T) {
	tr := NewTransform()
	tr.GetMatrix()

	tr.Position.X = 2
	assert.True(t, tr.NeedUpdate())
	assert.Equal(t, NewVec3(2, 0, 0), tr.GetMatrix().Translation())
	assert.False(t, tr.NeedUpdate())

	tr.SetScale(NewVec3(2, 2, 2))
	assert.True(t, tr.NeedUpdate())
}

func TestTransformMatrixIsTRS(t *testing.T) {
	tr := NewTransformFromPositionRotationScale(
		NewVec3(1, 2, 3),
		NewQuatAngleAxis(K_HALF_PI, NewVec3(0, 0, 1)),
		NewVec3(2, 1, 1),
	)
	// scale (1,0,0) -> (2,0,0), rotate about Z -> (0,2,0), translate -> (1,4,3)
	p := NewVec3(1, 0, 0).Transform(tr.GetMatrix())
	assert.True(t, p.Compare(NewVec3(1, 4, 3), standardTol), "%v", p)
}

func TestTransformLookAt(t *testing.T) {
	tr := NewTransformFromPosition(NewVec3(0, 0, 3))
	require.NoError(t, tr.LookAt(NewVec3Zero()))
	assertQuatSameRotation(t, NewQuatIdentity(), tr.Rotation)

	tr = NewTransformFromPosition(NewVec3(5, 0, 0))
	require.NoError(t, tr.LookAt(NewVec3Zero()))
	fwd := tr.GetMatrix().Forward()
	assert.True(t, fwd.Compare(NewVec3(-1, 0, 0), 1e-4), "%v", fwd)
}

func TestTransformLookAtVertical(t *testing.T) {
	tr := NewTransformFromPosition(NewVec3(0, 10, 0))
	require.NoError(t, tr.LookAt(NewVec3Zero()))
	assert.False(t, math32.IsNaN(tr.Rotation.W))
	fwd := tr.GetMatrix().Forward()
	assert.True(t, fwd.Compare(NewVec3(0, -1, 0), 1e-4), "%v", fwd)
}

func TestTransformLookAtDegenerate(t *testing.T) {
	tr := NewTransformFromPosition(NewVec3(1, 1, 1))
	before := tr.Rotation
	err := tr.LookAt(NewVec3(1, 1, 1))
	assert.ErrorIs(t, err, core.ErrDegenerateLookAt)
	assert.Equal(t, before, tr.Rotation)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3, Clamp(5, 0, 3))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
