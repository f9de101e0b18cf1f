package math

import (
	"fmt"

	"github.com/spaghettifunk/cgengine/engine/core"
)

// NewTransform returns a transform at the origin with identity rotation and
// unit scale. Its matrix is computed on the first GetMatrix call.
func NewTransform() *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(NewVec3Zero(), NewQuatIdentity(), NewVec3One())
	t.matrix = NewMat4Identity()
	return t
}

func NewTransformFromPosition(position Vec3) *Transform {
	t := NewTransform()
	t.SetPosition(position)
	return t
}

func NewTransformFromPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) *Transform {
	t := NewTransform()
	t.SetPositionRotationScale(position, rotation, scale)
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Quaternion) {
	t.Rotation = rotation
	t.IsDirty = true
}

// Rotate applies rotation on top of the current orientation.
func (t *Transform) Rotate(rotation Quaternion) {
	t.Rotation = rotation.Mul(t.Rotation)
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position Vec3, rotation Quaternion, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// NeedUpdate reports whether the cached matrix is stale, either because a
// setter ran or because a field differs from the last snapshot.
func (t *Transform) NeedUpdate() bool {
	if t.IsDirty {
		return true
	}
	return !(t.Position.Equals(t.prevPosition) &&
		t.Rotation.Equals(t.prevRotation) &&
		t.Scale.Equals(t.prevScale))
}

// GetMatrix returns translation × rotation × scale, rebuilding it only
// when NeedUpdate reports a change.
func (t *Transform) GetMatrix() Mat4 {
	if t == nil {
		return NewMat4Identity()
	}
	if !t.NeedUpdate() {
		return t.matrix
	}

	tr := NewMat4Translation(t.Position)
	tr = tr.Mul(t.Rotation.ToMat4())
	t.matrix = tr.Mul(NewMat4Scale(t.Scale))

	t.prevPosition = t.Position
	t.prevRotation = t.Rotation
	t.prevScale = t.Scale
	t.IsDirty = false
	return t.matrix
}

// LookAt orients the transform so its local -Z axis points at target with
// world +Y as up. When the view direction is vertical a Z axis is used as up.
func (t *Transform) LookAt(target Vec3) error {
	forward := t.Position.Sub(target)
	if forward.Length2() == 0 {
		return fmt.Errorf("look at %v from %v: %w", target, t.Position, core.ErrDegenerateLookAt)
	}
	forward = forward.Normalize()

	up := NewVec3Up()
	right := up.Cross(forward)
	if right.Length2() < K_FLOAT_EPSILON {
		if forward.Y > 0 {
			up = Vec3{0, 0, -1}
		} else {
			up = Vec3{0, 0, 1}
		}
		right = up.Cross(forward)
	}
	right = right.Normalize()
	realUp := forward.Cross(right).Normalize()

	rot := NewMat4Identity()
	rot.Data[0], rot.Data[1], rot.Data[2] = right.X, right.Y, right.Z
	rot.Data[4], rot.Data[5], rot.Data[6] = realUp.X, realUp.Y, realUp.Z
	rot.Data[8], rot.Data[9], rot.Data[10] = forward.X, forward.Y, forward.Z

	t.SetRotation(NewQuatFromMat4(rot))
	return nil
}
