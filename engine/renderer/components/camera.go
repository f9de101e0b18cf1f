package components

import (
	"fmt"

	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

type ProjectionKind uint8

const (
	Perspective ProjectionKind = iota
	Orthographic
)

/** @brief The matrices a camera hands to the renderer every frame. */
type CameraMatrices struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
}

/**
 * @brief Represents a camera that can be used for rendering. The view
 * matrix is the inverse of the transform matrix and is only rebuilt when
 * the transform changed since the last query.
 */
type Camera struct {
	/** @brief Placement of the camera in world space. Mutate freely. */
	Transform *math.Transform

	Kind ProjectionKind
	/** @brief Vertical field of view in radians (perspective only). */
	FOV float32
	/** @brief View box height in world units (orthographic only). */
	Height float32
	Aspect float32
	Near   float32
	Far    float32

	pitch      float32
	viewMatrix math.Mat4
	projection math.Mat4
	// transform matrix viewMatrix was computed from
	viewSource math.Mat4
	hasView    bool
}

/**
 * @brief Creates a perspective camera at the origin looking down -Z.
 *
 * @param fov The vertical field of view in radians.
 * @param aspect Width divided by height.
 * @param near The near clipping plane distance.
 * @param far The far clipping plane distance.
 */
func NewPerspectiveCamera(fov, aspect, near, far float32) *Camera {
	c := &Camera{
		Transform:  math.NewTransform(),
		Kind:       Perspective,
		FOV:        fov,
		Aspect:     aspect,
		Near:       near,
		Far:        far,
		viewMatrix: math.NewMat4Identity(),
	}
	c.UpdateProjection()
	return c
}

/**
 * @brief Creates an orthographic camera whose view box is height units tall.
 */
func NewOrthographicCamera(height, aspect, near, far float32) *Camera {
	c := &Camera{
		Transform:  math.NewTransform(),
		Kind:       Orthographic,
		Height:     height,
		Aspect:     aspect,
		Near:       near,
		Far:        far,
		viewMatrix: math.NewMat4Identity(),
	}
	c.UpdateProjection()
	return c
}

// UpdateProjection rebuilds the projection matrix after FOV, Height,
// Aspect, Near or Far changed.
func (c *Camera) UpdateProjection() {
	switch c.Kind {
	case Perspective:
		c.projection = math.NewMat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
	case Orthographic:
		c.projection = math.NewMat4Orthographic(c.Height, c.Aspect, c.Near, c.Far)
	}
}

// SetAspect changes the aspect ratio, typically after a window resize.
func (c *Camera) SetAspect(aspect float32) {
	c.Aspect = aspect
	c.UpdateProjection()
}

func (c *Camera) Projection() math.Mat4 {
	return c.projection
}

/**
 * @brief Returns view, projection and eye position. The view matrix is
 * recomputed only when the transform matrix differs from the one the
 * previous call inverted, whoever else read the transform in between.
 *
 * @return The camera matrices, or an error when the transform is not
 * invertible (for instance a zero scale).
 */
func (c *Camera) GetMatrix() (CameraMatrices, error) {
	world := c.Transform.GetMatrix()
	if !c.hasView || !world.Equals(c.viewSource) {
		view, err := world.Inverse()
		if err != nil {
			return CameraMatrices{}, fmt.Errorf("camera view: %w", err)
		}
		c.viewMatrix = view
		c.viewSource = world
		c.hasView = true
	}
	return CameraMatrices{
		View:       c.viewMatrix,
		Projection: c.projection,
		Eye:        c.Transform.Position,
	}, nil
}

// Uniforms returns the camera matrices under the names the shaders use.
func (c *Camera) Uniforms() (map[string]metadata.UniformValue, error) {
	m, err := c.GetMatrix()
	if err != nil {
		return nil, err
	}
	return map[string]metadata.UniformValue{
		metadata.UniformViewMatrix:       metadata.Mat4Uniform(m.View),
		metadata.UniformProjectionMatrix: metadata.Mat4Uniform(m.Projection),
		metadata.UniformCameraPosition:   metadata.Vec3Uniform(m.Eye),
	}, nil
}

func (c *Camera) LookAt(target math.Vec3) error {
	return c.Transform.LookAt(target)
}

func (c *Camera) Forward() math.Vec3 {
	return c.Transform.GetMatrix().Forward()
}

func (c *Camera) Right() math.Vec3 {
	return c.Transform.GetMatrix().Right()
}

func (c *Camera) MoveForward(amount float32) {
	c.Transform.Translate(c.Forward().MulScalar(amount))
}

func (c *Camera) MoveRight(amount float32) {
	c.Transform.Translate(c.Right().MulScalar(amount))
}

func (c *Camera) MoveUp(amount float32) {
	c.Transform.Translate(math.NewVec3Up().MulScalar(amount))
}

// Yaw turns the camera around the world up axis.
func (c *Camera) Yaw(amount float32) {
	c.Transform.Rotate(math.NewQuatAngleAxis(amount, math.NewVec3Up()))
}

// Pitch tilts the camera around its own right axis.
func (c *Camera) Pitch(amount float32) {
	// Clamp to avoid Gimbal lock.
	limit := float32(1.55334306) // 89 degrees
	next := math.Clamp(c.pitch+amount, -limit, limit)
	amount = next - c.pitch
	c.pitch = next

	c.Transform.SetRotation(c.Transform.Rotation.Mul(math.NewQuatAngleAxis(amount, math.NewVec3(1, 0, 0))))
}
