package metadata

// RenderOptions is the per-frame uniform bag handed to every renderable.
// Each entity uploads it on top of its own material values and model
// matrices.
type RenderOptions struct {
	Uniforms map[string]UniformValue
}

// DefaultUniformNames declares the names every program may use before any
// value is known. They are resolved once at initialization.
func DefaultUniformNames() map[string]UniformValue {
	return map[string]UniformValue{
		UniformModelMatrix:      {},
		UniformViewMatrix:       {},
		UniformProjectionMatrix: {},
		UniformRotationMatrix:   {},
		UniformCameraPosition:   {},
	}
}
