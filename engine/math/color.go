package math

// NewColor creates an RGBA colour.
func NewColor(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewColorRGB creates an opaque colour.
func NewColorRGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// NewColorBlack returns opaque black, the default clear colour.
func NewColorBlack() Color {
	return Color{A: 1.0}
}

// Clamped returns a copy with every channel clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{
		R: Clamp(c.R, 0, 1),
		G: Clamp(c.G, 0, 1),
		B: Clamp(c.B, 0, 1),
		A: Clamp(c.A, 0, 1),
	}
}

// MulScalar scales the RGB channels, leaving alpha untouched.
func (c Color) MulScalar(s float32) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

func (c Color) ToVec4() Vec4 {
	return Vec4{c.R, c.G, c.B, c.A}
}

func (c Color) Equals(other Color) bool {
	return c == other
}

func (c Color) Clone() Color {
	return c
}

// Array returns the channels as an upload buffer.
func (c Color) Array() []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}
