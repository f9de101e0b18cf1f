package metadata

import (
	"github.com/spaghettifunk/cgengine/engine/math"
)

// Uniform names of the light arrays and their counts, shared with the
// fragment shaders.
const (
	UniformDirectionalLight = "uDirectionalLight"
	UniformDirectionalNum   = "uDirectionalNum"
	UniformPointLight       = "uPointLight"
	UniformPointNum         = "uPointNum"
	UniformSpotLight        = "uSpotLight"
	UniformSpotNum          = "uSpotNum"
	UniformAmbientLight     = "uAmbientLight"
	UniformAmbientNum       = "uAmbientNum"
)

// Per-entity and per-camera uniform names every program may use.
const (
	UniformModelMatrix      = "mMatrix"
	UniformViewMatrix       = "vMatrix"
	UniformProjectionMatrix = "pMatrix"
	UniformRotationMatrix   = "rMatrix"
	UniformCameraPosition   = "uCameraPos"
)

type DirectionalLightRecord struct {
	Dir   math.Vec3
	Color math.Color
}

func (r DirectionalLightRecord) Struct() Struct {
	return Struct{"dir": r.Dir, "color": r.Color}
}

type PointLightRecord struct {
	Pos      math.Vec3
	Color    math.Color
	Distance float32
	Decay    float32
}

func (r PointLightRecord) Struct() Struct {
	return Struct{
		"pos":      r.Pos,
		"color":    r.Color,
		"distance": r.Distance,
		"decay":    r.Decay,
	}
}

type SpotLightRecord struct {
	Pos         math.Vec3
	Dir         math.Vec3
	Color       math.Color
	Decay       float32
	ConeCos     float32
	PenumbraCos float32
	Distance    float32
}

func (r SpotLightRecord) Struct() Struct {
	return Struct{
		"pos":         r.Pos,
		"dir":         r.Dir,
		"color":       r.Color,
		"decay":       r.Decay,
		"coneCos":     r.ConeCos,
		"penumbraCos": r.PenumbraCos,
		"distance":    r.Distance,
	}
}

type AmbientLightRecord struct {
	Color math.Color
}

func (r AmbientLightRecord) Struct() Struct {
	return Struct{"color": r.Color}
}

/**
 * @brief Per-traversal aggregate of every light in a scene. One record is
 * appended per light node visited, in traversal order, and the matching
 * count is incremented alongside.
 */
type LightsUniform struct {
	Directional    []DirectionalLightRecord
	DirectionalNum int
	Point          []PointLightRecord
	PointNum       int
	Spot           []SpotLightRecord
	SpotNum        int
	Ambient        []AmbientLightRecord
	AmbientNum     int
}

// NewLightsUniform returns an empty aggregate. A fresh one is built for
// every traversal.
func NewLightsUniform() *LightsUniform {
	return &LightsUniform{}
}

func (l *LightsUniform) AddDirectional(r DirectionalLightRecord) {
	l.Directional = append(l.Directional, r)
	l.DirectionalNum++
}

func (l *LightsUniform) AddPoint(r PointLightRecord) {
	l.Point = append(l.Point, r)
	l.PointNum++
}

func (l *LightsUniform) AddSpot(r SpotLightRecord) {
	l.Spot = append(l.Spot, r)
	l.SpotNum++
}

func (l *LightsUniform) AddAmbient(r AmbientLightRecord) {
	l.Ambient = append(l.Ambient, r)
	l.AmbientNum++
}

// Counts returns the directional, point, spot and ambient counts.
func (l *LightsUniform) Counts() [4]int {
	return [4]int{l.DirectionalNum, l.PointNum, l.SpotNum, l.AmbientNum}
}

/**
 * @brief Builds the nested structure fed to Flatten. With intCounts the
 * counts are wrapped in Int so they upload through uniform1i; otherwise
 * they are plain numbers, which is enough to declare the names.
 */
func (l *LightsUniform) Struct(intCounts bool) Struct {
	count := func(n int) any {
		if intCounts {
			return Int(n)
		}
		return float32(n)
	}

	dirs := make([]Struct, len(l.Directional))
	for i, r := range l.Directional {
		dirs[i] = r.Struct()
	}
	points := make([]Struct, len(l.Point))
	for i, r := range l.Point {
		points[i] = r.Struct()
	}
	spots := make([]Struct, len(l.Spot))
	for i, r := range l.Spot {
		spots[i] = r.Struct()
	}
	ambients := make([]Struct, len(l.Ambient))
	for i, r := range l.Ambient {
		ambients[i] = r.Struct()
	}

	return Struct{
		UniformDirectionalLight: dirs,
		UniformDirectionalNum:   count(l.DirectionalNum),
		UniformPointLight:       points,
		UniformPointNum:         count(l.PointNum),
		UniformSpotLight:        spots,
		UniformSpotNum:          count(l.SpotNum),
		UniformAmbientLight:     ambients,
		UniformAmbientNum:       count(l.AmbientNum),
	}
}
