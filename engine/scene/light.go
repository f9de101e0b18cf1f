package scene

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer/metadata"
)

type LightKind int

const (
	LightDirectional LightKind = iota
	LightPoint
	LightSpot
	LightAmbient
)

func (k LightKind) String() string {
	switch k {
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	case LightAmbient:
		return "ambient"
	}
	return "unknown"
}

/**
 * @brief The light capability of a node. Which fields are meaningful
 * depends on Kind: Distance and Decay for point and spot lights, the cone
 * cosines for spot lights only.
 */
type Light struct {
	Kind  LightKind
	Color math.Color

	Distance float32
	Decay    float32
	/** @brief Cosine of the outer cone angle. */
	ConeCos float32
	/** @brief Cosine of the angle where the penumbra starts. */
	PenumbraCos float32
}

func NewDirectionalLight(color math.Color) Light {
	return Light{Kind: LightDirectional, Color: color}
}

func NewPointLight(color math.Color, distance, decay float32) Light {
	return Light{Kind: LightPoint, Color: color, Distance: distance, Decay: decay}
}

/**
 * @brief Creates a spot light. Angles are in radians and stored as cosines.
 *
 * @param cone The half angle of the lit cone.
 * @param penumbra The half angle where the falloff towards the cone edge begins.
 */
func NewSpotLight(color math.Color, cone, penumbra, distance, decay float32) Light {
	return Light{
		Kind:        LightSpot,
		Color:       color,
		Distance:    distance,
		Decay:       decay,
		ConeCos:     math32.Cos(cone),
		PenumbraCos: math32.Cos(penumbra),
	}
}

func NewAmbientLight(color math.Color) Light {
	return Light{Kind: LightAmbient, Color: color}
}

// appendTemplate adds the placeholder record used to discover uniform
// names before any frame.
func (l *Light) appendTemplate(lights *metadata.LightsUniform) {
	white := math.NewColorRGB(1, 1, 1)
	switch l.Kind {
	case LightDirectional:
		lights.AddDirectional(metadata.DirectionalLightRecord{
			Dir:   math.NewVec3(0, 1, 0),
			Color: white,
		})
	case LightPoint:
		lights.AddPoint(metadata.PointLightRecord{
			Pos:      math.NewVec3Zero(),
			Color:    l.Color,
			Distance: l.Distance,
			Decay:    l.Decay,
		})
	case LightSpot:
		lights.AddSpot(metadata.SpotLightRecord{
			Pos:         math.NewVec3Zero(),
			Dir:         math.NewVec3(0, -1, 0),
			Color:       l.Color,
			Decay:       l.Decay,
			ConeCos:     l.ConeCos,
			PenumbraCos: l.PenumbraCos,
			Distance:    l.Distance,
		})
	case LightAmbient:
		lights.AddAmbient(metadata.AmbientLightRecord{Color: white})
	}
}

// appendPrepared adds the record for this frame, placed by the node's
// world matrix. Lights shine down their local -Z axis; the spot direction
// keeps the world scale, fragment shaders normalize it.
func (l *Light) appendPrepared(world math.Mat4, lights *metadata.LightsUniform) {
	switch l.Kind {
	case LightDirectional:
		lights.AddDirectional(metadata.DirectionalLightRecord{
			Dir:   localForward(world).Normalize(),
			Color: l.Color,
		})
	case LightPoint:
		lights.AddPoint(metadata.PointLightRecord{
			Pos:      world.Translation(),
			Color:    l.Color,
			Distance: l.Distance,
			Decay:    l.Decay,
		})
	case LightSpot:
		lights.AddSpot(metadata.SpotLightRecord{
			Pos:         world.Translation(),
			Dir:         localForward(world),
			Color:       l.Color,
			Decay:       l.Decay,
			ConeCos:     l.ConeCos,
			PenumbraCos: l.PenumbraCos,
			Distance:    l.Distance,
		})
	case LightAmbient:
		lights.AddAmbient(metadata.AmbientLightRecord{Color: l.Color})
	}
}

func localForward(world math.Mat4) math.Vec3 {
	return world.ScaleRotation().MulVec4(math.NewVec4(0, 0, -1, 0)).ToVec3()
}
