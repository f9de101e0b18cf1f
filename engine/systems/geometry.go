package systems

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/resources"
)

/** @brief The largest vertex count addressable with uint16 indices. */
const MaxVertexCount int = 1 << 16

// geometryBuilder appends per-vertex data in lockstep.
type geometryBuilder struct {
	config *resources.GeometryConfig
}

func newGeometryBuilder(name string, vertexCount, indexCount int) *geometryBuilder {
	return &geometryBuilder{
		config: &resources.GeometryConfig{
			Name:       name,
			Vertices:   make([]float32, 0, vertexCount*3),
			Normals:    make([]float32, 0, vertexCount*3),
			UVs:        make([]float32, 0, vertexCount*2),
			Tangents:   make([]float32, 0, vertexCount*3),
			Bitangents: make([]float32, 0, vertexCount*3),
			Indices:    make([]uint16, 0, indexCount),
		},
	}
}

func (b *geometryBuilder) vertex(position, normal math.Vec3, uv math.Vec2, tangent, bitangent math.Vec3) {
	c := b.config
	c.Vertices = append(c.Vertices, position.Array()...)
	c.Normals = append(c.Normals, normal.Array()...)
	c.UVs = append(c.UVs, uv.Array()...)
	c.Tangents = append(c.Tangents, tangent.Array()...)
	c.Bitangents = append(c.Bitangents, bitangent.Array()...)
}

// quad emits the two counter-clockwise triangles of the last four vertices
// laid out as min/min, max/max, min/max, max/min.
func (b *geometryBuilder) quad() {
	offset := uint16(len(b.config.Vertices)/3 - 4)
	b.config.Indices = append(b.config.Indices,
		offset+0, offset+1, offset+2,
		offset+0, offset+3, offset+1,
	)
}

func nonZero(what string, v float32) float32 {
	if v == 0 {
		core.LogWarn("%s must be nonzero. Defaulting to one.", what)
		return 1.0
	}
	return v
}

/**
 * @brief Generates an XZ plane facing +Y, centred on the origin.
 *
 * @param width The extent along X. Must be non-zero.
 * @param depth The extent along Z. Must be non-zero.
 * @param xSegmentCount The number of segments along X. Must be positive.
 * @param zSegmentCount The number of segments along Z. Must be positive.
 * @param tileX The number of times the texture repeats along X.
 * @param tileY The number of times the texture repeats along Z.
 * @param name The name of the generated geometry.
 */
func GeneratePlaneConfig(width, depth float32, xSegmentCount, zSegmentCount uint32, tileX, tileY float32, name string) (*resources.GeometryConfig, error) {
	width = nonZero("width", width)
	depth = nonZero("depth", depth)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if zSegmentCount < 1 {
		core.LogWarn("zSegmentCount must be a positive number. Defaulting to one.")
		zSegmentCount = 1
	}
	// 4 verts per segment, no sharing
	vertexCount := int(xSegmentCount*zSegmentCount) * 4
	if vertexCount > MaxVertexCount {
		return nil, fmt.Errorf("plane %dx%d needs %d vertices: %w", xSegmentCount, zSegmentCount, vertexCount, core.ErrInvalidGeometry)
	}
	if name == "" {
		name = "plane"
	}

	b := newGeometryBuilder(name, vertexCount, int(xSegmentCount*zSegmentCount)*6)
	up := math.NewVec3(0, 1, 0)
	tangent := math.NewVec3(1, 0, 0)
	bitangent := math.NewVec3(0, 0, -1)

	segWidth := width / float32(xSegmentCount)
	segDepth := depth / float32(zSegmentCount)
	halfWidth := width * 0.5
	halfDepth := depth * 0.5
	for z := uint32(0); z < zSegmentCount; z++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := float32(x)*segWidth - halfWidth
			maxZ := halfDepth - float32(z)*segDepth
			maxX := minX + segWidth
			minZ := maxZ - segDepth
			minU := float32(x) / float32(xSegmentCount) * tileX
			minV := float32(z) / float32(zSegmentCount) * tileY
			maxU := float32(x+1) / float32(xSegmentCount) * tileX
			maxV := float32(z+1) / float32(zSegmentCount) * tileY

			b.vertex(math.NewVec3(minX, 0, maxZ), up, math.NewVec2(minU, minV), tangent, bitangent)
			b.vertex(math.NewVec3(maxX, 0, minZ), up, math.NewVec2(maxU, maxV), tangent, bitangent)
			b.vertex(math.NewVec3(minX, 0, minZ), up, math.NewVec2(minU, maxV), tangent, bitangent)
			b.vertex(math.NewVec3(maxX, 0, maxZ), up, math.NewVec2(maxU, minV), tangent, bitangent)
			b.quad()
		}
	}
	return b.config, nil
}

type cubeFace struct {
	// corners in min/min, max/max, min/max, max/min order
	corners   [4]math.Vec3
	normal    math.Vec3
	tangent   math.Vec3
	bitangent math.Vec3
}

/**
 * @brief Generates an axis aligned box centred on the origin with 4 vertices
 * per face so every face keeps flat normals.
 */
func GenerateCubeConfig(width, height, depth, tileX, tileY float32, name string) (*resources.GeometryConfig, error) {
	width = nonZero("width", width)
	height = nonZero("height", height)
	depth = nonZero("depth", depth)
	tileX = nonZero("tileX", tileX)
	tileY = nonZero("tileY", tileY)
	if name == "" {
		name = "cube"
	}

	minX, maxX := -width*0.5, width*0.5
	minY, maxY := -height*0.5, height*0.5
	minZ, maxZ := -depth*0.5, depth*0.5

	faces := []cubeFace{
		// front
		{
			corners:   [4]math.Vec3{{X: minX, Y: minY, Z: maxZ}, {X: maxX, Y: maxY, Z: maxZ}, {X: minX, Y: maxY, Z: maxZ}, {X: maxX, Y: minY, Z: maxZ}},
			normal:    math.NewVec3(0, 0, 1),
			tangent:   math.NewVec3(1, 0, 0),
			bitangent: math.NewVec3(0, 1, 0),
		},
		// back
		{
			corners:   [4]math.Vec3{{X: maxX, Y: minY, Z: minZ}, {X: minX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: minZ}, {X: minX, Y: minY, Z: minZ}},
			normal:    math.NewVec3(0, 0, -1),
			tangent:   math.NewVec3(-1, 0, 0),
			bitangent: math.NewVec3(0, 1, 0),
		},
		// left
		{
			corners:   [4]math.Vec3{{X: minX, Y: minY, Z: minZ}, {X: minX, Y: maxY, Z: maxZ}, {X: minX, Y: maxY, Z: minZ}, {X: minX, Y: minY, Z: maxZ}},
			normal:    math.NewVec3(-1, 0, 0),
			tangent:   math.NewVec3(0, 0, 1),
			bitangent: math.NewVec3(0, 1, 0),
		},
		// right
		{
			corners:   [4]math.Vec3{{X: maxX, Y: minY, Z: maxZ}, {X: maxX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: maxZ}, {X: maxX, Y: minY, Z: minZ}},
			normal:    math.NewVec3(1, 0, 0),
			tangent:   math.NewVec3(0, 0, -1),
			bitangent: math.NewVec3(0, 1, 0),
		},
		// bottom
		{
			corners:   [4]math.Vec3{{X: maxX, Y: minY, Z: maxZ}, {X: minX, Y: minY, Z: minZ}, {X: maxX, Y: minY, Z: minZ}, {X: minX, Y: minY, Z: maxZ}},
			normal:    math.NewVec3(0, -1, 0),
			tangent:   math.NewVec3(-1, 0, 0),
			bitangent: math.NewVec3(0, 0, -1),
		},
		// top
		{
			corners:   [4]math.Vec3{{X: minX, Y: maxY, Z: maxZ}, {X: maxX, Y: maxY, Z: minZ}, {X: minX, Y: maxY, Z: minZ}, {X: maxX, Y: maxY, Z: maxZ}},
			normal:    math.NewVec3(0, 1, 0),
			tangent:   math.NewVec3(1, 0, 0),
			bitangent: math.NewVec3(0, 0, -1),
		},
	}
	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: tileX, Y: tileY}, {X: 0, Y: tileY}, {X: tileX, Y: 0}}

	b := newGeometryBuilder(name, 4*6, 6*6)
	for _, f := range faces {
		for i, corner := range f.corners {
			b.vertex(corner, f.normal, uvs[i], f.tangent, f.bitangent)
		}
		b.quad()
	}
	return b.config, nil
}

/**
 * @brief Generates a UV sphere of the given radius. Rows split the azimuth,
 * columns split the polar angle; the seam column is duplicated so UVs wrap.
 */
func GenerateSphereConfig(radius float32, rows, columns uint32, name string) (*resources.GeometryConfig, error) {
	radius = nonZero("radius", radius)
	if rows < 3 {
		core.LogWarn("rows must be at least 3. Defaulting to 10.")
		rows = 10
	}
	if columns < 2 {
		core.LogWarn("columns must be at least 2. Defaulting to 10.")
		columns = 10
	}
	vertexCount := int((rows + 1) * (columns + 1))
	if vertexCount > MaxVertexCount {
		return nil, fmt.Errorf("sphere %dx%d needs %d vertices: %w", rows, columns, vertexCount, core.ErrInvalidGeometry)
	}
	if name == "" {
		name = "sphere"
	}

	b := newGeometryBuilder(name, vertexCount, int(rows*columns)*6)
	for i := uint32(0); i <= columns; i++ {
		theta := math.K_PI * float32(i) / float32(columns)
		sinT, cosT := math32.Sin(theta), math32.Cos(theta)
		for j := uint32(0); j <= rows; j++ {
			phi := 2 * math.K_PI * float32(j) / float32(rows)
			sinP, cosP := math32.Sin(phi), math32.Cos(phi)

			normal := math.NewVec3(sinT*sinP, cosT, sinT*cosP)
			tangent := math.NewVec3(-cosT*sinP, sinT, -cosT*cosP)
			bitangent := math.NewVec3(cosP, 0, -sinP)
			b.vertex(normal.MulScalar(radius), normal, math.NewVec2(float32(j)/float32(rows), 1-float32(i)/float32(columns)), tangent, bitangent)
		}
	}

	stride := uint16(rows + 1)
	for i := uint16(0); i < uint16(columns); i++ {
		for j := uint16(0); j < uint16(rows); j++ {
			a := i*stride + j
			c := (i+1)*stride + j
			b.config.Indices = append(b.config.Indices,
				a, c, a+1,
				a+1, c, c+1,
			)
		}
	}
	return b.config, nil
}

/**
 * @brief Generates a torus around the Z axis.
 *
 * @param radius Distance from the centre to the middle of the tube.
 * @param tube The tube radius.
 * @param radialSegments Segments around the tube.
 * @param tubularSegments Segments around the ring.
 */
func GenerateTorusConfig(radius, tube float32, radialSegments, tubularSegments uint32, name string) (*resources.GeometryConfig, error) {
	radius = nonZero("radius", radius)
	tube = nonZero("tube", tube)
	if radialSegments < 3 {
		core.LogWarn("radialSegments must be at least 3. Defaulting to 8.")
		radialSegments = 8
	}
	if tubularSegments < 3 {
		core.LogWarn("tubularSegments must be at least 3. Defaulting to 24.")
		tubularSegments = 24
	}
	vertexCount := int((radialSegments + 1) * (tubularSegments + 1))
	if vertexCount > MaxVertexCount {
		return nil, fmt.Errorf("torus %dx%d needs %d vertices: %w", radialSegments, tubularSegments, vertexCount, core.ErrInvalidGeometry)
	}
	if name == "" {
		name = "torus"
	}

	b := newGeometryBuilder(name, vertexCount, int(radialSegments*tubularSegments)*6)
	for j := uint32(0); j <= radialSegments; j++ {
		v := 2 * math.K_PI * float32(j) / float32(radialSegments)
		sinV, cosV := math32.Sin(v), math32.Cos(v)
		for i := uint32(0); i <= tubularSegments; i++ {
			u := 2 * math.K_PI * float32(i) / float32(tubularSegments)
			sinU, cosU := math32.Sin(u), math32.Cos(u)

			position := math.NewVec3((radius+tube*cosV)*cosU, (radius+tube*cosV)*sinU, tube*sinV)
			center := math.NewVec3(radius*cosU, radius*sinU, 0)
			normal := position.Sub(center).Normalize()
			tangent := math.NewVec3(-sinU, cosU, 0)
			bitangent := math.NewVec3(-sinV*cosU, -sinV*sinU, cosV)
			b.vertex(position, normal, math.NewVec2(float32(i)/float32(tubularSegments), float32(j)/float32(radialSegments)), tangent, bitangent)
		}
	}

	stride := uint16(tubularSegments + 1)
	for j := uint16(1); j <= uint16(radialSegments); j++ {
		for i := uint16(1); i <= uint16(tubularSegments); i++ {
			a := stride*j + i - 1
			bb := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			b.config.Indices = append(b.config.Indices,
				a, bb, d,
				bb, c, d,
			)
		}
	}
	return b.config, nil
}

// GenerateGeometry builds a primitive by kind with its default parameters.
// Known kinds are cube, plane, sphere and torus.
func GenerateGeometry(kind string) (*resources.Geometry, error) {
	var (
		config *resources.GeometryConfig
		err    error
	)
	switch kind {
	case "cube":
		config, err = GenerateCubeConfig(1, 1, 1, 1, 1, "")
	case "plane":
		config, err = GeneratePlaneConfig(1, 1, 1, 1, 1, 1, "")
	case "sphere":
		config, err = GenerateSphereConfig(0.5, 32, 32, "")
	case "torus":
		config, err = GenerateTorusConfig(0.5, 0.2, 16, 48, "")
	default:
		return nil, fmt.Errorf("unknown primitive %q: %w", kind, core.ErrInvalidGeometry)
	}
	if err != nil {
		return nil, err
	}
	return resources.NewGeometry(*config)
}
