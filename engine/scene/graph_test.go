package scene

import (
	"testing"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer/recorder"
	"github.com/spaghettifunk/cgengine/engine/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTriangle(t *testing.T) *resources.Geometry {
	t.Helper()
	g, err := resources.NewGeometry(resources.GeometryConfig{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:      []float32{0, 0, 1, 0, 0, 1},
		Indices:  []uint16{0, 1, 2},
	})
	require.NoError(t, err)
	return g
}

func addEntity(t *testing.T, g *Graph, parent NodeID, name string) NodeID {
	t.Helper()
	id, err := g.AddEntity(parent, name, newTriangle(t), resources.NewMaterial(name, "vs", "fs", nil))
	require.NoError(t, err)
	return id
}

func TestGraphStructure(t *testing.T) {
	g := NewGraph()
	assert.Equal(t, 1, g.Len())
	assert.True(t, g.Contains(Root))
	assert.Equal(t, InvalidNode, g.Parent(Root))

	a, err := g.AddEmpty(Root, "a")
	require.NoError(t, err)
	b, err := g.AddEmpty(a, "b")
	require.NoError(t, err)
	c, err := g.AddEmpty(Root, "c")
	require.NoError(t, err)

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, []NodeID{a, c}, g.Children(Root))
	assert.Equal(t, a, g.Parent(b))
	assert.Equal(t, "b", g.Name(b))

	var order []NodeID
	g.Walk(func(id NodeID) bool {
		order = append(order, id)
		return true
	})
	assert.Equal(t, []NodeID{Root, a, b, c}, order)

	id, ok := g.Find("c")
	assert.True(t, ok)
	assert.Equal(t, c, id)
	_, ok = g.Find("missing")
	assert.False(t, ok)
}

func TestGraphInvalidNodes(t *testing.T) {
	g := NewGraph()
	_, err := g.AddEmpty(NodeID(42), "orphan")
	assert.ErrorIs(t, err, core.ErrInvalidNode)

	_, err = g.AddEntity(Root, "bare", nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidNode)

	assert.ErrorIs(t, g.Remove(nil, Root), core.ErrInvalidNode)
	assert.ErrorIs(t, g.Remove(nil, NodeID(7)), core.ErrInvalidNode)
	assert.Nil(t, g.Transform(NodeID(7)))
	assert.Nil(t, g.Children(InvalidNode))
}

func TestGraphReparent(t *testing.T) {
	g := NewGraph()
	a, _ := g.AddEmpty(Root, "a")
	b, _ := g.AddEmpty(a, "b")
	c, _ := g.AddEmpty(Root, "c")

	assert.ErrorIs(t, g.Reparent(a, b), core.ErrInvalidNode)
	assert.ErrorIs(t, g.Reparent(Root, c), core.ErrInvalidNode)

	require.NoError(t, g.Reparent(b, c))
	assert.Empty(t, g.Children(a))
	assert.Equal(t, []NodeID{b}, g.Children(c))
	assert.Equal(t, c, g.Parent(b))
}

func TestGraphRemoveReleasesResources(t *testing.T) {
	ctx := recorder.New()
	g := NewGraph()
	group, _ := g.AddEmpty(Root, "group")
	addEntity(t, g, group, "first")
	addEntity(t, g, group, "second")
	keep := addEntity(t, g, Root, "keep")
	_, err := g.AddDirectional(group, math.NewColorRGB(1, 1, 1))
	require.NoError(t, err)

	require.NoError(t, g.Initialize(ctx, nil))
	// 4 buffers and 1 program per entity
	assert.Equal(t, 12, ctx.LiveBuffers())
	assert.Equal(t, 3, ctx.LivePrograms())

	require.NoError(t, g.Remove(ctx, group))
	assert.Equal(t, 4, ctx.LiveBuffers())
	assert.Equal(t, 1, ctx.LivePrograms())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []NodeID{keep}, g.Children(Root))
	assert.False(t, g.Contains(group))

	lights := newLights()
	g.SearchLight(lights)
	assert.Equal(t, [4]int{0, 0, 0, 0}, lights.Counts())
}

func TestGraphRemoveUninitialized(t *testing.T) {
	g := NewGraph()
	e := addEntity(t, g, Root, "e")
	require.NoError(t, g.Remove(nil, e))
	assert.Equal(t, 1, g.Len())
}
