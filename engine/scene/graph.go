// Package scene holds the scene graph: an arena of nodes, each with a
// transform, ordered children and optional renderable and light
// capabilities.
package scene

import (
	"fmt"

	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/math"
	"github.com/spaghettifunk/cgengine/engine/renderer"
	"github.com/spaghettifunk/cgengine/engine/resources"
)

// NodeID indexes a node in its Graph. Ids are never reused.
type NodeID int

const (
	/** @brief The root node, created with every graph. */
	Root NodeID = 0
	/** @brief Returned alongside errors; never a valid node. */
	InvalidNode NodeID = -1
)

/**
 * @brief The renderable capability of a node. The geometry and material
 * are owned by the node and released when it is removed.
 */
type Renderable struct {
	Geometry *resources.Geometry
	Material *resources.Material
}

type node struct {
	alive     bool
	name      string
	transform *math.Transform
	// world is parent.world × local, refreshed by Prepare
	world    math.Mat4
	parent   NodeID
	children []NodeID

	renderable *Renderable
	light      *Light
}

/**
 * @brief A tree of nodes stored in a flat arena. Children keep insertion
 * order, which fixes traversal order and therefore light array slots.
 */
type Graph struct {
	nodes []node
	live  int
}

func NewGraph() *Graph {
	g := &Graph{}
	g.nodes = append(g.nodes, node{
		alive:     true,
		name:      "root",
		transform: math.NewTransform(),
		world:     math.NewMat4Identity(),
		parent:    InvalidNode,
	})
	g.live = 1
	return g
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].alive
}

func (g *Graph) get(id NodeID) (*node, error) {
	if !g.valid(id) {
		return nil, fmt.Errorf("node %d: %w", id, core.ErrInvalidNode)
	}
	return &g.nodes[id], nil
}

func (g *Graph) add(parent NodeID, name string, renderable *Renderable, light *Light) (NodeID, error) {
	if !g.valid(parent) {
		return InvalidNode, fmt.Errorf("parent %d: %w", parent, core.ErrInvalidNode)
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{
		alive:      true,
		name:       name,
		transform:  math.NewTransform(),
		world:      math.NewMat4Identity(),
		parent:     parent,
		renderable: renderable,
		light:      light,
	})
	g.nodes[parent].children = append(g.nodes[parent].children, id)
	g.live++
	return id, nil
}

// AddEmpty adds a grouping node under parent.
func (g *Graph) AddEmpty(parent NodeID, name string) (NodeID, error) {
	return g.add(parent, name, nil, nil)
}

/**
 * @brief Adds a node drawn with geometry and material. Both must be
 * uninitialized; Initialize sets them up against the graphics context.
 */
func (g *Graph) AddEntity(parent NodeID, name string, geometry *resources.Geometry, material *resources.Material) (NodeID, error) {
	if geometry == nil || material == nil {
		return InvalidNode, fmt.Errorf("entity %q needs geometry and material: %w", name, core.ErrInvalidNode)
	}
	return g.add(parent, name, &Renderable{Geometry: geometry, Material: material}, nil)
}

// AddLight adds a light node of any kind.
func (g *Graph) AddLight(parent NodeID, name string, light Light) (NodeID, error) {
	return g.add(parent, name, nil, &light)
}

func (g *Graph) AddDirectional(parent NodeID, color math.Color) (NodeID, error) {
	return g.AddLight(parent, "directional", NewDirectionalLight(color))
}

func (g *Graph) AddPoint(parent NodeID, color math.Color, distance, decay float32) (NodeID, error) {
	return g.AddLight(parent, "point", NewPointLight(color, distance, decay))
}

func (g *Graph) AddSpot(parent NodeID, color math.Color, cone, penumbra, distance, decay float32) (NodeID, error) {
	return g.AddLight(parent, "spot", NewSpotLight(color, cone, penumbra, distance, decay))
}

func (g *Graph) AddAmbient(parent NodeID, color math.Color) (NodeID, error) {
	return g.AddLight(parent, "ambient", NewAmbientLight(color))
}

// Len returns the number of live nodes, root included.
func (g *Graph) Len() int {
	return g.live
}

func (g *Graph) Contains(id NodeID) bool {
	return g.valid(id)
}

// Transform returns the node's local transform for callers to mutate.
// nil for an unknown node.
func (g *Graph) Transform(id NodeID) *math.Transform {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].transform
}

// World returns the world matrix computed by the last Prepare.
func (g *Graph) World(id NodeID) math.Mat4 {
	if !g.valid(id) {
		return math.NewMat4Identity()
	}
	return g.nodes[id].world
}

func (g *Graph) Name(id NodeID) string {
	if !g.valid(id) {
		return ""
	}
	return g.nodes[id].name
}

func (g *Graph) Parent(id NodeID) NodeID {
	if !g.valid(id) {
		return InvalidNode
	}
	return g.nodes[id].parent
}

// Children returns a copy of the node's children in draw order.
func (g *Graph) Children(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	return append([]NodeID(nil), g.nodes[id].children...)
}

func (g *Graph) Renderable(id NodeID) *Renderable {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].renderable
}

func (g *Graph) Light(id NodeID) *Light {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].light
}

// Find returns the first node named name in traversal order.
func (g *Graph) Find(name string) (NodeID, bool) {
	found := InvalidNode
	g.Walk(func(id NodeID) bool {
		if g.nodes[id].name == name {
			found = id
			return false
		}
		return true
	})
	return found, found != InvalidNode
}

/**
 * @brief Visits every node depth first, parents before children, siblings
 * in insertion order. Returning false from fn stops the walk.
 */
func (g *Graph) Walk(fn func(id NodeID) bool) {
	g.walk(Root, fn)
}

func (g *Graph) walk(id NodeID, fn func(id NodeID) bool) bool {
	if !fn(id) {
		return false
	}
	for _, child := range g.nodes[id].children {
		if !g.walk(child, fn) {
			return false
		}
	}
	return true
}

// Reparent moves id and its subtree under parent, appended last.
func (g *Graph) Reparent(id, parent NodeID) error {
	if id == Root {
		return fmt.Errorf("cannot reparent root: %w", core.ErrInvalidNode)
	}
	if _, err := g.get(id); err != nil {
		return err
	}
	if _, err := g.get(parent); err != nil {
		return err
	}
	for p := parent; p != InvalidNode; p = g.nodes[p].parent {
		if p == id {
			return fmt.Errorf("node %d is an ancestor of %d: %w", id, parent, core.ErrInvalidNode)
		}
	}
	g.detach(id)
	g.nodes[id].parent = parent
	g.nodes[parent].children = append(g.nodes[parent].children, id)
	return nil
}

func (g *Graph) detach(id NodeID) {
	parent := &g.nodes[g.nodes[id].parent]
	for i, child := range parent.children {
		if child == id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

/**
 * @brief Removes id and its whole subtree, releasing the GPU resources of
 * every initialized renderable in it. ctx may be nil only when nothing in
 * the subtree was initialized.
 */
func (g *Graph) Remove(ctx renderer.Context, id NodeID) error {
	if id == Root {
		return fmt.Errorf("cannot remove root: %w", core.ErrInvalidNode)
	}
	if _, err := g.get(id); err != nil {
		return err
	}
	g.detach(id)

	var doomed []NodeID
	g.walk(id, func(n NodeID) bool {
		doomed = append(doomed, n)
		return true
	})
	for _, n := range doomed {
		if r := g.nodes[n].renderable; r != nil {
			if ctx != nil {
				r.release(ctx)
			} else if r.initialized() {
				core.LogWarn("node %d removed without a context, its GPU resources leak", n)
			}
		}
		g.nodes[n] = node{parent: InvalidNode}
		g.live--
	}
	core.LogDebug("removed %d scene nodes", len(doomed))
	return nil
}
