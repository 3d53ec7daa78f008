package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Graph owns every live node of a session.
type Graph struct {
	nodes map[uuid.UUID]*Node
	order []*Node
}

func NewGraph() *Graph {
	return &Graph{nodes: make(map[uuid.UUID]*Node)}
}

// NewNode creates a root node at pos.
func (g *Graph) NewNode(name string, pos mgl64.Vec3) *Node {
	n := &Node{id: uuid.New(), name: name, graph: g, local: pos}
	g.nodes[n.id] = n
	g.order = append(g.order, n)
	return n
}

func (g *Graph) Lookup(id uuid.UUID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

func (g *Graph) Len() int { return len(g.nodes) }

// Nodes lists live nodes in creation order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.order {
		if !n.disposed {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) forget(n *Node) {
	delete(g.nodes, n.id)
	for i, o := range g.order {
		if o == n {
			g.order = append(g.order[:i], g.order[i+1:]...)
			return
		}
	}
}
