package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

var (
	ErrDisposed = errors.New("node is disposed")
	ErrCycle    = errors.New("parenting would create a cycle")
)

// Node is a transform in the scene graph. Its position is local to its parent,
// or absolute when it has none.
type Node struct {
	id       uuid.UUID
	name     string
	graph    *Graph
	local    mgl64.Vec3
	parent   *Node
	children []*Node
	disposed bool
}

func (n *Node) ID() uuid.UUID              { return n.id }
func (n *Node) Name() string               { return n.name }
func (n *Node) Parent() *Node              { return n.parent }
func (n *Node) Position() mgl64.Vec3       { return n.local }
func (n *Node) SetPosition(pos mgl64.Vec3) { n.local = pos }
func (n *Node) Disposed() bool             { return n.disposed }

func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AbsolutePosition resolves the node's position through its parent chain.
func (n *Node) AbsolutePosition() mgl64.Vec3 {
	pos := n.local
	for p := n.parent; p != nil; p = p.parent {
		pos = pos.Add(p.local)
	}
	return pos
}

// SetParent attaches n to parent, or detaches it when parent is nil. The local
// position is kept as is, so callers that want to keep the absolute position
// must adjust it themselves.
func (n *Node) SetParent(parent *Node) error {
	if n.disposed || (parent != nil && parent.disposed) {
		return ErrDisposed
	}
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return ErrCycle
		}
	}
	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = parent
	if parent != nil {
		parent.children = append(parent.children, n)
	}
	return nil
}

// Dispose detaches the node and disposes its whole subtree.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	for _, c := range n.children {
		c.parent = nil
		c.Dispose()
	}
	n.children = nil
	n.disposed = true
	if n.graph != nil {
		n.graph.forget(n)
	}
}

func (n *Node) removeChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}
