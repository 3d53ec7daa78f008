package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbsolutePositionThroughParents(t *testing.T) {
	g := NewGraph()
	root := g.NewNode("collider", mgl64.Vec3{10, 0.6, 0})
	visual := g.NewNode("visual", mgl64.Vec3{0, 0, 0})
	hint := g.NewNode("hint", mgl64.Vec3{0, 0.6, 0})

	require.NoError(t, visual.SetParent(root))
	require.NoError(t, hint.SetParent(visual))

	assert.Equal(t, mgl64.Vec3{10, 1.2, 0}, hint.AbsolutePosition())
	assert.Equal(t, root, visual.Parent())
	assert.Len(t, root.Children(), 1)
}

func TestReparentMovesChild(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a", mgl64.Vec3{1, 0, 0})
	b := g.NewNode("b", mgl64.Vec3{5, 0, 0})
	c := g.NewNode("c", mgl64.Vec3{0, 1, 0})

	require.NoError(t, c.SetParent(a))
	require.NoError(t, c.SetParent(b))
	assert.Empty(t, a.Children())
	assert.Equal(t, mgl64.Vec3{5, 1, 0}, c.AbsolutePosition())

	require.NoError(t, c.SetParent(nil))
	assert.Empty(t, b.Children())
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, c.AbsolutePosition())
}

func TestSetParentRejectsCycles(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a", mgl64.Vec3{})
	b := g.NewNode("b", mgl64.Vec3{})
	require.NoError(t, b.SetParent(a))

	assert.ErrorIs(t, a.SetParent(b), ErrCycle)
	assert.ErrorIs(t, a.SetParent(a), ErrCycle)
}

func TestDisposeSubtree(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a", mgl64.Vec3{})
	b := g.NewNode("b", mgl64.Vec3{})
	c := g.NewNode("c", mgl64.Vec3{})
	require.NoError(t, b.SetParent(a))
	require.NoError(t, c.SetParent(b))

	b.Dispose()

	assert.True(t, b.Disposed())
	assert.True(t, c.Disposed())
	assert.Empty(t, a.Children())
	assert.Equal(t, 1, g.Len())
	_, ok := g.Lookup(c.ID())
	assert.False(t, ok)
	assert.ErrorIs(t, c.SetParent(a), ErrDisposed)
	assert.Equal(t, []*Node{a}, g.Nodes())
}
