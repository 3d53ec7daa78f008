package motion

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/courier/internal/core/agent"
	"github.com/zeusync/courier/internal/core/input"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/core/scene"
	"github.com/zeusync/courier/internal/core/systems/physics"
)

func pressed(cmds ...input.Command) *input.State {
	s := &input.State{}
	for _, c := range cmds {
		s.Press(c)
	}
	return s
}

func TestDirection(t *testing.T) {
	assert.Equal(t, mgl64.Vec2{0, -1}, Direction(pressed(input.Forward)))
	assert.Equal(t, mgl64.Vec2{0, 1}, Direction(pressed(input.Back)))
	assert.Equal(t, mgl64.Vec2{-1, 0}, Direction(pressed(input.Left)))
	assert.Equal(t, mgl64.Vec2{}, Direction(pressed()))

	diag := Direction(pressed(input.Forward, input.Right))
	assert.InDelta(t, 1.0, diag.Len(), 1e-12)
	assert.InDelta(t, math.Sqrt2/2, diag[0], 1e-12)
	assert.InDelta(t, -math.Sqrt2/2, diag[1], 1e-12)

	assert.Equal(t, mgl64.Vec2{}, Direction(pressed(input.Forward, input.Back)))
	assert.Equal(t, mgl64.Vec2{1, 0}, Direction(pressed(input.Forward, input.Back, input.Right)))
	assert.Equal(t, mgl64.Vec2{}, Direction(pressed(input.Forward, input.Back, input.Left, input.Right)))
}

type stubBody struct {
	vel mgl64.Vec3
}

func (b *stubBody) Position() mgl64.Vec3           { return mgl64.Vec3{} }
func (b *stubBody) LinearVelocity() mgl64.Vec3     { return b.vel }
func (b *stubBody) SetLinearVelocity(v mgl64.Vec3) { b.vel = v }
func (b *stubBody) LockAngular()                   {}
func (b *stubBody) AngularLocked() bool            { return true }

type bodyTarget struct{ body *stubBody }

func (t bodyTarget) Body() physics.Body              { return t.body }
func (t bodyTarget) Translate(delta mgl64.Vec3) bool { return false }

func TestPhysicsModeReplacesPlanarKeepsVertical(t *testing.T) {
	body := &stubBody{vel: mgl64.Vec3{7, -4.5, 7}}
	c := NewController(3)

	c.Advance(bodyTarget{body}, pressed(input.Right), 1.0/60)
	assert.Equal(t, mgl64.Vec3{3, -4.5, 0}, body.vel)

	c.Advance(bodyTarget{body}, pressed(), 1.0/60)
	assert.Equal(t, mgl64.Vec3{0, -4.5, 0}, body.vel)
}

func TestKinematicModeAddsDeltas(t *testing.T) {
	g := scene.NewGraph()
	a := agent.New(g.NewNode("agent", mgl64.Vec3{10, 0.5, 0}))
	c := NewController(3)

	c.Advance(a, pressed(input.Forward), 0.5)
	c.Advance(a, pressed(input.Right), 0.25)
	c.Advance(a, pressed(), 10)

	pos, ok := a.Position()
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{10.75, 0.5, -1.5}, pos[:], 1e-12)
}

func TestAdvanceAfterAttachDrivesBody(t *testing.T) {
	g := scene.NewGraph()
	e := physics.NewSimpleEngine(physics.SimpleConfig{Gravity: physics.DefaultGravity})
	a := agent.New(g.NewNode("agent", mgl64.Vec3{0, 0.6, 0}))
	at := agent.NewAttacher(e, g, physics.BodyParams{
		Capsule: physics.Capsule{Height: 1.2, Radius: 0.35},
		Mass:    1,
	}, log.Nop())
	c := NewController(3)

	c.Advance(a, pressed(input.Back), 1)
	pos, _ := a.Position()
	assert.InDelta(t, 3.0, pos[2], 1e-12)

	e.Readiness().Resolve()
	attached, err := at.Tick(a)
	require.NoError(t, err)
	require.True(t, attached)

	c.Advance(a, pressed(input.Back), 1)
	assert.Equal(t, mgl64.Vec3{0, 0, 3}, a.Body().LinearVelocity())

	pos, _ = a.Position()
	assert.InDelta(t, 3.0, pos[2], 1e-12)
}

func TestAdvanceWithoutRepresentationIsNoop(t *testing.T) {
	a := agent.New(nil)
	dir := NewController(3).Advance(a, pressed(input.Forward), 1)
	assert.Equal(t, mgl64.Vec2{0, -1}, dir)
	_, ok := a.Position()
	assert.False(t, ok)
}
