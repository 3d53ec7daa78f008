package physics

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capsuleParams = BodyParams{
	Capsule:       Capsule{Height: 1.2, Radius: 0.35},
	Mass:          1,
	Friction:      0.8,
	LinearDamping: 0.3,
}

func TestPlanarHelpers(t *testing.T) {
	a := mgl64.Vec3{0, 10, 0}
	b := mgl64.Vec3{3, -4, 4}
	assert.InDelta(t, 5.0, PlanarDistance(a, b), 1e-12)
	assert.Equal(t, mgl64.Vec2{3, 4}, Planar(b))
	assert.Equal(t, mgl64.Vec3{7, -4, 8}, WithPlanar(b, mgl64.Vec2{7, 8}))
}

func TestReadinessOneShot(t *testing.T) {
	var zero Readiness
	assert.False(t, zero.Ready())

	r := NewReadiness()
	assert.False(t, r.Ready())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve()
		}()
	}
	wg.Wait()

	assert.True(t, r.Ready())
	select {
	case <-r.Done():
	default:
		t.Fatal("done channel not closed")
	}
}

func TestSimpleEngineRequiresReadiness(t *testing.T) {
	e := NewSimpleEngine(SimpleConfig{Gravity: DefaultGravity})
	_, err := e.CreateBody(mgl64.Vec3{}, capsuleParams)
	assert.ErrorIs(t, err, ErrNotReady)

	e.Readiness().Resolve()
	body, err := e.CreateBody(mgl64.Vec3{0, 3, 0}, capsuleParams)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Bodies())
	assert.Equal(t, mgl64.Vec3{0, 3, 0}, body.Position())
}

func TestSimpleEngineRejectsBadParams(t *testing.T) {
	e := NewSimpleEngine(SimpleConfig{})
	e.Readiness().Resolve()

	bad := capsuleParams
	bad.Mass = 0
	_, err := e.CreateBody(mgl64.Vec3{}, bad)
	assert.ErrorIs(t, err, ErrInvalidParams)

	bad = capsuleParams
	bad.Capsule.Height = 0.5
	_, err = e.CreateBody(mgl64.Vec3{}, bad)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestSimpleEngineFallsToGround(t *testing.T) {
	e := NewSimpleEngine(SimpleConfig{Gravity: DefaultGravity})
	e.Readiness().Resolve()
	body, err := e.CreateBody(mgl64.Vec3{1, 2, 1}, capsuleParams)
	require.NoError(t, err)

	for i := 0; i < 240; i++ {
		e.Step(1.0 / 60)
	}

	assert.InDelta(t, 0.6, body.Position()[1], 1e-9)
	assert.InDelta(t, 1.0, body.Position()[0], 1e-9)
	assert.InDelta(t, 1.0, body.Position()[2], 1e-9)
}

func TestSimpleEngineKeepsPlanarVelocityMoving(t *testing.T) {
	e := NewSimpleEngine(SimpleConfig{Gravity: DefaultGravity})
	e.Readiness().Resolve()
	body, err := e.CreateBody(mgl64.Vec3{0, 0.6, 0}, capsuleParams)
	require.NoError(t, err)

	body.SetLinearVelocity(mgl64.Vec3{3, 0, 0})
	e.Step(0.1)

	assert.Greater(t, body.Position()[0], 0.0)
	assert.InDelta(t, 0.0, body.Position()[2], 1e-12)
}

func TestSimpleEngineObstaclePushOut(t *testing.T) {
	e := NewSimpleEngine(SimpleConfig{})
	e.Readiness().Resolve()
	e.AddObstacle(mgl64.Vec3{2, 0, 0}, 1)
	body, err := e.CreateBody(mgl64.Vec3{0, 0.6, 0}, capsuleParams)
	require.NoError(t, err)

	body.SetLinearVelocity(mgl64.Vec3{10, 0, 0})
	e.Step(0.1)

	assert.InDelta(t, 2-1.35, body.Position()[0], 1e-9)
	assert.LessOrEqual(t, body.LinearVelocity()[0], 0.0)
}

func TestSimpleEngineStepBeforeReadyIsNoop(t *testing.T) {
	e := NewSimpleEngine(SimpleConfig{Gravity: DefaultGravity})
	e.Step(1)
	assert.Equal(t, 0, e.Bodies())
}
