package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name  string
	phase ExecutionPhase
	log   *[]string
	err   error
	done  int
	calls int
}

func (r *recorder) Name() string          { return r.name }
func (r *recorder) Phase() ExecutionPhase { return r.phase }
func (r *recorder) Update(float64) error {
	r.calls++
	*r.log = append(*r.log, r.name)
	return r.err
}

type finishing struct{ *recorder }

func (f finishing) Finished() bool { return f.done > 0 && f.calls >= f.done }

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var calls []string
	r := NewRunner()
	require.NoError(t, r.Register(&recorder{name: "follow", phase: PhaseLateUpdate, log: &calls}))
	require.NoError(t, r.Register(&recorder{name: "motion", phase: PhaseUpdate, log: &calls}))
	require.NoError(t, r.Register(&recorder{name: "attach", phase: PhasePreUpdate, log: &calls}))
	require.NoError(t, r.Register(&recorder{name: "step", phase: PhaseFixedUpdate, log: &calls}))
	require.NoError(t, r.Register(&recorder{name: "sync", phase: PhaseLateUpdate, log: &calls}))

	require.NoError(t, r.Tick(0.016))
	assert.Equal(t, []string{"attach", "motion", "step", "follow", "sync"}, calls)
	assert.Equal(t, calls, r.ExecutionOrder())
	assert.Equal(t, uint64(1), r.Frames())
}

func TestRunnerRejectsDuplicates(t *testing.T) {
	var calls []string
	r := NewRunner()
	require.NoError(t, r.Register(&recorder{name: "motion", log: &calls}))
	assert.ErrorIs(t, r.Register(&recorder{name: "motion", log: &calls}), ErrSystemExists)
	assert.ErrorIs(t, r.SetEnabled("nope", false), ErrSystemNotFound)
}

func TestRunnerFinisherDisablesForGood(t *testing.T) {
	var calls []string
	r := NewRunner()
	f := finishing{&recorder{name: "attach", log: &calls, done: 3}}
	require.NoError(t, r.Register(f))

	for i := 0; i < 6; i++ {
		require.NoError(t, r.Tick(0.016))
	}
	assert.Equal(t, 3, f.calls)
	state, ok := r.State("attach")
	require.True(t, ok)
	assert.Equal(t, StateFinished, state)

	require.NoError(t, r.SetEnabled("attach", true))
	require.NoError(t, r.Tick(0.016))
	assert.Equal(t, 3, f.calls)
}

func TestRunnerDisableAndErrors(t *testing.T) {
	var calls []string
	r := NewRunner()
	boom := errors.New("boom")
	require.NoError(t, r.Register(&recorder{name: "bad", log: &calls, err: boom}))
	require.NoError(t, r.Register(&recorder{name: "good", log: &calls}))

	err := r.Tick(0.016)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"bad", "good"}, calls)

	m, ok := r.Metrics("bad")
	require.True(t, ok)
	assert.Equal(t, uint64(1), m.ErrorCount)
	assert.Equal(t, uint64(1), m.ExecutionCount)

	require.NoError(t, r.SetEnabled("bad", false))
	require.NoError(t, r.Tick(0.016))
	assert.Equal(t, []string{"bad", "good", "good"}, calls)
}
