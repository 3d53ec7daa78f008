package systems

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// System is a unit of per-frame game logic.
type System interface {
	Name() string
	Phase() ExecutionPhase
	Update(deltaTime float64) error
}

// Finisher is implemented by systems that have a terminal state. Once
// Finished reports true the runner disables the system for good.
type Finisher interface {
	Finished() bool
}

// ExecutionPhase defines when a system runs within a tick
type ExecutionPhase uint8

const (
	PhasePreUpdate ExecutionPhase = iota
	PhaseUpdate
	PhaseFixedUpdate
	PhaseLateUpdate
)

func (p ExecutionPhase) String() string {
	switch p {
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhaseFixedUpdate:
		return "fixed_update"
	case PhaseLateUpdate:
		return "late_update"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// StateIdentity represents the current state of a registered system
type StateIdentity uint8

const (
	StateEnabled StateIdentity = iota
	StateDisabled
	StateFinished
)

var (
	ErrSystemExists   = errors.New("system already registered")
	ErrSystemNotFound = errors.New("system not found")
)

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount     uint64
	TotalExecutionTime time.Duration
	MaxExecutionTime   time.Duration
	ErrorCount         uint64
	LastError          error
}

type entry struct {
	system  System
	state   StateIdentity
	order   int
	metrics Metrics
}

// Runner executes registered systems once per tick, ordered by phase and then
// by registration order. It is not safe for concurrent use; the tick loop owns it.
type Runner struct {
	entries []*entry
	byName  map[string]*entry
	seq     int
	frames  uint64
}

func NewRunner() *Runner {
	return &Runner{byName: make(map[string]*entry)}
}

func (r *Runner) Register(s System) error {
	if _, ok := r.byName[s.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrSystemExists, s.Name())
	}
	e := &entry{system: s, order: r.seq}
	r.seq++
	r.byName[s.Name()] = e
	r.entries = append(r.entries, e)
	sort.SliceStable(r.entries, func(i, j int) bool {
		a, b := r.entries[i], r.entries[j]
		if a.system.Phase() != b.system.Phase() {
			return a.system.Phase() < b.system.Phase()
		}
		return a.order < b.order
	})
	return nil
}

func (r *Runner) SetEnabled(name string, enabled bool) error {
	e, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
	}
	if e.state == StateFinished {
		return nil
	}
	if enabled {
		e.state = StateEnabled
	} else {
		e.state = StateDisabled
	}
	return nil
}

func (r *Runner) State(name string) (StateIdentity, bool) {
	e, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return e.state, true
}

func (r *Runner) Metrics(name string) (Metrics, bool) {
	e, ok := r.byName[name]
	if !ok {
		return Metrics{}, false
	}
	return e.metrics, true
}

// ExecutionOrder lists system names in the order Tick runs them.
func (r *Runner) ExecutionOrder() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.system.Name()
	}
	return out
}

func (r *Runner) Frames() uint64 { return r.frames }

// Tick runs every enabled system once. A failing system does not stop the
// ones after it; all errors are joined.
func (r *Runner) Tick(deltaTime float64) error {
	r.frames++
	var all error
	for _, e := range r.entries {
		if e.state != StateEnabled {
			continue
		}
		start := time.Now()
		err := e.system.Update(deltaTime)
		elapsed := time.Since(start)

		e.metrics.ExecutionCount++
		e.metrics.TotalExecutionTime += elapsed
		if elapsed > e.metrics.MaxExecutionTime {
			e.metrics.MaxExecutionTime = elapsed
		}
		if err != nil {
			e.metrics.ErrorCount++
			e.metrics.LastError = err
			all = errors.Join(all, fmt.Errorf("%s: %w", e.system.Name(), err))
		}
		if f, ok := e.system.(Finisher); ok && f.Finished() {
			e.state = StateFinished
		}
	}
	return all
}
