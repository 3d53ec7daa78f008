package physics

import "sync"

// Readiness is a one-shot signal. It may be resolved from any goroutine and
// polled from the tick loop without blocking. The zero value is unresolved.
type Readiness struct {
	init    sync.Once
	resolve sync.Once
	done    chan struct{}
}

func NewReadiness() *Readiness {
	r := &Readiness{}
	r.ch()
	return r
}

func (r *Readiness) ch() chan struct{} {
	r.init.Do(func() { r.done = make(chan struct{}) })
	return r.done
}

// Resolve marks the subsystem ready. Later calls are no-ops.
func (r *Readiness) Resolve() {
	r.resolve.Do(func() { close(r.ch()) })
}

// Done is closed once Resolve has been called.
func (r *Readiness) Done() <-chan struct{} {
	return r.ch()
}

// Ready reports whether Resolve has been called.
func (r *Readiness) Ready() bool {
	select {
	case <-r.ch():
		return true
	default:
		return false
	}
}
