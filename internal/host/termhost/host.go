// Package termhost plays a session in the terminal: a top-down view of the
// play area drawn with tcell and keyboard control. Terminals report key
// presses and repeats but no releases, so a held direction is released once
// no repeat has arrived within the hold window.
package termhost

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/courier/internal/core/events"
	"github.com/zeusync/courier/internal/core/events/bus"
	"github.com/zeusync/courier/internal/core/input"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/session"
)

// ErrQuit is returned by Run when the player quits.
var ErrQuit = errors.New("player quit")

// DefaultHold outlasts the usual keyboard repeat delay.
const DefaultHold = 600 * time.Millisecond

type Options struct {
	Interval time.Duration
	Hold     time.Duration
}

type Host struct {
	sess   *session.Session
	screen tcell.Screen
	chime  Chime
	logger log.Log
	opts   Options

	held   map[string]time.Time
	status string
}

// OpenScreen initializes the controlling terminal.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err = screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// New takes an initialized screen; Run finalizes it. chime may be nil.
func New(sess *session.Session, screen tcell.Screen, chime Chime, opts Options, logger log.Log) (*Host, error) {
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	if chime == nil {
		chime = Silent{}
	}
	h := &Host{
		sess:   sess,
		screen: screen,
		chime:  chime,
		logger: logger.With(log.String("component", "termhost")),
		opts:   opts,
		held:   make(map[string]time.Time),
		status: "WASD/arrows to drive, space or e to pick up and deliver, esc to quit",
	}
	if _, err := sess.Bus().SubscribeAll(h.notice); err != nil {
		return nil, err
	}
	return h, nil
}

// Run drives the session until ctx is done or the player quits.
func (h *Host) Run(ctx context.Context) error {
	defer h.screen.Fini()

	pending := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case pending <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(h.opts.Interval)
	defer ticker.Stop()
	dt := h.opts.Interval.Seconds()

	h.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-pending:
			if !h.handleEvent(ev, time.Now()) {
				return ErrQuit
			}
		case now := <-ticker.C:
			h.tick(now, dt)
		}
	}
}

// handleEvent reports false when the player asked to quit.
func (h *Host) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
			return false
		}
		if name, ok := keyName(ev); ok {
			h.press(name, now)
		}
	case *tcell.EventResize:
		h.screen.Sync()
		h.draw()
	}
	return true
}

func (h *Host) press(key string, now time.Time) {
	if _, held := h.held[key]; held {
		h.held[key] = now.Add(h.opts.Hold)
		return
	}
	h.held[key] = now.Add(h.opts.Hold)
	if out, triggered := h.sess.HandleKey(input.Event{Key: key, Down: true}); triggered {
		h.logger.Debug("trigger", log.Stringer("outcome", out))
	}
}

// release lets go of every key whose hold window ended before now.
func (h *Host) release(now time.Time) {
	for key, until := range h.held {
		if now.After(until) {
			delete(h.held, key)
			h.sess.HandleKey(input.Event{Key: key, Down: false})
		}
	}
}

func (h *Host) tick(now time.Time, dt float64) {
	h.release(now)
	if err := h.sess.Advance(dt); err != nil {
		h.logger.Warn("tick failed", log.Uint64("tick", h.sess.Tick()), log.Error(err))
	}
	h.draw()
}

func (h *Host) notice(e bus.Event) error {
	h.status = describe(e)
	if e.Type() == events.TypeDelivered {
		h.chime.Play()
	}
	return nil
}

func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return "arrowup", true
	case tcell.KeyDown:
		return "arrowdown", true
	case tcell.KeyLeft:
		return "arrowleft", true
	case tcell.KeyRight:
		return "arrowright", true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space", true
		}
		return string(ev.Rune()), true
	default:
		return "", false
	}
}
