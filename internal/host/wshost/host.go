// Package wshost serves a session over websocket. Clients send key edges as
// JSON and receive a snapshot after every tick plus the gameplay notices
// published during it.
package wshost

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/courier/internal/core/events/bus"
	"github.com/zeusync/courier/internal/core/input"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/session"
)

var ErrHostClosed = errors.New("host is closed")

const (
	MessageSnapshot = "snapshot"
	MessageEvent    = "event"

	sendBuffer   = 16
	writeTimeout = 2 * time.Second
)

// Envelope is every server-to-client message.
type Envelope struct {
	Type     string            `json:"type"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
	Event    string            `json:"event,omitempty"`
	Data     any               `json:"data,omitempty"`
}

type command struct {
	ev input.Event
}

type client struct {
	conn *websocket.Conn
	send chan []byte

	// held keys of this client; readLoop only.
	held map[string]struct{}
}

// Host runs the tick loop. Only the Run goroutine touches the session;
// connection goroutines talk to it through the command channel.
type Host struct {
	sess     *session.Session
	logger   log.Log
	interval time.Duration
	upgrader websocket.Upgrader

	commands chan command
	done     chan struct{}

	mu      sync.Mutex
	clients map[*client]struct{}

	// notices collects bus events during a tick; Run goroutine only.
	notices []Envelope
}

func New(sess *session.Session, interval time.Duration, logger log.Log) (*Host, error) {
	h := &Host{
		sess:     sess,
		logger:   logger.With(log.String("component", "wshost")),
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		commands: make(chan command, 64),
		done:     make(chan struct{}),
		clients:  make(map[*client]struct{}),
	}
	if _, err := sess.Bus().SubscribeAll(h.collect); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Host) collect(e bus.Event) error {
	h.notices = append(h.notices, Envelope{Type: MessageEvent, Event: e.Type(), Data: e.Data()})
	return nil
}

func (h *Host) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is done.
func (h *Host) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	h.logger.Info("websocket host listening", log.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Run ticks the session until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	dt := h.interval.Seconds()

	for {
		select {
		case <-ctx.Done():
			h.closeClients()
			return nil
		case cmd := <-h.commands:
			h.apply(cmd)
		case <-ticker.C:
			h.drain()
			if err := h.sess.Advance(dt); err != nil {
				h.logger.Warn("tick failed", log.Uint64("tick", h.sess.Tick()), log.Error(err))
			}
			h.flush()
		}
	}
}

func (h *Host) apply(cmd command) {
	if out, triggered := h.sess.HandleKey(cmd.ev); triggered {
		h.logger.Debug("trigger", log.Stringer("outcome", out))
	}
}

func (h *Host) drain() {
	for {
		select {
		case cmd := <-h.commands:
			h.apply(cmd)
		default:
			return
		}
	}
}

func (h *Host) flush() {
	snap := h.sess.Snapshot()
	msgs := append(h.notices, Envelope{Type: MessageSnapshot, Snapshot: &snap})
	h.notices = h.notices[:0]

	for _, m := range msgs {
		raw, err := json.Marshal(m)
		if err != nil {
			h.logger.Error("encode message", log.String("type", m.Type), log.Error(err))
			continue
		}
		h.broadcast(raw)
	}
}

func (h *Host) broadcast(raw []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- raw:
		default:
			// slow client, skip this frame
		}
	}
}

func (h *Host) submit(cmd command) error {
	select {
	case <-h.done:
		return ErrHostClosed
	default:
	}
	select {
	case h.commands <- cmd:
		return nil
	case <-h.done:
		return ErrHostClosed
	}
}

func (h *Host) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer), held: make(map[string]struct{})}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("client connected", log.String("remote", conn.RemoteAddr().String()))

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Host) readLoop(c *client) {
	defer func() {
		h.drop(c)
		h.releaseHeld(c)
		h.logger.Info("client disconnected", log.String("remote", c.conn.RemoteAddr().String()))
	}()
	for {
		var ev input.Event
		if err := c.conn.ReadJSON(&ev); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("read failed", log.Error(err))
			}
			return
		}
		if ev.Down {
			c.held[ev.Key] = struct{}{}
		} else {
			delete(c.held, ev.Key)
		}
		if err := h.submit(command{ev: ev}); err != nil {
			return
		}
	}
}

// releaseHeld lifts only the keys c still holds, so other clients keep theirs.
func (h *Host) releaseHeld(c *client) {
	for key := range c.held {
		if err := h.submit(command{ev: input.Event{Key: key}}); err != nil {
			return
		}
	}
	clear(c.held)
}

func (h *Host) writeLoop(c *client) {
	for raw := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			h.drop(c)
			return
		}
	}
}

// drop unregisters c once; its send channel is closed so writeLoop ends.
func (h *Host) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	_ = c.conn.Close()
}

func (h *Host) closeClients() {
	h.mu.Lock()
	cs := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		cs = append(cs, c)
	}
	h.mu.Unlock()
	for _, c := range cs {
		h.drop(c)
	}
}
