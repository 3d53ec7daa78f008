package wshost

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/courier/internal/config"
	"github.com/zeusync/courier/internal/core/events"
	"github.com/zeusync/courier/internal/core/events/bus"
	"github.com/zeusync/courier/internal/core/input"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/core/systems/physics"
	"github.com/zeusync/courier/internal/session"
)

type received struct {
	Type     string            `json:"type"`
	Snapshot *session.Snapshot `json:"snapshot"`
	Event    string            `json:"event"`
	Data     json.RawMessage   `json:"data"`
}

func startHost(t *testing.T) (*websocket.Conn, func()) {
	conn, _, stop := startHostURL(t)
	return conn, stop
}

func startHostURL(t *testing.T) (*websocket.Conn, string, func()) {
	t.Helper()
	cfg := config.Default()
	cfg.World.AgentStart = config.Vec3{10, 0.5, 10}

	sess, err := session.Build(cfg, physics.NewSimpleEngine(cfg.Engine()), bus.New(), log.Nop())
	require.NoError(t, err)
	h, err := New(sess, 5*time.Millisecond, log.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(h.Handler())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)

	return conn, u, func() {
		_ = conn.Close()
		cancel()
		require.NoError(t, <-done)
		srv.Close()
		assert.ErrorIs(t, h.submit(command{}), ErrHostClosed)
	}
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(received) bool) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var m received
		require.NoError(t, conn.ReadJSON(&m))
		if match(m) {
			return m
		}
	}
}

func TestWebSocketStreamsSnapshots(t *testing.T) {
	conn, stop := startHost(t)
	defer stop()

	first := readUntil(t, conn, func(m received) bool { return m.Type == MessageSnapshot })
	require.NotNil(t, first.Snapshot)
	assert.Len(t, first.Snapshot.Items, 3)
	assert.Equal(t, "kinematic", first.Snapshot.Agent.Mode)

	require.NoError(t, conn.WriteJSON(input.Event{Key: "d", Down: true}))
	moved := readUntil(t, conn, func(m received) bool {
		return m.Type == MessageSnapshot && m.Snapshot.Agent.Position[0] > 10.2
	})
	assert.Greater(t, moved.Snapshot.Tick, first.Snapshot.Tick)
}

func TestWebSocketPickupNotice(t *testing.T) {
	conn, stop := startHost(t)
	defer stop()

	readUntil(t, conn, func(m received) bool { return m.Type == MessageSnapshot })
	require.NoError(t, conn.WriteJSON(input.Event{Key: "e", Down: true}))

	notice := readUntil(t, conn, func(m received) bool { return m.Type == MessageEvent })
	assert.Equal(t, events.TypePickedUp, notice.Event)

	var payload events.Carry
	require.NoError(t, json.Unmarshal(notice.Data, &payload))
	assert.Equal(t, "package_1", payload.ItemName)

	snap := readUntil(t, conn, func(m received) bool { return m.Type == MessageSnapshot })
	assert.Equal(t, payload.ItemID.String(), snap.Snapshot.Carrying)
}

func TestDisconnectReleasesOnlyOwnKeys(t *testing.T) {
	conn, u, stop := startHostURL(t)
	defer stop()

	readUntil(t, conn, func(m received) bool { return m.Type == MessageSnapshot })
	require.NoError(t, conn.WriteJSON(input.Event{Key: "d", Down: true}))
	readUntil(t, conn, func(m received) bool {
		return m.Type == MessageSnapshot && m.Snapshot.Agent.Position[0] > 10.2
	})

	other, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	readUntil(t, other, func(m received) bool { return m.Type == MessageSnapshot })
	require.NoError(t, other.WriteJSON(input.Event{Key: "w", Down: true}))
	require.NoError(t, other.Close())

	before := readUntil(t, conn, func(m received) bool { return m.Type == MessageSnapshot })
	after := readUntil(t, conn, func(m received) bool {
		return m.Type == MessageSnapshot && m.Snapshot.Tick > before.Snapshot.Tick+10
	})
	assert.Greater(t, after.Snapshot.Agent.Position[0], before.Snapshot.Agent.Position[0])
}
