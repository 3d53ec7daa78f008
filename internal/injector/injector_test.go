package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/courier/internal/config"
	"github.com/zeusync/courier/internal/core/agent"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "silent"

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, app.Session)
	assert.Same(t, app.Bus, app.Session.Bus())
	assert.Equal(t, agent.ModeKinematic, app.Session.Mode())

	app.Engine.Readiness().Resolve()
	require.NoError(t, app.Session.Advance(1.0/60))
	assert.Equal(t, agent.ModePhysics, app.Session.Mode())
	assert.Equal(t, 1, app.Engine.Bodies())
}

func TestInitializeAppRejectsBadWorld(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "silent"
	cfg.World.CellSize = -1

	_, err := InitializeApp(cfg)
	assert.Error(t, err)
}
