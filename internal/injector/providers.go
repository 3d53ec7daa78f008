package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/courier/internal/config"
	"github.com/zeusync/courier/internal/core/events/bus"
	"github.com/zeusync/courier/internal/core/observability/log"
	"github.com/zeusync/courier/internal/core/systems/physics"
	"github.com/zeusync/courier/internal/session"
)

// App is everything a host needs to run a session.
type App struct {
	Config  config.Config
	Logger  log.Log
	Bus     bus.EventBus
	Engine  *physics.SimpleEngine
	Session *session.Session
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideEngine,
	bus.New,
	session.Build,
	wire.Bind(new(physics.Engine), new(*physics.SimpleEngine)),
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg config.Config) (log.Log, error) {
	logger, err := log.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return logger, nil
}

func ProvideEngine(cfg config.Config) *physics.SimpleEngine {
	return physics.NewSimpleEngine(cfg.Engine())
}
