//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/archadium/internal/game/event"
)

func initializeApp(ctx context.Context, path configPath) (*App, func(), error) {
	wire.Build(
		provideConfig,
		provideLogger,
		provideTracer,
		provideRoller,
		event.NewBus,
		provideItems,
		provideEnemies,
		provideWorld,
		provideCommands,
		provideStore,
		provideScripts,
		provideEngine,
		provideConsole,
		provideRenderer,
		provideArt,
		provideGame,
		provideLifecycle,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
