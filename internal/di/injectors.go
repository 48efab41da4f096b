//go:build wireinject
// +build wireinject

package di

import (
	"gatewatch/internal"
	"gatewatch/internal/controllers"
	"gatewatch/internal/ingest"
	"gatewatch/internal/providers"
	"gatewatch/internal/services"
	"gatewatch/internal/structures"
	"gatewatch/internal/vehicles"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewCacheProvider,
		providers.NewMetricsProvider,

		services.NewWatchStatsService,
		vehicles.NewTracker,
		ingest.NewLedger,
		ingest.NewZstdCompressor,
		ingest.NewFileManager,
		ingest.NewLoop,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
