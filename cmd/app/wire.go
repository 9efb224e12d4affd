//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weatherfit/internal/bootstrap"
	"github.com/yanqian/weatherfit/internal/domain/auth"
	"github.com/yanqian/weatherfit/internal/domain/forecast"
	"github.com/yanqian/weatherfit/internal/domain/location"
	"github.com/yanqian/weatherfit/internal/domain/outfit"
	"github.com/yanqian/weatherfit/internal/domain/wardrobe"
	"github.com/yanqian/weatherfit/internal/infra/config"
	httpiface "github.com/yanqian/weatherfit/internal/interface/http"
	"github.com/yanqian/weatherfit/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideForecastConfig,
		providePostgresPool,
		provideUserRepository,
		provideLocationRepository,
		provideWardrobeRepository,
		provideWardrobeReader,
		provideDefaultLocator,
		provideForecastClient,
		provideForecastStore,
		auth.NewService,
		wardrobe.NewService,
		location.NewService,
		outfit.NewService,
		forecast.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
