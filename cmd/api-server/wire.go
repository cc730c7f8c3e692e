//go:build wireinject
// +build wireinject

package main

import (
	"Tally/config"
	"Tally/dao"
	"Tally/dao/cache"
	"Tally/handler"
	"Tally/pkg/client"
	"Tally/pkg/database"
	"Tally/pkg/gateway"
	"Tally/pkg/server"
	"Tally/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		database.NewDB,
		gateway.New,
		server.NewGinEngine,
		cache.ProviderSet,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Record), "*"),
		wire.Struct(new(handler.Redemption), "*"),
		wire.Struct(new(handler.Stats), "*"),
		wire.Struct(new(handler.Leaderboard), "*"),
		wire.Struct(new(handler.Profile), "*"),
		wire.Struct(new(handler.Guest), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
	)
	return nil
}
