//go:build wireinject
// +build wireinject

package main

import (
	"Encore/config"
	"Encore/dao"
	"Encore/dao/cache"
	"Encore/handler"
	"Encore/pkg/client"
	"Encore/pkg/database"
	"Encore/pkg/server"
	"Encore/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		server.NewGinEngine,
		cache.ProviderSet,

		wire.Struct(new(handler.Product), "*"),
		wire.Struct(new(handler.Stock), "*"),
		wire.Struct(new(handler.Order), "*"),
		wire.Struct(new(handler.Point), "*"),
		wire.Struct(new(handler.Rule), "*"),
		wire.Struct(new(handler.Card), "*"),
		handler.NewPay,

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
