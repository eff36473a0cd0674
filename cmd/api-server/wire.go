//go:build wireinject
// +build wireinject

package main

import (
	"Loyo/config"
	"Loyo/dao"
	"Loyo/dao/cache"
	"Loyo/handler"
	"Loyo/pkg/client"
	"Loyo/pkg/database"
	"Loyo/pkg/oss"
	"Loyo/pkg/rocketmq"
	"Loyo/pkg/server"
	"Loyo/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(

		client.NewRedisClient,
		config.ProvideRocketMQConfig,
		rocketmq.InitPublisher,
		oss.GetOssClient,
		server.NewGinEngine,
		cache.ProviderSet,
		wire.Struct(new(handler.Business), "*"),
		wire.Struct(new(handler.Class), "*"),
		wire.Struct(new(handler.Membership), "*"),
		wire.Struct(new(handler.Referral), "*"),
		wire.Struct(new(handler.Migration), "*"),
		wire.Struct(new(handler.Summary), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,

		service.ProviderSet,
		database.NewDB,
	)
	return nil
}
