//go:build wireinject

package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(StockService), "*"),
	wire.Bind(new(IStockService), new(*StockService)),

	wire.Struct(new(OrderService), "*"),
	wire.Bind(new(IOrderService), new(*OrderService)),

	wire.Struct(new(PointService), "*"),
	wire.Bind(new(IPointService), new(*PointService)),

	wire.Struct(new(CardService), "*"),
	wire.Bind(new(ICardService), new(*CardService)),

	wire.Struct(new(TierEngine), "*"),

	NewRuleService,
	wire.Bind(new(IRuleService), new(*RuleService)),
)
