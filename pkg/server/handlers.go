package server

import (
	"Encore/handler"
)

type Handlers struct {
	Product *handler.Product
	Stock   *handler.Stock
	Order   *handler.Order
	Point   *handler.Point
	Rule    *handler.Rule
	Card    *handler.Card
	Pay     *handler.Pay
}
