package handler

import (
	"Encore/config"
	"Encore/middleware"
	"Encore/pkg/context"
	"Encore/pkg/response"
	"Encore/service"
	"Encore/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(o.Config.Jwt.Secret))
	order := r.Group("/v1/order")
	order.Use(authorize)
	order.POST("/create", context.Wrap(o.Create))
	order.PUT("/:order_sn/status", context.Wrap(o.SetStatus))
	order.GET("/:order_sn", context.Wrap(o.Get))
	order.GET("/list", context.Wrap(o.List))
}

// Create 下单（库存在此刻扣减预留）。缺货整单拒绝并逐行返回缺口
func (o *Order) Create(c *gin.Context) error {
	var req types.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	resp, err := o.OrderService.CreateOrder(c, &req)
	if err != nil {
		if ise, ok := service.IsInsufficientStock(err); ok {
			c.JSON(http.StatusOK, response.Response{
				Code: 40010,
				Msg:  err.Error(),
				Data: types.AvailabilityResp{Available: false, Shortfalls: ise.Shortfalls},
			})
			return nil
		}
		switch err {
		case service.ErrProductNotFound, service.ErrProductInactive, service.ErrEmptyOrder:
			return response.NewError(400, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}

func (o *Order) SetStatus(c *gin.Context) error {
	orderSN := c.Param("order_sn")
	var req types.SetOrderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	resp, err := o.OrderService.SetOrderStatus(c, orderSN, req.Status)
	if err != nil {
		switch err {
		case service.ErrOrderNotFound:
			return response.NewError(404, err.Error())
		case service.ErrInvalidTransition:
			return response.NewError(400, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}

func (o *Order) Get(c *gin.Context) error {
	resp, err := o.OrderService.GetOrder(c, c.Param("order_sn"))
	if err != nil {
		if err == service.ErrOrderNotFound {
			return response.NewError(404, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}

func (o *Order) List(c *gin.Context) error {
	customerID, err := strconv.ParseInt(c.Query("customer_id"), 10, 64)
	if err != nil {
		return response.NewError(400, "customer_id 参数错误")
	}
	cursor, _ := strconv.ParseInt(c.DefaultQuery("cursor", "0"), 10, 64)
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	resp, err := o.OrderService.GetOrderList(c, customerID, cursor, pageSize)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}
