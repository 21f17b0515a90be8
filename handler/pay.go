package handler

import (
	"Encore/models"
	"Encore/pkg/context"
	"Encore/pkg/log"
	"Encore/pkg/response"
	"Encore/service"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Pay 支付网关回调入口。网关对接本身不在这里，
// 这里只消费“支付成功/失败”这一个信号去驱动订单状态。
type Pay struct {
	OrderService service.IOrderService
}

func NewPay(orderService service.IOrderService) *Pay {
	return &Pay{OrderService: orderService}
}

func (p *Pay) RegisterRouter(r gin.IRouter) {
	pay := r.Group("/v1/pay")
	pay.POST("/notify", context.Wrap(p.Notify))
}

func (p *Pay) Notify(c *gin.Context) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return response.NewError(400, "读取回调报文失败")
	}

	orderSN := gjson.GetBytes(body, "out_trade_no").String()
	tradeState := gjson.GetBytes(body, "trade_state").String()
	if orderSN == "" || tradeState == "" {
		return response.NewError(400, "回调报文缺少必要字段")
	}

	log.L.Info("payment notify",
		zap.String("order_sn", orderSN),
		zap.String("trade_state", tradeState),
	)

	var target int8
	switch tradeState {
	case "SUCCESS":
		target = models.OrderStatusPaid
	case "PAYERROR", "CLOSED":
		target = models.OrderStatusFailed
	default:
		// 中间态（如 USERPAYING）不动订单，等网关推送终态
		log.L.Info("payment notify ignored",
			zap.String("order_sn", orderSN),
			zap.String("trade_state", tradeState),
		)
		c.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
		return nil
	}

	if _, err := p.OrderService.SetOrderStatus(c, orderSN, target); err != nil {
		// 状态已流转过的重复回调直接吞掉，让网关停止重试
		if err == service.ErrInvalidTransition {
			c.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
			return nil
		}
		if err == service.ErrOrderNotFound {
			return response.NewError(404, err.Error())
		}
		return response.NewError(500, err.Error())
	}

	c.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
	return nil
}
