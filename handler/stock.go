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

type Stock struct {
	Config       *config.Config
	StockService service.IStockService
}

func (s *Stock) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(s.Config.Jwt.Secret))
	stock := r.Group("/v1/stock")
	stock.Use(authorize)
	stock.POST("/adjust", context.Wrap(s.Adjust))
	stock.POST("/availability", context.Wrap(s.Availability))
	stock.GET("/movements", context.Wrap(s.Movements))
	stock.GET("/reconcile", context.Wrap(s.Reconcile))
}

// Adjust 人工入库/盘点调整
func (s *Stock) Adjust(c *gin.Context) error {
	var req types.AdjustStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	staffID := context.GetStaffID(c)
	product, err := s.StockService.AdjustStock(c, req.ProductID, req.ChangeAmount, req.Reason, "", &staffID, req.Note)
	if err != nil {
		if ise, ok := service.IsInsufficientStock(err); ok {
			c.JSON(http.StatusOK, response.Response{
				Code: 40010,
				Msg:  err.Error(),
				Data: types.AvailabilityResp{Available: false, Shortfalls: ise.Shortfalls},
			})
			return nil
		}
		if err == service.ErrProductNotFound {
			return response.NewError(404, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, product)
	return nil
}

func (s *Stock) Availability(c *gin.Context) error {
	var req struct {
		Items []types.OrderItemReq `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	shortfalls, err := s.StockService.CheckAvailability(c, req.Items)
	if err != nil {
		if err == service.ErrProductNotFound {
			return response.NewError(404, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, types.AvailabilityResp{
		Available:  len(shortfalls) == 0,
		Shortfalls: shortfalls,
	})
	return nil
}

// Movements 流水查询：按商品游标分页，或按订单号整单拉取
func (s *Stock) Movements(c *gin.Context) error {
	if orderSN := c.Query("order_sn"); orderSN != "" {
		records, err := s.StockService.ListMovementsByOrder(c, orderSN)
		if err != nil {
			return response.NewError(500, err.Error())
		}
		response.Success(c, records)
		return nil
	}

	productID, err := strconv.ParseUint(c.Query("product_id"), 10, 64)
	if err != nil {
		return response.NewError(400, "product_id 参数错误")
	}
	cursor, _ := strconv.ParseInt(c.DefaultQuery("cursor", "0"), 10, 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := s.StockService.ListMovements(c, productID, cursor, limit)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}

// Reconcile 台账对账：库存 vs 流水净和
func (s *Stock) Reconcile(c *gin.Context) error {
	productID, err := strconv.ParseUint(c.Query("product_id"), 10, 64)
	if err != nil {
		return response.NewError(400, "product_id 参数错误")
	}

	resp, err := s.StockService.Reconcile(c, productID)
	if err != nil {
		if err == service.ErrProductNotFound {
			return response.NewError(404, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}
