package handler

import (
	"Encore/config"
	"Encore/middleware"
	"Encore/pkg/context"
	"Encore/pkg/response"
	"Encore/service"
	"Encore/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Product struct {
	Config       *config.Config
	StockService service.IStockService
}

func (h *Product) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	product := r.Group("/v1/product")
	product.Use(authorize)
	product.POST("/create", context.Wrap(h.Create))
	product.PUT("/:id", context.Wrap(h.Update))
	product.GET("/list", context.Wrap(h.List))
}

// Create 新建商品（初始库存为 0，进货走库存调整）
func (h *Product) Create(c *gin.Context) error {
	var req types.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	product, err := h.StockService.CreateProduct(c, &req)
	if err != nil {
		if err == service.ErrProductExists {
			return response.NewError(400, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, product)
	return nil
}

func (h *Product) Update(c *gin.Context) error {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.NewError(400, "id 参数错误")
	}

	var req types.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(400, err.Error())
	}

	product, err := h.StockService.UpdateProduct(c, productID, &req)
	if err != nil {
		switch err {
		case service.ErrProductNotFound:
			return response.NewError(404, err.Error())
		case service.ErrNoFieldsToUpdate:
			return response.NewError(400, err.Error())
		}
		return response.NewError(500, err.Error())
	}
	response.Success(c, product)
	return nil
}

func (h *Product) List(c *gin.Context) error {
	resp, err := h.StockService.ListProducts(c)
	if err != nil {
		return response.NewError(500, err.Error())
	}
	response.Success(c, resp)
	return nil
}
