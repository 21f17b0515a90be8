package types

// CreateProductReq 新建商品。初始库存一律为 0，
// 进货走 /stock/adjust（reason=restock），保证台账不变量从第一天成立
type CreateProductReq struct {
	ProductName       string `json:"product_name" binding:"required"`
	Price             uint32 `json:"price" binding:"required,gt=0"` // 单价（分）
	LowStockThreshold int64  `json:"low_stock_threshold"`
}

// UpdateProductReq 商品信息更新，全部可选，但至少要给一个字段
type UpdateProductReq struct {
	Price             *uint32 `json:"price" binding:"omitempty,gt=0"`
	LowStockThreshold *int64  `json:"low_stock_threshold"`
	Status            *int8   `json:"status" binding:"omitempty,oneof=0 1"`
}

// ProductResp 商品展示，带低库存预警标记
type ProductResp struct {
	ID                uint64 `json:"id"`
	ProductName       string `json:"product_name"`
	Price             uint32 `json:"price"`
	StockQuantity     int64  `json:"stock_quantity"`
	LowStockThreshold int64  `json:"low_stock_threshold"`
	Status            int8   `json:"status"`
	LowStock          bool   `json:"low_stock"`
}

type ListProductsResp struct {
	Products []ProductResp `json:"products"`
	Total    int64         `json:"total"`
}
