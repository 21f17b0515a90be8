package types

// Shortfall 单个商品的缺货明细
type Shortfall struct {
	ProductID   uint64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int64  `json:"requested"` // 本次请求数量
	Available   int64  `json:"available"` // 当前可用库存
}

// AvailabilityResp 备货检查结果。缺货不是错误，缺口逐行列出
type AvailabilityResp struct {
	Available  bool        `json:"available"`
	Shortfalls []Shortfall `json:"shortfalls,omitempty"`
}

// AdjustStockReq 人工库存调整请求体
type AdjustStockReq struct {
	ProductID    uint64 `json:"product_id" binding:"required"`
	ChangeAmount int64  `json:"change_amount" binding:"required"` // 正=入库，负=出库
	Reason       string `json:"reason" binding:"required,oneof=restock manual_adjust"`
	Note         string `json:"note"`
}

// MovementRecord 库存流水展示
type MovementRecord struct {
	ID           uint64 `json:"id"`
	ProductID    uint64 `json:"product_id"`
	ChangeAmount int64  `json:"change_amount"`
	Reason       string `json:"reason"`
	OrderSN      string `json:"order_sn,omitempty"`
	Note         string `json:"note,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type ListMovementsResp struct {
	Records    []MovementRecord `json:"records"`
	NextCursor int64            `json:"next_cursor"`
	HasMore    bool             `json:"has_more"`
}

// ReconcileResp 台账对账结果：商品当前库存 vs 流水净变动
type ReconcileResp struct {
	ProductID     uint64 `json:"product_id"`
	StockQuantity int64  `json:"stock_quantity"`
	MovementSum   int64  `json:"movement_sum"`
	Balanced      bool   `json:"balanced"`
	LowStock      bool   `json:"low_stock"`
}
