package types

// OrderItemReq 下单明细行
type OrderItemReq struct {
	ProductID uint64 `json:"product_id" binding:"required"`
	Quantity  uint32 `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderReq 创建订单请求体。CustomerID 可为空：匿名单不产生积分
type CreateOrderReq struct {
	Items      []OrderItemReq `json:"items" binding:"required,min=1,dive"`
	CustomerID *int64         `json:"customer_id"`
	StaffID    *int64         `json:"staff_id"`
	Currency   string         `json:"currency"`
}

// SetOrderStatusReq 状态流转请求体
type SetOrderStatusReq struct {
	Status int8 `json:"status" binding:"required"`
}

// OrderResp 订单详情
type OrderResp struct {
	OrderSN     string          `json:"order_sn"`
	CustomerID  *int64          `json:"customer_id,omitempty"`
	TotalAmount uint64          `json:"total_amount"` // 单位：分
	Currency    string          `json:"currency"`
	Status      int8            `json:"status"`
	Items       []OrderItemResp `json:"items,omitempty"`
	CreatedAt   string          `json:"created_at"`
	PaidAt      string          `json:"paid_at,omitempty"`
	// VIP 本次流转触发的积分奖励（仅支付成功且关联会员时出现）
	VIP *VIPAwardResult `json:"vip,omitempty"`
}

type OrderItemResp struct {
	ProductID      uint64 `json:"product_id"`
	ProductName    string `json:"product_name"`
	ProductPrice   uint32 `json:"product_price"`
	Quantity       uint32 `json:"quantity"`
	SubtotalAmount uint64 `json:"subtotal_amount"`
}

// VIPAwardResult 支付成功后桥接积分台账的结果，失败只上报不回滚支付
type VIPAwardResult struct {
	Awarded bool   `json:"awarded"`
	Points  int64  `json:"points"`
	Balance int64  `json:"balance"`
	Tier    string `json:"tier"`
}

type ListOrdersResp struct {
	Orders     []OrderResp `json:"orders"`
	NextCursor int64       `json:"next_cursor"`
	HasMore    bool        `json:"has_more"`
}
