package models

import (
	"time"

	"gorm.io/gorm"
)

// 订单状态
const (
	OrderStatusPending   int8 = 10 // 待支付（库存已在下单时扣减）
	OrderStatusPaid      int8 = 20 // 已支付
	OrderStatusCancelled int8 = 30 // 已取消
	OrderStatusRefunded  int8 = 40 // 已退款
	OrderStatusFailed    int8 = 50 // 支付失败
)

// Order 订单主表
type Order struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderSn     string         `gorm:"column:order_sn;type:varchar(32);not null;uniqueIndex:idx_order_sn" json:"order_sn"`
	CustomerID  *int64         `gorm:"column:customer_id;index:idx_customer_id" json:"customer_id"` // 关联会员，可为空（匿名单不产生积分）
	StaffID     *int64         `gorm:"column:staff_id" json:"staff_id"`                             // 收银员工
	TotalAmount uint64         `gorm:"column:total_amount;not null" json:"total_amount"`            // 单位：分
	Currency    string         `gorm:"column:currency;type:varchar(10);default:'CNY'" json:"currency"`
	Status      int8           `gorm:"column:status;not null;default:10" json:"status"`
	PaidAt      *time.Time     `gorm:"column:paid_at" json:"paid_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	OrderSn        string    `gorm:"size:32;not null;index:idx_order_sn;column:order_sn" json:"order_sn"`
	ProductID      uint64    `gorm:"not null;index:idx_product_id;column:product_id" json:"product_id"`
	ProductName    string    `gorm:"size:255;not null;column:product_name" json:"product_name"` // 冗余商品名称，防止原商品删除/更名
	ProductPrice   uint32    `gorm:"not null;column:product_price" json:"product_price"`        // 冗余下单单价（分），锁定成交价
	Quantity       uint32    `gorm:"default:1;not null;column:quantity" json:"quantity"`
	SubtotalAmount uint64    `gorm:"not null;column:subtotal_amount" json:"subtotal_amount"` // 小计金额（分），单价 * 数量
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
