package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 对应数据库中的 products 表。
// StockQuantity 只允许通过库存台账（service.StockService）修改，
// 其它代码不得直接加减库存。
type Product struct {
	ID                uint64         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductName       string         `gorm:"uniqueIndex:idx_product_name;not null;column:product_name" json:"product_name"` // 商品名称
	Price             uint32         `gorm:"not null;column:price" json:"price"`                                            // 单价（单位：分）
	StockQuantity     int64          `gorm:"default:0;not null;column:stock_quantity" json:"stock_quantity"`                // 库存数量，恒 >= 0
	LowStockThreshold int64          `gorm:"default:0;not null;column:low_stock_threshold" json:"low_stock_threshold"`      // 低库存预警线
	Status            int8           `gorm:"default:1;not null;index:idx_status;column:status" json:"status"`               // 状态 (0-下架, 1-上架)
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index:idx_products_deleted_at;column:deleted_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// 库存变动原因
const (
	MovementReasonSale    = "sale"          // 销售扣减
	MovementReasonReturn  = "return"        // 取消/退款回补
	MovementReasonRestock = "restock"       // 进货入库
	MovementReasonManual  = "manual_adjust" // 人工盘点调整
)

// InventoryMovement 库存流水，只增不改不删。
// 对任意商品恒有 stock_quantity == SUM(change_amount)。
type InventoryMovement struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ProductID    uint64    `gorm:"not null;index:idx_product_id;column:product_id" json:"product_id"`
	ChangeAmount int64     `gorm:"not null;column:change_amount" json:"change_amount"` // 变动数量（正=入库/回补，负=销售）
	Reason       string    `gorm:"size:32;not null;column:reason" json:"reason"`
	OrderSN      string    `gorm:"size:32;index:idx_order_sn;column:order_sn" json:"order_sn"` // 关联订单号，便于按单审计
	StaffID      *int64    `gorm:"column:staff_id" json:"staff_id"`                            // 操作员工
	Note         string    `gorm:"size:255;column:note" json:"note"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InventoryMovement) TableName() string {
	return "inventory_movements"
}
