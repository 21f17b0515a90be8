package dao

import (
	"Encore/models"
	"context"

	"gorm.io/gorm"
)

type InventoryMovement struct {
	Repo[models.InventoryMovement]
}

func NewInventoryMovement(db *gorm.DB) *InventoryMovement {
	return &InventoryMovement{
		Repo: NewRepo[models.InventoryMovement](db),
	}
}

// CreateMovement 追加一条库存流水。流水只增不改，没有对应的更新/删除方法。
func (m *InventoryMovement) CreateMovement(ctx context.Context, tx *gorm.DB, movement *models.InventoryMovement) error {
	return tx.WithContext(ctx).Create(movement).Error
}

// SumByProduct 按商品汇总流水净变动，用于对账校验
func (m *InventoryMovement) SumByProduct(ctx context.Context, productID uint64) (int64, error) {
	var res struct {
		Total int64
	}
	err := m.Db.WithContext(ctx).Table("inventory_movements").
		Select("IFNULL(SUM(change_amount), 0) AS total").
		Where("product_id = ?", productID).
		Scan(&res).Error
	return res.Total, err
}

// ListByProduct 分页筛选查询
func (m *InventoryMovement) ListByProduct(ctx context.Context, productID uint64, cursor int64, limit int) ([]models.InventoryMovement, error) {
	var movements []models.InventoryMovement
	query := m.Db.WithContext(ctx).Where("product_id = ?", productID)

	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	err := query.Order("id DESC").Limit(limit).Find(&movements).Error
	return movements, err
}

func (m *InventoryMovement) ListByOrderSN(ctx context.Context, orderSN string) ([]models.InventoryMovement, error) {
	var movements []models.InventoryMovement
	err := m.Db.WithContext(ctx).
		Where("order_sn = ?", orderSN).
		Order("id ASC").
		Find(&movements).Error
	return movements, err
}
