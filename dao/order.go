package dao

import (
	"Encore/models"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

func (o *Order) FindBySN(ctx context.Context, orderSN string) (*models.Order, error) {
	return o.FindByWhere(ctx, "order_sn = ?", orderSN)
}

// FindBySNForUpdate 在事务内加行锁读取订单，避免状态并发流转
func (o *Order) FindBySNForUpdate(ctx context.Context, tx *gorm.DB, orderSN string) (*models.Order, error) {
	var order models.Order
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "order_sn = ?", orderSN).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (o *Order) CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order, items []models.OrderItem) error {
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (o *Order) UpdateStatus(ctx context.Context, tx *gorm.DB, orderSN string, status int8, paidAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}
	return tx.WithContext(ctx).Model(&models.Order{}).
		Where("order_sn = ?", orderSN).
		Updates(updates).Error
}

func (o *Order) ItemsBySN(ctx context.Context, tx *gorm.DB, orderSN string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	db := o.Db
	if tx != nil {
		db = tx
	}
	err := db.WithContext(ctx).
		Where("order_sn = ?", orderSN).
		Find(&items).Error
	return items, err
}

// ListByCustomer 游标分页查询
func (o *Order) ListByCustomer(ctx context.Context, customerID int64, cursor int64, limit int) ([]*models.Order, error) {
	var orders []*models.Order
	query := o.Db.WithContext(ctx).Where("customer_id = ?", customerID)

	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	err := query.Order("id DESC").Limit(limit).Find(&orders).Error
	return orders, err
}
