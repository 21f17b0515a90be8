package dao

import (
	"Encore/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

func (p *Product) CreateProduct(ctx context.Context, product *models.Product) error {
	return p.Db.WithContext(ctx).Create(product).Error
}

// FindForUpdate 在事务内加行锁读取商品，库存检查与扣减之间不允许插队
func (p *Product) FindForUpdate(ctx context.Context, tx *gorm.DB, productID uint64) (*models.Product, error) {
	var product models.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", productID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStock 覆写库存数量，必须在持有行锁的事务内调用
func (p *Product) UpdateStock(ctx context.Context, tx *gorm.DB, productID uint64, newStock int64) error {
	return tx.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", newStock).Error
}

func (p *Product) ListActive(ctx context.Context) ([]*models.Product, error) {
	return p.FindAllByWhere(ctx, "status = ?", 1)
}
