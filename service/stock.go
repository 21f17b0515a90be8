package service

import (
	"Encore/dao"
	"Encore/models"
	"Encore/pkg/log"
	"Encore/types"
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StockService 库存台账，products.stock_quantity 的唯一合法修改入口。
// 任何变动都在同一事务里同时落库存和流水，保证对账不变量。
type StockService struct {
	DB          *gorm.DB
	ProductDAO  *dao.Product
	MovementDAO *dao.InventoryMovement
}

var _ IStockService = (*StockService)(nil)

type IStockService interface {
	AdjustStock(ctx context.Context, productID uint64, change int64, reason string, orderSN string, staffID *int64, note string) (*models.Product, error)
	CheckAvailability(ctx context.Context, items []types.OrderItemReq) ([]types.Shortfall, error)
	DeductForOrder(ctx context.Context, tx *gorm.DB, orderSN string, items []models.OrderItem, staffID *int64) error
	RestoreForOrder(ctx context.Context, tx *gorm.DB, orderSN string, items []models.OrderItem, staffID *int64) error
	LockAndCheck(ctx context.Context, tx *gorm.DB, items []types.OrderItemReq) ([]*models.Product, []types.Shortfall, error)
	ListMovements(ctx context.Context, productID uint64, cursor int64, limit int) (*types.ListMovementsResp, error)
	ListMovementsByOrder(ctx context.Context, orderSN string) ([]types.MovementRecord, error)
	Reconcile(ctx context.Context, productID uint64) (*types.ReconcileResp, error)
	CreateProduct(ctx context.Context, req *types.CreateProductReq) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID uint64, req *types.UpdateProductReq) (*models.Product, error)
	ListProducts(ctx context.Context) (*types.ListProductsResp, error)
}

// adjustStockTx 台账核心：行锁读 -> 校验 -> 覆写库存 -> 追加流水，全部同一事务。
// 调用方事先做过的可用性检查不作数，这里重读重验，newStock < 0 一律拒绝。
func (s *StockService) adjustStockTx(ctx context.Context, tx *gorm.DB, productID uint64, change int64, reason string, orderSN string, staffID *int64, note string) (*models.Product, error) {
	product, err := s.ProductDAO.FindForUpdate(ctx, tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	newStock := product.StockQuantity + change
	if newStock < 0 {
		return nil, &InsufficientStockError{Shortfalls: []types.Shortfall{{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Requested:   -change,
			Available:   product.StockQuantity,
		}}}
	}

	if err := s.ProductDAO.UpdateStock(ctx, tx, productID, newStock); err != nil {
		return nil, err
	}

	movement := &models.InventoryMovement{
		ProductID:    productID,
		ChangeAmount: change,
		Reason:       reason,
		OrderSN:      orderSN,
		StaffID:      staffID,
		Note:         note,
	}
	if err := s.MovementDAO.CreateMovement(ctx, tx, movement); err != nil {
		return nil, err
	}

	product.StockQuantity = newStock
	return product, nil
}

func (s *StockService) AdjustStock(ctx context.Context, productID uint64, change int64, reason string, orderSN string, staffID *int64, note string) (*models.Product, error) {
	var product *models.Product
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		product, err = s.adjustStockTx(ctx, tx, productID, change, reason, orderSN, staffID, note)
		return err
	})
	if err != nil {
		return nil, err
	}

	if product.StockQuantity <= product.LowStockThreshold {
		log.L.Warn("low stock",
			zap.Uint64("product_id", product.ID),
			zap.Int64("stock", product.StockQuantity),
			zap.Int64("threshold", product.LowStockThreshold),
		)
	}
	return product, nil
}

// CheckAvailability 软失败的备货检查：缺货返回缺口清单而不是报错。
// 只做只读预检，不加锁，结果不构成扣减保证，最终以 adjustStockTx 重验为准。
func (s *StockService) CheckAvailability(ctx context.Context, items []types.OrderItemReq) ([]types.Shortfall, error) {
	shortfalls := make([]types.Shortfall, 0)
	for _, item := range items {
		product, err := s.ProductDAO.FindById(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		if int64(item.Quantity) > product.StockQuantity {
			shortfalls = append(shortfalls, types.Shortfall{
				ProductID:   product.ID,
				ProductName: product.ProductName,
				Requested:   int64(item.Quantity),
				Available:   product.StockQuantity,
			})
		}
	}
	return shortfalls, nil
}

// LockAndCheck 事务内带行锁的备货检查，给下单链路用：
// 锁住所有行再算缺口，单行缺货整单作废，不会留下半扣的库存。
func (s *StockService) LockAndCheck(ctx context.Context, tx *gorm.DB, items []types.OrderItemReq) ([]*models.Product, []types.Shortfall, error) {
	// 固定加锁顺序，避免并发下单互相死锁
	sorted := make([]types.OrderItemReq, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	products := make([]*models.Product, 0, len(sorted))
	shortfalls := make([]types.Shortfall, 0)
	for _, item := range sorted {
		product, err := s.ProductDAO.FindForUpdate(ctx, tx, item.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrProductNotFound
			}
			return nil, nil, err
		}
		if product.Status != 1 {
			return nil, nil, ErrProductInactive
		}
		if int64(item.Quantity) > product.StockQuantity {
			shortfalls = append(shortfalls, types.Shortfall{
				ProductID:   product.ID,
				ProductName: product.ProductName,
				Requested:   int64(item.Quantity),
				Available:   product.StockQuantity,
			})
		}
		products = append(products, product)
	}
	return products, shortfalls, nil
}

// DeductForOrder 按订单逐行扣减，reason=sale 并带上订单号，方便按单审计
func (s *StockService) DeductForOrder(ctx context.Context, tx *gorm.DB, orderSN string, items []models.OrderItem, staffID *int64) error {
	for _, item := range items {
		if _, err := s.adjustStockTx(ctx, tx, item.ProductID, -int64(item.Quantity), models.MovementReasonSale, orderSN, staffID, ""); err != nil {
			return err
		}
	}
	return nil
}

// RestoreForOrder 取消/退款的补偿回补，reason=return
func (s *StockService) RestoreForOrder(ctx context.Context, tx *gorm.DB, orderSN string, items []models.OrderItem, staffID *int64) error {
	for _, item := range items {
		if _, err := s.adjustStockTx(ctx, tx, item.ProductID, int64(item.Quantity), models.MovementReasonReturn, orderSN, staffID, ""); err != nil {
			return err
		}
	}
	return nil
}

func (s *StockService) ListMovements(ctx context.Context, productID uint64, cursor int64, limit int) (*types.ListMovementsResp, error) {
	if limit <= 0 {
		limit = 10
	}
	movements, err := s.MovementDAO.ListByProduct(ctx, productID, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	resp := &types.ListMovementsResp{
		Records: make([]types.MovementRecord, 0),
		HasMore: false,
	}
	if len(movements) > limit {
		resp.HasMore = true
		movements = movements[:limit]
		resp.NextCursor = int64(movements[len(movements)-1].ID)
	}

	for _, m := range movements {
		resp.Records = append(resp.Records, types.MovementRecord{
			ID:           m.ID,
			ProductID:    m.ProductID,
			ChangeAmount: m.ChangeAmount,
			Reason:       m.Reason,
			OrderSN:      m.OrderSN,
			Note:         m.Note,
			CreatedAt:    m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}

// ListMovementsByOrder 按订单号拉出其全部库存流水，用于按单审计
func (s *StockService) ListMovementsByOrder(ctx context.Context, orderSN string) ([]types.MovementRecord, error) {
	movements, err := s.MovementDAO.ListByOrderSN(ctx, orderSN)
	if err != nil {
		return nil, err
	}
	records := make([]types.MovementRecord, 0, len(movements))
	for _, m := range movements {
		records = append(records, types.MovementRecord{
			ID:           m.ID,
			ProductID:    m.ProductID,
			ChangeAmount: m.ChangeAmount,
			Reason:       m.Reason,
			OrderSN:      m.OrderSN,
			Note:         m.Note,
			CreatedAt:    m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return records, nil
}

// CreateProduct 新建商品。初始库存固定为 0：
// 进货必须走 AdjustStock（restock），否则流水对不上库存。
func (s *StockService) CreateProduct(ctx context.Context, req *types.CreateProductReq) (*models.Product, error) {
	exists, err := s.ProductDAO.IsExist(ctx, "product_name = ?", req.ProductName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProductExists
	}

	product := &models.Product{
		ProductName:       req.ProductName,
		Price:             req.Price,
		StockQuantity:     0,
		LowStockThreshold: req.LowStockThreshold,
		Status:            1,
	}
	if err := s.ProductDAO.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct 更新商品信息。库存数量不在这里改，只能走台账。
func (s *StockService) UpdateProduct(ctx context.Context, productID uint64, req *types.UpdateProductReq) (*models.Product, error) {
	updates := map[string]interface{}{}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	product, err := s.ProductDAO.FindById(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.ProductDAO.Model(ctx).Where("id = ?", productID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.ProductDAO.FindById(ctx, product.ID)
}

func (s *StockService) ListProducts(ctx context.Context) (*types.ListProductsResp, error) {
	products, err := s.ProductDAO.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.ProductDAO.FindCount(ctx, "status = ?", 1)
	if err != nil {
		return nil, err
	}

	resp := &types.ListProductsResp{
		Products: make([]types.ProductResp, 0, len(products)),
		Total:    total,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, types.ProductResp{
			ID:                p.ID,
			ProductName:       p.ProductName,
			Price:             p.Price,
			StockQuantity:     p.StockQuantity,
			LowStockThreshold: p.LowStockThreshold,
			Status:            p.Status,
			LowStock:          p.StockQuantity <= p.LowStockThreshold,
		})
	}
	return resp, nil
}

// Reconcile 对账：当前库存必须等于流水净变动之和
func (s *StockService) Reconcile(ctx context.Context, productID uint64) (*types.ReconcileResp, error) {
	product, err := s.ProductDAO.FindById(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	sum, err := s.MovementDAO.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &types.ReconcileResp{
		ProductID:     productID,
		StockQuantity: product.StockQuantity,
		MovementSum:   sum,
		Balanced:      product.StockQuantity == sum,
		LowStock:      product.StockQuantity <= product.LowStockThreshold,
	}, nil
}
