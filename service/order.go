package service

import (
	"Encore/dao"
	"Encore/models"
	"Encore/pkg/log"
	"Encore/pkg/snowflake"
	"Encore/types"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService 订单编排：下单即锁库存扣减，支付成功桥接积分，
// 取消/退款做至多一次的库存回补。
type OrderService struct {
	DB         *gorm.DB
	OrderDAO   *dao.Order
	ProductDAO *dao.Product
	Stock      IStockService
	Points     IPointService
}

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	CreateOrder(ctx context.Context, req *types.CreateOrderReq) (*types.OrderResp, error)
	SetOrderStatus(ctx context.Context, orderSN string, target int8) (*types.OrderResp, error)
	GetOrder(ctx context.Context, orderSN string) (*types.OrderResp, error)
	GetOrderList(ctx context.Context, customerID int64, cursor int64, pageSize int) (*types.ListOrdersResp, error)
}

// canTransition 状态机：pending -> {paid, cancelled, failed}；paid -> {cancelled, refunded}。
// cancelled / refunded / failed 为终态。
func canTransition(from, to int8) bool {
	switch from {
	case models.OrderStatusPending:
		return to == models.OrderStatusPaid || to == models.OrderStatusCancelled || to == models.OrderStatusFailed
	case models.OrderStatusPaid:
		return to == models.OrderStatusCancelled || to == models.OrderStatusRefunded
	default:
		return false
	}
}

// stockWasDeducted 判断历史状态下库存是否处于已扣减状态，
// 控制取消/退款时是否需要回补（防止终态之间反复切换重复回补）
func stockWasDeducted(status int8) bool {
	return status == models.OrderStatusPending || status == models.OrderStatusPaid
}

// CreateOrder 下单。备货检查、订单落库、逐行扣减在同一个事务里完成：
// 任何一行缺货整单作废，不会出现只扣了一部分的中间态。
func (s *OrderService) CreateOrder(ctx context.Context, req *types.CreateOrderReq) (*types.OrderResp, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity == 0 {
			return nil, ErrEmptyOrder
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "CNY"
	}

	order := &models.Order{
		OrderSn:    snowflake.GenOrderSN(),
		CustomerID: req.CustomerID,
		StaffID:    req.StaffID,
		Currency:   currency,
		Status:     models.OrderStatusPending,
	}
	var items []models.OrderItem

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, shortfalls, err := s.Stock.LockAndCheck(ctx, tx, req.Items)
		if err != nil {
			return err
		}
		if len(shortfalls) > 0 {
			return &InsufficientStockError{Shortfalls: shortfalls}
		}

		priceByID := make(map[uint64]*models.Product, len(products))
		for _, p := range products {
			priceByID[p.ID] = p
		}

		var total uint64
		items = make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			p := priceByID[line.ProductID]
			subtotal := uint64(p.Price) * uint64(line.Quantity)
			total += subtotal
			items = append(items, models.OrderItem{
				OrderSn:        order.OrderSn,
				ProductID:      p.ID,
				ProductName:    p.ProductName,
				ProductPrice:   p.Price,
				Quantity:       line.Quantity,
				SubtotalAmount: subtotal,
			})
		}
		order.TotalAmount = total

		if err := s.OrderDAO.CreateOrder(ctx, tx, order, items); err != nil {
			return err
		}

		// 库存在下单时即扣减预留，本系统没有单独的“预占”状态
		return s.Stock.DeductForOrder(ctx, tx, order.OrderSn, items, req.StaffID)
	})
	if err != nil {
		return nil, err
	}

	log.L.Info("order created",
		zap.String("order_sn", order.OrderSn),
		zap.Uint64("total_amount", order.TotalAmount),
		zap.Int("lines", len(items)),
	)
	return s.toOrderResp(order, items, nil), nil
}

// SetOrderStatus 受控状态流转。
// 取消/退款仅在库存确实处于扣减状态时回补，且至多一次；
// 支付成功后桥接积分台账，桥接失败只记日志，绝不回滚支付。
func (s *OrderService) SetOrderStatus(ctx context.Context, orderSN string, target int8) (*types.OrderResp, error) {
	var (
		order *models.Order
		items []models.OrderItem
	)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.OrderDAO.FindBySNForUpdate(ctx, tx, orderSN)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		prev := order.Status
		if !canTransition(prev, target) {
			return ErrInvalidTransition
		}

		var paidAt *time.Time
		if target == models.OrderStatusPaid {
			now := time.Now()
			paidAt = &now
		}
		if err := s.OrderDAO.UpdateStatus(ctx, tx, orderSN, target, paidAt); err != nil {
			return err
		}
		order.Status = target
		order.PaidAt = paidAt

		if target == models.OrderStatusCancelled || target == models.OrderStatusRefunded {
			if stockWasDeducted(prev) {
				items, err = s.OrderDAO.ItemsBySN(ctx, tx, orderSN)
				if err != nil {
					return err
				}
				return s.Stock.RestoreForOrder(ctx, tx, orderSN, items, order.StaffID)
			}
			// 不算错误，记日志留痕即可
			log.L.Info("stock reversal skipped",
				zap.String("order_sn", orderSN),
				zap.Int8("prev_status", prev),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var award *types.VIPAwardResult
	if target == models.OrderStatusPaid {
		award = s.processOrderForVIP(ctx, order)
	}

	return s.toOrderResp(order, items, award), nil
}

// processOrderForVIP 商业-会员桥：订单支付成功后按消费金额返积分。
// 没有关联会员直接跳过（不是错误）；积分侧失败不影响已完成的支付。
func (s *OrderService) processOrderForVIP(ctx context.Context, order *models.Order) *types.VIPAwardResult {
	if order.CustomerID == nil {
		return nil
	}

	points, result, err := s.Points.ProcessConsumption(ctx, *order.CustomerID, int64(order.TotalAmount), order.Currency, order.OrderSn)
	if err != nil {
		log.L.Error("vip award failed after payment",
			zap.String("order_sn", order.OrderSn),
			zap.Int64("customer_id", *order.CustomerID),
			zap.Error(err),
		)
		return &types.VIPAwardResult{Awarded: false}
	}

	return &types.VIPAwardResult{
		Awarded: true,
		Points:  points,
		Balance: result.Balance,
		Tier:    result.Tier,
	}
}

func (s *OrderService) GetOrder(ctx context.Context, orderSN string) (*types.OrderResp, error) {
	order, err := s.OrderDAO.FindBySN(ctx, orderSN)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	items, err := s.OrderDAO.ItemsBySN(ctx, nil, orderSN)
	if err != nil {
		return nil, err
	}
	return s.toOrderResp(order, items, nil), nil
}

// GetOrderList 游标分页
func (s *OrderService) GetOrderList(ctx context.Context, customerID int64, cursor int64, pageSize int) (*types.ListOrdersResp, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	// 多查一条（pageSize + 1）用来判断是否还有下一页
	orders, err := s.OrderDAO.ListByCustomer(ctx, customerID, cursor, pageSize+1)
	if err != nil {
		return nil, err
	}

	resp := &types.ListOrdersResp{
		Orders:  make([]types.OrderResp, 0),
		HasMore: false,
	}
	if len(orders) > pageSize {
		resp.HasMore = true
		orders = orders[:pageSize]
		resp.NextCursor = int64(orders[len(orders)-1].ID)
	}

	for _, o := range orders {
		resp.Orders = append(resp.Orders, *s.toOrderResp(o, nil, nil))
	}
	return resp, nil
}

func (s *OrderService) toOrderResp(order *models.Order, items []models.OrderItem, award *types.VIPAwardResult) *types.OrderResp {
	resp := &types.OrderResp{
		OrderSN:     order.OrderSn,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt.Format("2006-01-02 15:04:05"),
		VIP:         award,
	}
	if order.PaidAt != nil {
		resp.PaidAt = order.PaidAt.Format("2006-01-02 15:04:05")
	}
	for _, item := range items {
		resp.Items = append(resp.Items, types.OrderItemResp{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			ProductPrice:   item.ProductPrice,
			Quantity:       item.Quantity,
			SubtotalAmount: item.SubtotalAmount,
		})
	}
	return resp
}
