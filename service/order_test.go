package service

import (
	"context"
	"testing"

	"Encore/dao"
	"Encore/models"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/gorm"
)

func TestCanTransition(t *testing.T) {
	all := []int8{
		models.OrderStatusPending,
		models.OrderStatusPaid,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
		models.OrderStatusFailed,
	}

	allowed := map[[2]int8]bool{
		{models.OrderStatusPending, models.OrderStatusPaid}:      true,
		{models.OrderStatusPending, models.OrderStatusCancelled}: true,
		{models.OrderStatusPending, models.OrderStatusFailed}:    true,
		{models.OrderStatusPaid, models.OrderStatusCancelled}:    true,
		{models.OrderStatusPaid, models.OrderStatusRefunded}:     true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]int8{from, to}]
			if got := canTransition(from, to); got != want {
				t.Errorf("canTransition(%d, %d) = %v, want %v", from, to, got, want)
			}
		}
	}
}

// 终态不允许再流转，库存也不允许二次回补
func TestTerminalStatesAreFinal(t *testing.T) {
	terminals := []int8{models.OrderStatusCancelled, models.OrderStatusRefunded, models.OrderStatusFailed}
	targets := []int8{
		models.OrderStatusPending,
		models.OrderStatusPaid,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded,
		models.OrderStatusFailed,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if canTransition(from, to) {
				t.Errorf("终态 %d 不应允许流转到 %d", from, to)
			}
		}
	}
}

func newOrderService(gdb *gorm.DB) *OrderService {
	return &OrderService{
		DB:         gdb,
		OrderDAO:   dao.NewOrder(gdb),
		ProductDAO: dao.NewProduct(gdb),
		Stock:      newStockService(gdb),
	}
}

// 已支付订单取消一次回补库存，再次取消被状态机拦下，不会二次回补
func TestCancelRestoresStockExactlyOnce(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := newOrderService(gdb)

	// 第一次取消：流转 + 回补
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `orders` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_sn", "total_amount", "currency", "status"}).
			AddRow(1, "SN1", 6000, "CNY", models.OrderStatusPaid))
	mock.ExpectExec("UPDATE `orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT .+ FROM `order_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_sn", "product_id", "product_name", "product_price", "quantity", "subtotal_amount"}).
			AddRow(1, "SN1", 1, "门票", 3000, 2, 6000))
	mock.ExpectQuery("SELECT .+ FROM `products` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "price", "stock_quantity", "status"}).
			AddRow(1, "门票", 3000, 3, 1))
	mock.ExpectExec("UPDATE `products` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `inventory_movements`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	resp, err := svc.SetOrderStatus(context.Background(), "SN1", models.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("第一次取消失败: %v", err)
	}
	if resp.Status != models.OrderStatusCancelled {
		t.Errorf("Status = %d, want %d", resp.Status, models.OrderStatusCancelled)
	}

	// 第二次取消：终态拒绝流转，事务回滚，没有任何写入
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `orders` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_sn", "total_amount", "currency", "status"}).
			AddRow(1, "SN1", 6000, "CNY", models.OrderStatusCancelled))
	mock.ExpectRollback()

	if _, err := svc.SetOrderStatus(context.Background(), "SN1", models.OrderStatusCancelled); err != ErrInvalidTransition {
		t.Errorf("重复取消应返回 ErrInvalidTransition，实际 %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestStockWasDeducted(t *testing.T) {
	cases := []struct {
		status int8
		want   bool
	}{
		{models.OrderStatusPending, true},
		{models.OrderStatusPaid, true},
		{models.OrderStatusCancelled, false},
		{models.OrderStatusRefunded, false},
		{models.OrderStatusFailed, false},
	}
	for _, c := range cases {
		if got := stockWasDeducted(c.status); got != c.want {
			t.Errorf("stockWasDeducted(%d) = %v, want %v", c.status, got, c.want)
		}
	}
}
