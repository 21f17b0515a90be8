package dao

import (
	"context"
	"testing"

	"Encore/models"

	"github.com/DATA-DOG/go-sqlmock"
)

// 状态流转前的订单读取必须带行锁，防止并发取消各自看到旧状态
func TestOrderFindBySNForUpdateLocksRow(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM `orders` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_sn", "status"}).
			AddRow(1, "SN1", models.OrderStatusPaid))

	order, err := NewOrder(gdb).FindBySNForUpdate(context.Background(), gdb, "SN1")
	if err != nil {
		t.Fatalf("加锁读取失败: %v", err)
	}
	if order.Status != models.OrderStatusPaid {
		t.Errorf("Status = %d, want %d", order.Status, models.OrderStatusPaid)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
