package dao

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// 加锁读必须真的带出 FOR UPDATE，否则并发扣减会互相覆盖
func TestProductFindForUpdateLocksRow(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM `products` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "price", "stock_quantity", "status"}).
			AddRow(1, "门票", 3000, 5, 1))

	product, err := NewProduct(gdb).FindForUpdate(context.Background(), gdb, 1)
	if err != nil {
		t.Fatalf("加锁读取失败: %v", err)
	}
	if product.StockQuantity != 5 {
		t.Errorf("StockQuantity = %d, want 5", product.StockQuantity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
