package service

import (
	"context"
	"testing"

	"Encore/dao"
	"Encore/models"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB 基于 sqlmock 的 gorm 连接，SQL 以正则断言
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return gdb, mock
}

func newStockService(gdb *gorm.DB) *StockService {
	return &StockService{
		DB:          gdb,
		ProductDAO:  dao.NewProduct(gdb),
		MovementDAO: dao.NewInventoryMovement(gdb),
	}
}

// 超量扣减必须整体拒绝：事务回滚，不落库存也不落流水
func TestAdjustStockRejectsOverDeduction(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `products` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "price", "stock_quantity", "status"}).
			AddRow(1, "门票", 3000, 2, 1))
	mock.ExpectRollback()

	svc := newStockService(gdb)
	_, err := svc.AdjustStock(context.Background(), 1, -10, models.MovementReasonManual, "", nil, "")

	ise, ok := IsInsufficientStock(err)
	if !ok {
		t.Fatalf("应返回缺货错误，实际 %v", err)
	}
	if len(ise.Shortfalls) != 1 || ise.Shortfalls[0].Requested != 10 || ise.Shortfalls[0].Available != 2 {
		t.Errorf("缺口明细不符: %+v", ise.Shortfalls)
	}
	// 期望之外的 UPDATE/INSERT 会在这里暴露
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// 正常调整：同一事务里覆写库存并追加等额流水
func TestAdjustStockWritesStockAndMovement(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM `products` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_name", "price", "stock_quantity", "low_stock_threshold", "status"}).
			AddRow(1, "门票", 3000, 5, 0, 1))
	mock.ExpectExec("UPDATE `products` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `inventory_movements`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := newStockService(gdb)
	product, err := svc.AdjustStock(context.Background(), 1, 10, models.MovementReasonRestock, "", nil, "进货")
	if err != nil {
		t.Fatalf("调整失败: %v", err)
	}
	if product.StockQuantity != 15 {
		t.Errorf("StockQuantity = %d, want 15", product.StockQuantity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// 对账：库存等于流水净和则平，不等则报不平
func TestReconcile(t *testing.T) {
	cases := []struct {
		name     string
		sum      int64
		balanced bool
	}{
		{"账平", 50, true},
		{"账不平", 47, false},
	}
	for _, c := range cases {
		gdb, mock := newMockDB(t)

		mock.ExpectQuery("SELECT .+ FROM `products`").
			WillReturnRows(sqlmock.NewRows([]string{"id", "stock_quantity", "low_stock_threshold"}).
				AddRow(1, 50, 10))
		mock.ExpectQuery("FROM `inventory_movements`").
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(c.sum))

		svc := newStockService(gdb)
		resp, err := svc.Reconcile(context.Background(), 1)
		if err != nil {
			t.Fatalf("%s: 对账失败: %v", c.name, err)
		}
		if resp.Balanced != c.balanced {
			t.Errorf("%s: Balanced = %v, want %v", c.name, resp.Balanced, c.balanced)
		}
		if resp.MovementSum != c.sum {
			t.Errorf("%s: MovementSum = %d, want %d", c.name, resp.MovementSum, c.sum)
		}
	}
}
