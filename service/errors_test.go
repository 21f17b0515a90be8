package service

import (
	"fmt"
	"testing"

	"Encore/types"
)

func TestIsInsufficientStock(t *testing.T) {
	base := &InsufficientStockError{Shortfalls: []types.Shortfall{
		{ProductID: 1, Requested: 5, Available: 2},
	}}

	// 事务包装后仍能还原出缺货明细
	wrapped := fmt.Errorf("创建订单失败: %w", base)
	ise, ok := IsInsufficientStock(wrapped)
	if !ok {
		t.Fatal("包装后的缺货错误未被识别")
	}
	if len(ise.Shortfalls) != 1 || ise.Shortfalls[0].ProductID != 1 {
		t.Errorf("缺货明细丢失: %+v", ise.Shortfalls)
	}

	if _, ok := IsInsufficientStock(ErrOrderNotFound); ok {
		t.Error("普通错误不应被识别为缺货")
	}
}
