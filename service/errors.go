package service

import (
	"Encore/types"
	"errors"
	"fmt"
)

var (
	ErrProductNotFound   = errors.New("商品不存在")
	ErrProductExists     = errors.New("商品已存在")
	ErrProductInactive   = errors.New("商品已下架")
	ErrOrderNotFound     = errors.New("订单不存在")
	ErrCardNotFound      = errors.New("卡片不存在")
	ErrInvalidTransition = errors.New("订单状态不允许该流转")
	ErrEmptyOrder        = errors.New("订单明细不能为空")
	ErrNoFieldsToUpdate  = errors.New("没有需要更新的字段")
	ErrDuplicateAward    = errors.New("该业务已处理，请勿重复操作")
	ErrBadRuleRate       = errors.New("积分规则数值无效")
)

// InsufficientStockError 缺货拒单。携带逐行缺口明细，调用方原样展示给用户，
// 不做自动重试。
type InsufficientStockError struct {
	Shortfalls []types.Shortfall
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("库存不足，共 %d 个商品缺货", len(e.Shortfalls))
}

func IsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}
