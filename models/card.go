package models

import (
	"time"

	"gorm.io/datatypes"
)

// 卡片状态
const (
	CardStatusActive  int8 = 1 // 正常
	CardStatusBlocked int8 = 2 // 已冻结
)

// ExternalCard NFC 实体卡。Metadata 是会员等级/权益的只读快照，
// 供离线场景快速读取，随时可以整体重算，绝不作为数据源。
type ExternalCard struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"id"`
	CardUID   string         `gorm:"column:card_uid;size:64;uniqueIndex" json:"card_uid"` // 卡面序列号
	OwnerID   int64          `gorm:"column:owner_id;index:idx_owner_id" json:"owner_id"`
	CardClass string         `gorm:"column:card_class;size:32" json:"card_class"`
	Status    int8           `gorm:"column:status;default:1" json:"status"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ExternalCard) TableName() string {
	return "external_cards"
}
