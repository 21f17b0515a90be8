package models

import (
	"time"

	"gorm.io/datatypes"
)

// 会员等级
const (
	TierSilver = "silver"
	TierGold   = "gold"
	TierBlack  = "black"
)

// 会员状态
const (
	MembershipStatusActive    int8 = 1 // 正常
	MembershipStatusSuspended int8 = 2 // 冻结
	MembershipStatusCancelled int8 = 3 // 注销
)

// VIPMembership 会员主表，每个用户至多一条。
// LifetimePoints 只增不减，等级完全由它推导；PointsBalance 可为负（欠分）。
type VIPMembership struct {
	ID             uint64    `gorm:"primaryKey;column:id"`
	UserID         int64     `gorm:"column:user_id;uniqueIndex"`
	Tier           string    `gorm:"column:tier;size:16;default:'silver'"`
	PointsBalance  int64     `gorm:"column:points_balance;default:0"` // 可用余额
	LifetimePoints int64     `gorm:"column:lifetime_points;default:0"`
	Status         int8      `gorm:"column:status;default:1"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (VIPMembership) TableName() string {
	return "vip_memberships"
}

// 积分变动来源
const (
	SourceCheckin     int8 = 1 // 活动签到
	SourceConsumption int8 = 2 // 消费返利
	SourceManual      int8 = 3 // 后台人工调整
	SourceTierBonus   int8 = 4 // 升级奖励
)

// VIPPointsLog 积分流水，只增不改不删。
// BalanceAfter 必须等于该条入账后会员的实际余额。
type VIPPointsLog struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	UserID       int64          `gorm:"column:user_id;index:idx_user_id"`
	Source       int8           `gorm:"column:source"`
	RefID        string         `gorm:"column:ref_id;index:idx_ref_id;size:64"` // 关联订单号/签到记录，幂等关键
	DeltaPoints  int64          `gorm:"column:delta_points"`                    // 变动数额（正负）
	BalanceAfter int64          `gorm:"column:balance_after"`                   // 变动后余额
	Metadata     datatypes.JSON `gorm:"column:metadata"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (VIPPointsLog) TableName() string {
	return "vip_points_log"
}

// 规则键
const (
	RuleConsumption    = "consumption"          // 每多少货币单位换 1 积分
	RuleEventCheckin   = "event_checkin"        // 签到固定奖励
	RuleThresholdGold  = "tier_threshold_gold"  // 升金所需累计积分
	RuleThresholdBlack = "tier_threshold_black" // 升黑所需累计积分
)

// PointRule 积分规则配置表，按动作类型取数值
type PointRule struct {
	ID         uint64    `gorm:"primaryKey;column:id"`
	ActionType string    `gorm:"column:action_type;size:64;uniqueIndex"`
	Rate       float64   `gorm:"column:rate"`
	Active     bool      `gorm:"column:active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (PointRule) TableName() string {
	return "vip_point_rules"
}
