package types

// PointsResult 积分变动后的账户快照
type PointsResult struct {
	Balance        int64  `json:"balance"`         // 当前可用余额（可为负）
	LifetimePoints int64  `json:"lifetime_points"` // 历史累计，只增不减
	Tier           string `json:"tier"`
	TierChanged    bool   `json:"tier_changed"`
}

// MembershipResp 会员概览
type MembershipResp struct {
	UserID         int64  `json:"user_id"`
	Tier           string `json:"tier"`
	PointsBalance  int64  `json:"points_balance"`
	LifetimePoints int64  `json:"lifetime_points"`
	Status         int8   `json:"status"`
}

// AdjustPointsReq 后台人工调整积分。Delta 可为负，余额允许透支，
// 但历史累计不会因此减少
type AdjustPointsReq struct {
	UserID int64  `json:"user_id" binding:"required"`
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// CheckinReq 活动签到加分
type CheckinReq struct {
	UserID   int64  `json:"user_id" binding:"required"`
	EventRef string `json:"event_ref"`
	RefID    string `json:"ref_id"` // 唯一业务单号（幂等关键），不传则服务端生成
}

// PointRecord 每一条流水的细节
type PointRecord struct {
	ID           uint64 `json:"id"`
	DeltaPoints  int64  `json:"delta_points"`  // 变动数值（如 +10, -50）
	BalanceAfter int64  `json:"balance_after"` // 变动后余额快照
	Source       int8   `json:"source"`
	RefID        string `json:"ref_id,omitempty"`
	OrderType    string `json:"order_type"` // 界面显示类型: INCOME / EXPENSE
	CreatedAt    string `json:"created_at"` // 格式化时间: 2006-01-02 15:04:05
}

// ListPointsRecord 流水列表包装
type ListPointsRecord struct {
	Records    []PointRecord `json:"records"`
	NextCursor int64         `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}
