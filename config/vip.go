package config

// VIP 会员体系的兜底配置。积分规则优先读 vip_point_rules 表，
// 表里没配置时才落到这里的默认值。
type VIP struct {
	// ConsumptionPerPoint 每多少货币单位换 1 积分（默认 3）
	ConsumptionPerPoint float64 `json:"consumption_per_point" yaml:"consumption_per_point"`
	// CheckinPoints 活动签到固定奖励积分（默认 10）
	CheckinPoints int64 `json:"checkin_points" yaml:"checkin_points"`
	// GoldThreshold / BlackThreshold 升级所需累计积分（默认 500 / 1750）
	GoldThreshold  int64 `json:"gold_threshold" yaml:"gold_threshold"`
	BlackThreshold int64 `json:"black_threshold" yaml:"black_threshold"`
	// RuleCacheTTL 规则缓存秒数（默认 60）
	RuleCacheTTL int `json:"rule_cache_ttl" yaml:"rule_cache_ttl"`
	// Benefits 各等级权益名称，卡片元数据刷新时写入实体卡
	Benefits map[string][]string `json:"benefits" yaml:"benefits"`
}

func (v *VIP) ConsumptionPerPointOrDefault() float64 {
	if v.ConsumptionPerPoint > 0 {
		return v.ConsumptionPerPoint
	}
	return 3
}

func (v *VIP) CheckinPointsOrDefault() int64 {
	if v.CheckinPoints > 0 {
		return v.CheckinPoints
	}
	return 10
}

func (v *VIP) GoldThresholdOrDefault() int64 {
	if v.GoldThreshold > 0 {
		return v.GoldThreshold
	}
	return 500
}

func (v *VIP) BlackThresholdOrDefault() int64 {
	if v.BlackThreshold > 0 {
		return v.BlackThreshold
	}
	return 1750
}
