package types

// RuleItem 积分规则展示/编辑
type RuleItem struct {
	ActionType string  `json:"action_type"`
	Rate       float64 `json:"rate"`
	Active     bool    `json:"active"`
}

type UpdateRuleReq struct {
	Rate   float64 `json:"rate" binding:"required,gt=0"`
	Active *bool   `json:"active" binding:"required"`
}
