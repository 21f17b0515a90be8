package types

// IssueCardReq 发卡请求体
type IssueCardReq struct {
	UserID    int64  `json:"user_id" binding:"required"`
	CardClass string `json:"card_class" binding:"required"`
}

// CardResp 实体卡展示。Metadata 是等级/权益的只读快照
type CardResp struct {
	ID        uint64 `json:"id"`
	CardUID   string `json:"card_uid"`
	OwnerID   int64  `json:"owner_id"`
	CardClass string `json:"card_class"`
	Status    int8   `json:"status"`
	Metadata  any    `json:"metadata,omitempty"`
}
