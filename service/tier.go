package service

import (
	"Encore/config"
	"Encore/models"
	"context"
)

// TierEngine 等级引擎：等级只由 lifetime_points（只增不减）推导，
// 因此任何已达到的等级都不会回落。
type TierEngine struct {
	Config *config.Config
	Rules  IRuleService
}

func (t *TierEngine) CalculateTier(ctx context.Context, lifetimePoints int64) string {
	gold := int64(t.Rules.Rate(ctx, models.RuleThresholdGold, float64(t.Config.VIP.GoldThresholdOrDefault())))
	black := int64(t.Rules.Rate(ctx, models.RuleThresholdBlack, float64(t.Config.VIP.BlackThresholdOrDefault())))
	return tierFor(lifetimePoints, gold, black)
}

// tierFor 纯阈值比较，lifetime 越大等级单调不降
func tierFor(lifetime, goldThreshold, blackThreshold int64) string {
	switch {
	case lifetime >= blackThreshold:
		return models.TierBlack
	case lifetime >= goldThreshold:
		return models.TierGold
	default:
		return models.TierSilver
	}
}
