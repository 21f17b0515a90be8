package service

import (
	"Encore/config"
	"Encore/dao"
	"Encore/models"
	"Encore/pkg/log"
	"Encore/pkg/utils"
	"Encore/types"
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PointService 积分台账，vip_memberships 余额的唯一合法修改入口。
// 每次变动同一事务内落余额、累计、等级和一条 balance_after 快照流水。
type PointService struct {
	Config *config.Config
	DB     *gorm.DB
	VIPDAO *dao.VIP
	Rules  IRuleService
	Tier   *TierEngine
	Card   ICardService
}

var _ IPointService = (*PointService)(nil)

type IPointService interface {
	AwardPoints(ctx context.Context, userID int64, source int8, amount int64, meta map[string]interface{}, refID string) (*types.PointsResult, error)
	ProcessConsumption(ctx context.Context, userID int64, amountCents int64, currency string, refID string) (int64, *types.PointsResult, error)
	ProcessEventCheckin(ctx context.Context, userID int64, eventRef string, refID string) (*types.PointsResult, error)
	AdjustPointsManually(ctx context.Context, userID int64, delta int64, reason string, adminID int64) (*types.PointsResult, error)
	GetMembership(ctx context.Context, userID int64) (*models.VIPMembership, error)
	ListPointRecords(ctx context.Context, userID int64, action string, cursor int64, limit int) (*types.ListPointsRecord, error)
}

// AwardPoints 积分入账。
// 首次得分懒创建会员（银卡零余额）；amount 可为 0 或负数：
// 余额允许透支，但 lifetime_points 只累加正数，等级永不因扣分回落。
func (p *PointService) AwardPoints(ctx context.Context, userID int64, source int8, amount int64, meta map[string]interface{}, refID string) (*types.PointsResult, error) {
	if refID == "" {
		refID = uuid.NewString()
	}

	var result types.PointsResult

	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 幂等检查：同一业务单号 + 来源只入账一次
		exists, err := p.VIPDAO.CheckLogExists(ctx, tx, userID, refID, source)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateAward
		}

		m, err := p.VIPDAO.GetMembershipForUpdate(ctx, tx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if m, err = p.VIPDAO.CreateMembership(ctx, tx, userID); err != nil {
				// 开户失败必须捕获，防止出现有流水没账户的情况
				return err
			}
		}

		newBalance := m.PointsBalance + amount
		lifetime := m.LifetimePoints
		if amount > 0 {
			lifetime += amount
		}
		prevTier := m.Tier
		newTier := p.Tier.CalculateTier(ctx, lifetime)

		if err := p.VIPDAO.UpdatePoints(ctx, tx, userID, map[string]interface{}{
			"points_balance":  newBalance,
			"lifetime_points": lifetime,
			"tier":            newTier,
		}); err != nil {
			return err
		}

		metaJSON, _ := json.Marshal(meta)
		logRecord := &models.VIPPointsLog{
			UserID:       userID,
			Source:       source,
			RefID:        refID,
			DeltaPoints:  amount,
			BalanceAfter: newBalance,
			Metadata:     metaJSON,
		}
		if err := p.VIPDAO.CreatePointsLog(ctx, tx, logRecord); err != nil {
			return err
		}

		result = types.PointsResult{
			Balance:        newBalance,
			LifetimePoints: lifetime,
			Tier:           newTier,
			TierChanged:    newTier != prevTier,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.TierChanged {
		// 卡片元数据刷新是尽力而为的下游同步，失败只记日志，不影响积分入账
		go func(uid int64, tier string) {
			defer func() {
				if r := recover(); r != nil {
					log.L.Error("card refresh panic", zap.String("stack", utils.PanicTrace(r)))
				}
			}()
			if err := p.Card.RefreshCardMetadata(context.Background(), uid); err != nil {
				log.L.Error("card metadata refresh failed",
					zap.Int64("user_id", uid),
					zap.String("tier", tier),
					zap.Error(err),
				)
			}
		}(userID, result.Tier)
	}

	return &result, nil
}

// consumptionPoints 把消费金额（分）按“每 perUnit 货币单位换 1 积分”折算。
// 换算到分粒度做整除（向下取整），避免浮点截断误差。
func consumptionPoints(amountCents int64, perUnit float64) (int64, error) {
	centsPerPoint := int64(math.Round(perUnit * 100))
	if centsPerPoint <= 0 {
		return 0, ErrBadRuleRate
	}
	points := amountCents / centsPerPoint
	if points < 0 {
		points = 0
	}
	return points, nil
}

// ProcessConsumption 消费返利：按规则把订单金额换算成积分。
// 规则值的含义是“每多少货币单位换 1 积分”（默认 3）。
func (p *PointService) ProcessConsumption(ctx context.Context, userID int64, amountCents int64, currency string, refID string) (int64, *types.PointsResult, error) {
	per := p.Rules.Rate(ctx, models.RuleConsumption, p.Config.VIP.ConsumptionPerPointOrDefault())

	points, err := consumptionPoints(amountCents, per)
	if err != nil {
		return 0, nil, err
	}

	result, err := p.AwardPoints(ctx, userID, models.SourceConsumption, points, map[string]interface{}{
		"amount_cents": amountCents,
		"currency":     currency,
	}, refID)
	if err != nil {
		return 0, nil, err
	}
	return points, result, nil
}

// ProcessEventCheckin 活动签到加固定积分（默认 10）
func (p *PointService) ProcessEventCheckin(ctx context.Context, userID int64, eventRef string, refID string) (*types.PointsResult, error) {
	points := int64(p.Rules.Rate(ctx, models.RuleEventCheckin, float64(p.Config.VIP.CheckinPointsOrDefault())))

	return p.AwardPoints(ctx, userID, models.SourceCheckin, points, map[string]interface{}{
		"event_ref": eventRef,
	}, refID)
}

// AdjustPointsManually 后台人工调整。delta 可为负，余额可透支；
// 操作原因和操作人写进流水元数据留痕。
func (p *PointService) AdjustPointsManually(ctx context.Context, userID int64, delta int64, reason string, adminID int64) (*types.PointsResult, error) {
	return p.AwardPoints(ctx, userID, models.SourceManual, delta, map[string]interface{}{
		"reason":   reason,
		"admin_id": adminID,
	}, "")
}

func (p *PointService) GetMembership(ctx context.Context, userID int64) (*models.VIPMembership, error) {
	m, err := p.VIPDAO.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// ListPointRecords 游标分页筛选积分流水
func (p *PointService) ListPointRecords(ctx context.Context, userID int64, action string, cursor int64, limit int) (*types.ListPointsRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	logs, err := p.VIPDAO.ListRecords(ctx, userID, action, cursor, limit+1)
	if err != nil {
		return nil, err
	}

	resp := &types.ListPointsRecord{
		Records: make([]types.PointRecord, 0),
		HasMore: false,
	}
	if len(logs) > limit {
		resp.HasMore = true
		logs = logs[:limit]
		resp.NextCursor = int64(logs[len(logs)-1].ID)
	}

	for _, l := range logs {
		orderType := "INCOME"
		if l.DeltaPoints < 0 {
			orderType = "EXPENSE"
		}
		resp.Records = append(resp.Records, types.PointRecord{
			ID:           l.ID,
			DeltaPoints:  l.DeltaPoints,
			BalanceAfter: l.BalanceAfter,
			Source:       l.Source,
			RefID:        l.RefID,
			OrderType:    orderType,
			CreatedAt:    l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return resp, nil
}
