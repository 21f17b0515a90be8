package service

import (
	"Encore/config"
	"Encore/dao"
	"Encore/models"
	"Encore/pkg/snowflake"
	"Encore/pkg/utils"
	"Encore/types"
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// 权益目录兜底（配置未给出时）
var defaultBenefits = map[string][]string{
	models.TierSilver: {"会员价"},
	models.TierGold:   {"会员价", "活动优先报名", "生日礼"},
	models.TierBlack:  {"会员价", "活动优先报名", "生日礼", "专属经纪人", "贵宾休息室"},
}

// CardService 实体卡（NFC）维护。Metadata 只是会员状态的只读快照，
// 任何时候整体重算覆写都是安全的。
type CardService struct {
	Config  *config.Config
	VIPDAO  *dao.VIP
	CardDAO *dao.Card
}

var _ ICardService = (*CardService)(nil)

type ICardService interface {
	RefreshCardMetadata(ctx context.Context, userID int64) error
	IssueCard(ctx context.Context, userID int64, cardClass string) (*models.ExternalCard, error)
	BlockCard(ctx context.Context, cardID uint64) error
	ListCards(ctx context.Context, userID int64) ([]types.CardResp, error)
	LookupByUID(ctx context.Context, cardUID string) (*types.CardResp, error)
}

// RefreshCardMetadata 把会员当前等级和权益快照覆写到名下所有卡片。
// 纯缓存填充，调用方可以放心跳过瞬时失败。
func (s *CardService) RefreshCardMetadata(ctx context.Context, userID int64) error {
	m, err := s.VIPDAO.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 没有会员就没有可同步的内容
			return nil
		}
		return err
	}

	meta, err := json.Marshal(map[string]interface{}{
		"tier":      m.Tier,
		"benefits":  s.benefitsFor(m.Tier),
		"synced_at": time.Now().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return err
	}

	return s.CardDAO.UpdateMetadataByOwner(ctx, userID, meta)
}

func (s *CardService) benefitsFor(tier string) []string {
	if s.Config.VIP.Benefits != nil {
		if titles, ok := s.Config.VIP.Benefits[tier]; ok {
			return titles
		}
	}
	return defaultBenefits[tier]
}

// IssueCard 发卡并立即灌一次快照
func (s *CardService) IssueCard(ctx context.Context, userID int64, cardClass string) (*models.ExternalCard, error) {
	card := &models.ExternalCard{
		CardUID:   utils.GenCardSerial(s.Config.App.CardSalt, snowflake.GenID()),
		OwnerID:   userID,
		CardClass: cardClass,
		Status:    models.CardStatusActive,
	}
	if err := s.CardDAO.CreateCard(ctx, card); err != nil {
		return nil, err
	}

	_ = s.RefreshCardMetadata(ctx, userID)
	return card, nil
}

func (s *CardService) BlockCard(ctx context.Context, cardID uint64) error {
	return s.CardDAO.UpdateStatus(ctx, cardID, models.CardStatusBlocked)
}

// LookupByUID 刷卡场景按卡面序列号读卡，快照里直接带等级和权益
func (s *CardService) LookupByUID(ctx context.Context, cardUID string) (*types.CardResp, error) {
	card, err := s.CardDAO.FindByUID(ctx, cardUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	var meta any
	if len(card.Metadata) > 0 {
		_ = json.Unmarshal(card.Metadata, &meta)
	}
	return &types.CardResp{
		ID:        card.ID,
		CardUID:   card.CardUID,
		OwnerID:   card.OwnerID,
		CardClass: card.CardClass,
		Status:    card.Status,
		Metadata:  meta,
	}, nil
}

func (s *CardService) ListCards(ctx context.Context, userID int64) ([]types.CardResp, error) {
	cards, err := s.CardDAO.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]types.CardResp, 0, len(cards))
	for _, c := range cards {
		var meta any
		if len(c.Metadata) > 0 {
			_ = json.Unmarshal(c.Metadata, &meta)
		}
		resp = append(resp, types.CardResp{
			ID:        c.ID,
			CardUID:   c.CardUID,
			OwnerID:   c.OwnerID,
			CardClass: c.CardClass,
			Status:    c.Status,
			Metadata:  meta,
		})
	}
	return resp, nil
}
