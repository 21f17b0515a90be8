package service

import (
	"Encore/config"
	"Encore/dao"
	"Encore/dao/cache"
	"Encore/models"
	"Encore/pkg/log"
	"Encore/types"
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RuleService 积分规则读取口。规则走进程内 TTL 缓存（短过期），
// 管理端改规则时主动清缓存并经 redis 广播到所有实例。
type RuleService struct {
	conf    *config.Config
	ruleDAO *dao.PointRule
	storage *cache.RuleStorage
	local   *gocache.Cache
}

var _ IRuleService = (*RuleService)(nil)

type IRuleService interface {
	Rate(ctx context.Context, actionType string, fallback float64) float64
	ListRules(ctx context.Context) ([]types.RuleItem, error)
	UpdateRule(ctx context.Context, actionType string, rate float64, active bool) error
	ClearCache(actionType string)
}

func NewRuleService(conf *config.Config, ruleDAO *dao.PointRule, storage *cache.RuleStorage) *RuleService {
	ttl := conf.VIP.RuleCacheTTL
	if ttl <= 0 {
		ttl = 60
	}

	s := &RuleService{
		conf:    conf,
		ruleDAO: ruleDAO,
		storage: storage,
		local:   gocache.New(time.Duration(ttl)*time.Second, 2*time.Duration(ttl)*time.Second),
	}
	go s.watchInvalidate()
	return s
}

// Rate 取规则数值。表里没配置（或已停用）时返回 fallback；
// 命中与兜底都会进短 TTL 缓存，避免每次变动都打库。
func (s *RuleService) Rate(ctx context.Context, actionType string, fallback float64) float64 {
	if v, ok := s.local.Get(actionType); ok {
		return v.(float64)
	}

	rate := fallback
	rule, err := s.ruleDAO.FindByAction(ctx, actionType)
	if err == nil && rule.Rate > 0 {
		rate = rule.Rate
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		// 查库失败用兜底值，但不缓存，下次再试
		log.L.Error("load point rule failed", zap.String("action", actionType), zap.Error(err))
		return fallback
	}

	s.local.Set(actionType, rate, gocache.DefaultExpiration)
	return rate
}

func (s *RuleService) ListRules(ctx context.Context) ([]types.RuleItem, error) {
	rules, err := s.ruleDAO.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.RuleItem, 0, len(rules))
	for _, r := range rules {
		items = append(items, types.RuleItem{
			ActionType: r.ActionType,
			Rate:       r.Rate,
			Active:     r.Active,
		})
	}
	return items, nil
}

// UpdateRule 管理端改规则：落库、清本地缓存、广播其它实例失效
func (s *RuleService) UpdateRule(ctx context.Context, actionType string, rate float64, active bool) error {
	if rate <= 0 {
		return ErrBadRuleRate
	}
	err := s.ruleDAO.Upsert(ctx, &models.PointRule{
		ActionType: actionType,
		Rate:       rate,
		Active:     active,
	})
	if err != nil {
		return err
	}

	s.ClearCache(actionType)
	if err := s.storage.PublishInvalidate(ctx, actionType); err != nil {
		// 广播失败不回滚规则本身，其它实例等 TTL 过期兜底
		log.L.Warn("rule invalidate broadcast failed", zap.String("action", actionType), zap.Error(err))
	}
	return nil
}

func (s *RuleService) ClearCache(actionType string) {
	if actionType == "" {
		s.local.Flush()
		return
	}
	s.local.Delete(actionType)
}

func (s *RuleService) watchInvalidate() {
	for actionType := range s.storage.Subscribe(context.Background()) {
		s.ClearCache(actionType)
		log.L.Info("rule cache invalidated", zap.String("action", actionType))
	}
}
