package service

import (
	"context"
	"errors"
	"testing"

	"Encore/config"
	"Encore/dao"
	"Encore/models"
	"Encore/types"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestConsumptionPoints(t *testing.T) {
	cases := []struct {
		name        string
		amountCents int64
		perUnit     float64
		want        int64
	}{
		{"整除", 3000, 3, 10},       // 30.00 元，每 3 元 1 分
		{"向下取整", 3099, 3, 10},   // 30.99 元不满一档
		{"差一分", 299, 3, 0},
		{"刚好一档", 300, 3, 1},
		{"小数费率", 3000, 1.5, 20}, // 每 1.5 元 1 分
		{"零金额", 0, 3, 0},
		{"负金额归零", -500, 3, 0},
	}
	for _, c := range cases {
		got, err := consumptionPoints(c.amountCents, c.perUnit)
		if err != nil {
			t.Errorf("%s: 非预期错误 %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: consumptionPoints(%d, %v) = %d, want %d", c.name, c.amountCents, c.perUnit, got, c.want)
		}
	}
}

func TestConsumptionPointsBadRate(t *testing.T) {
	for _, per := range []float64{0, -1, 0.001} {
		if _, err := consumptionPoints(1000, per); !errors.Is(err, ErrBadRuleRate) {
			t.Errorf("per=%v 应返回 ErrBadRuleRate，实际 %v", per, err)
		}
	}
}

// fixedRules 规则表为空时的行为：一律返回兜底值
type fixedRules struct{}

func (fixedRules) Rate(ctx context.Context, actionType string, fallback float64) float64 {
	return fallback
}
func (fixedRules) ListRules(ctx context.Context) ([]types.RuleItem, error) { return nil, nil }
func (fixedRules) UpdateRule(ctx context.Context, actionType string, rate float64, active bool) error {
	return nil
}
func (fixedRules) ClearCache(actionType string) {}

var _ IRuleService = fixedRules{}

// 入账流水的 balance_after 必须等于本次变动后的账户余额
func TestAwardPointsLogsBalanceAfter(t *testing.T) {
	gdb, mock := newMockDB(t)

	cfg := &config.Config{VIP: &config.VIP{}}
	svc := &PointService{
		Config: cfg,
		DB:     gdb,
		VIPDAO: dao.NewVIP(gdb),
		Rules:  fixedRules{},
		Tier:   &TierEngine{Config: cfg, Rules: fixedRules{}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `vip_points_log`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectQuery("SELECT .+ FROM `vip_memberships` .+ FOR UPDATE$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "tier", "points_balance", "lifetime_points", "status"}).
			AddRow(1, 7, models.TierSilver, 100, 400, 1))
	mock.ExpectExec("UPDATE `vip_memberships` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// 字段顺序: user_id, source, ref_id, delta_points, balance_after, metadata, created_at
	mock.ExpectExec("INSERT INTO `vip_points_log`").
		WithArgs(int64(7), models.SourceManual, "ref-1", int64(30), int64(130), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := svc.AwardPoints(context.Background(), 7, models.SourceManual, 30, nil, "ref-1")
	if err != nil {
		t.Fatalf("入账失败: %v", err)
	}
	if result.Balance != 130 || result.LifetimePoints != 430 {
		t.Errorf("余额快照不符: %+v", result)
	}
	if result.TierChanged {
		t.Error("累计 430 未过金卡门槛，不应升级")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// 同一业务单号重复入账被幂等检查拦下，事务回滚
func TestAwardPointsIdempotent(t *testing.T) {
	gdb, mock := newMockDB(t)

	cfg := &config.Config{VIP: &config.VIP{}}
	svc := &PointService{
		Config: cfg,
		DB:     gdb,
		VIPDAO: dao.NewVIP(gdb),
		Rules:  fixedRules{},
		Tier:   &TierEngine{Config: cfg, Rules: fixedRules{}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `vip_points_log`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectRollback()

	if _, err := svc.AwardPoints(context.Background(), 7, models.SourceManual, 30, nil, "ref-1"); !errors.Is(err, ErrDuplicateAward) {
		t.Errorf("重复入账应返回 ErrDuplicateAward，实际 %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
