package dao

import (
	"Encore/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VIP struct {
	Repo[models.VIPMembership]
}

func NewVIP(db *gorm.DB) *VIP {
	return &VIP{
		Repo: NewRepo[models.VIPMembership](db),
	}
}

func (v *VIP) GetMembership(ctx context.Context, userID int64) (*models.VIPMembership, error) {
	return v.FindByWhere(ctx, "user_id = ?", userID)
}

// GetMembershipForUpdate 在事务内加行锁读取会员，同一用户的积分变动串行化
func (v *VIP) GetMembershipForUpdate(ctx context.Context, tx *gorm.DB, userID int64) (*models.VIPMembership, error) {
	var m models.VIPMembership
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMembership 初始化会员（首次获得积分时懒创建，银卡零余额）
func (v *VIP) CreateMembership(ctx context.Context, tx *gorm.DB, userID int64) (*models.VIPMembership, error) {
	m := &models.VIPMembership{
		UserID:         userID,
		Tier:           models.TierSilver,
		PointsBalance:  0,
		LifetimePoints: 0,
		Status:         models.MembershipStatusActive,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// UpdatePoints 覆写余额/累计/等级，必须在持有行锁的事务内调用
func (v *VIP) UpdatePoints(ctx context.Context, tx *gorm.DB, userID int64, updates map[string]interface{}) error {
	return tx.WithContext(ctx).Model(&models.VIPMembership{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (v *VIP) CreatePointsLog(ctx context.Context, tx *gorm.DB, log *models.VIPPointsLog) error {
	return tx.WithContext(ctx).Create(log).Error
}

// CheckLogExists 幂等检查：同一业务单号 + 来源只允许入账一次
func (v *VIP) CheckLogExists(ctx context.Context, tx *gorm.DB, userID int64, refID string, source int8) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&models.VIPPointsLog{}).
		Where("user_id = ? AND ref_id = ? AND source = ?", userID, refID, source).
		Count(&count).Error
	return count > 0, err
}

// ListRecords 游标分页筛选积分流水
func (v *VIP) ListRecords(ctx context.Context, userID int64, action string, cursor int64, limit int) ([]models.VIPPointsLog, error) {
	var logs []models.VIPPointsLog
	query := v.Db.WithContext(ctx).Where("user_id = ?", userID)

	switch action {
	case "income":
		query = query.Where("delta_points > ?", 0)
	case "expense":
		query = query.Where("delta_points < ?", 0)
	}

	if cursor > 0 {
		query = query.Where("id < ?", cursor)
	}

	err := query.Order("id DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
