package dao

import (
	"Encore/models"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointRule struct {
	Repo[models.PointRule]
}

func NewPointRule(db *gorm.DB) *PointRule {
	return &PointRule{
		Repo: NewRepo[models.PointRule](db),
	}
}

func (r *PointRule) FindByAction(ctx context.Context, actionType string) (*models.PointRule, error) {
	return r.FindByWhere(ctx, "action_type = ? AND active = ?", actionType, true)
}

func (r *PointRule) ListAll(ctx context.Context) ([]*models.PointRule, error) {
	return r.FindAllByWhere(ctx, "1 = 1")
}

// Upsert 按动作类型写入规则，存在则覆盖
func (r *PointRule) Upsert(ctx context.Context, rule *models.PointRule) error {
	return r.Db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "action_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"rate", "active"}),
		}).
		Create(rule).Error
}
