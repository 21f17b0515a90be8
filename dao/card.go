package dao

import (
	"Encore/models"
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Card struct {
	Repo[models.ExternalCard]
}

func NewCard(db *gorm.DB) *Card {
	return &Card{
		Repo: NewRepo[models.ExternalCard](db),
	}
}

func (c *Card) CreateCard(ctx context.Context, card *models.ExternalCard) error {
	return c.Db.WithContext(ctx).Create(card).Error
}

func (c *Card) FindByUID(ctx context.Context, cardUID string) (*models.ExternalCard, error) {
	return c.FindByWhere(ctx, "card_uid = ?", cardUID)
}

func (c *Card) FindByOwner(ctx context.Context, ownerID int64) ([]*models.ExternalCard, error) {
	return c.FindAllByWhere(ctx, "owner_id = ?", ownerID)
}

// UpdateMetadataByOwner 整体覆写持卡人所有卡片的快照元数据
func (c *Card) UpdateMetadataByOwner(ctx context.Context, ownerID int64, metadata datatypes.JSON) error {
	return c.Db.WithContext(ctx).Model(&models.ExternalCard{}).
		Where("owner_id = ?", ownerID).
		Update("metadata", metadata).Error
}

func (c *Card) UpdateStatus(ctx context.Context, cardID uint64, status int8) error {
	return c.Db.WithContext(ctx).Model(&models.ExternalCard{}).
		Where("id = ?", cardID).
		Update("status", status).Error
}
