package dao

import (
	"Tally/models"
	"context"

	"gorm.io/gorm"
)

type RedemptionDAO struct {
	Repo[models.RedemptionRecord]
}

func NewRedemptionDAO(db *gorm.DB) *RedemptionDAO {
	return &RedemptionDAO{
		Repo: NewRepo[models.RedemptionRecord](db),
	}
}

func (d *RedemptionDAO) ListByUser(ctx context.Context, userID uint64) ([]models.RedemptionRecord, error) {
	var redemptions []models.RedemptionRecord
	err := d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&redemptions).Error
	return redemptions, err
}

func (d *RedemptionDAO) DeleteByID(ctx context.Context, userID uint64, id uint64) error {
	rows, err := d.DeleteByWhere(ctx, "user_id = ? AND id = ?", userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
