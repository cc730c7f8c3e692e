package dao

import (
	"Tally/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type ProfileDAO struct {
	Repo[models.UserProfile]
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{
		Repo: NewRepo[models.UserProfile](db),
	}
}

// GetOrCreate 首次认证访问时懒创建档案
func (d *ProfileDAO) GetOrCreate(ctx context.Context, userID uint64) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		UserID:      userID,
		DisplayName: fmt.Sprintf("user-%d", userID),
		TierLevel:   models.TierStandard,
	}
	err := d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		FirstOrCreate(profile).Error
	return profile, err
}

// ListAll 排行榜聚合用：全量档案
func (d *ProfileDAO) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := d.Db.WithContext(ctx).Order("id ASC").Find(&profiles).Error
	return profiles, err
}

func (d *ProfileDAO) UpdateByUserID(ctx context.Context, userID uint64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return d.Db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}
