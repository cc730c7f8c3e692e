package dao

import (
	"Tally/models"
	"context"
	"time"

	"gorm.io/gorm"
)

type RecordDAO struct {
	Repo[models.ActivityRecord]
}

func NewRecordDAO(db *gorm.DB) *RecordDAO {
	return &RecordDAO{
		Repo: NewRepo[models.ActivityRecord](db),
	}
}

// ListByUser 按日期倒序取某用户的记录，limit <= 0 表示全量
func (d *RecordDAO) ListByUser(ctx context.Context, userID uint64, limit int) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	query := d.Db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}

// ListSince 排行榜聚合用：全用户、窗口内（含当天）的记录
func (d *RecordDAO) ListSince(ctx context.Context, since time.Time) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	err := d.Db.WithContext(ctx).
		Where("date >= ?", since.Format("2006-01-02")).
		Find(&records).Error
	return records, err
}

// DeleteByID 只允许删自己的记录
func (d *RecordDAO) DeleteByID(ctx context.Context, userID uint64, id uint64) error {
	rows, err := d.DeleteByWhere(ctx, "user_id = ? AND id = ?", userID, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
