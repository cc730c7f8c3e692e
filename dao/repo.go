package dao

import (
	"context"

	"gorm.io/gorm"
)

// Repo 各实体 DAO 共用的基础仓储
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

func (r Repo[T]) Create(ctx context.Context, m *T) error {
	return r.Db.WithContext(ctx).Create(m).Error
}

func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var m T
	err := r.Db.WithContext(ctx).Where(where, args...).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r Repo[T]) FindAllByWhere(ctx context.Context, where string, args ...any) ([]T, error) {
	var ms []T
	err := r.Db.WithContext(ctx).Where(where, args...).Find(&ms).Error
	return ms, err
}

func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var count int64
	var m T
	err := r.Db.WithContext(ctx).Model(&m).Where(where, args...).Count(&count).Error
	return count > 0, err
}

func (r Repo[T]) DeleteByWhere(ctx context.Context, where string, args ...any) (int64, error) {
	var m T
	result := r.Db.WithContext(ctx).Where(where, args...).Delete(&m)
	return result.RowsAffected, result.Error
}
