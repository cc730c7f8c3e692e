package models

import (
	"time"

	"gorm.io/datatypes"
)

// CategoryPoints 单日各类目得分，条目只增删不改
type CategoryPoints struct {
	Exercise int `json:"exercise"`
	Reading  int `json:"reading"`
	Chores   int `json:"chores"`
	Study    int `json:"study"`
}

// Sum 各类目之和，写入时 TotalPoints 必须等于它
func (c CategoryPoints) Sum() int {
	return c.Exercise + c.Reading + c.Chores + c.Study
}

type ActivityRecord struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"id"`
	UserID uint64 `gorm:"column:user_id;index:idx_user_date" json:"user_id"`
	// 只按日历日比较，不带时间部分
	Date           time.Time                          `gorm:"column:date;type:date;index:idx_user_date" json:"date"`
	ActivityLabel  string                             `gorm:"column:activity_label;size:255" json:"activity_label"`
	CategoryPoints datatypes.JSONType[CategoryPoints] `gorm:"column:category_points" json:"category_points"`
	// 等于各类目之和，写入后不再单独变更
	TotalPoints int       `gorm:"column:total_points" json:"total_points"`
	GoalMet     bool      `gorm:"column:goal_met" json:"goal_met"`
	Notes       string    `gorm:"column:notes;size:1024" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ActivityRecord) TableName() string {
	return "activity_records"
}
