package types

import "Tally/models"

// CreateRecordRequest 新增一条当日活动记录
type CreateRecordRequest struct {
	// 调用方声明的用户键，认证模式下必须与会话一致
	UserKey       string                `json:"user_key" binding:"required"`
	Date          string                `json:"date" binding:"required"` // 2006-01-02
	ActivityLabel string                `json:"activity_label" binding:"required"`
	Category      models.CategoryPoints `json:"category_points"`
	GoalMet       bool                  `json:"goal_met"`
	Notes         string                `json:"notes"`
}

// RecordItem 返回给界面的单条记录
type RecordItem struct {
	ID             uint64                `json:"id"`
	Date           string                `json:"date"`
	ActivityLabel  string                `json:"activity_label"`
	CategoryPoints models.CategoryPoints `json:"category_points"`
	TotalPoints    int                   `json:"total_points"`
	GoalMet        bool                  `json:"goal_met"`
	Notes          string                `json:"notes,omitempty"`
}

type ListRecordsResponse struct {
	Records []RecordItem `json:"records"`
	Total   int          `json:"total"`
}

type ListRecordsRequest struct {
	// 0 表示不限量
	Limit int `form:"limit,default=0" binding:"gte=0"`
}
