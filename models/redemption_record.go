package models

import (
	"math"
	"time"
)

type RedemptionRecord struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	UserID    uint64    `gorm:"column:user_id;index:idx_redemption_user" json:"user_id"`
	Date      time.Time `gorm:"column:date;type:date" json:"date"`
	ItemLabel string    `gorm:"column:item_label;size:255" json:"item_label"`
	// 消耗积分数，> 0
	PointsSpent int `gorm:"column:points_spent" json:"points_spent"`
	// 兑换物的货币价值，> 0
	MonetaryValue float64 `gorm:"column:monetary_value" json:"monetary_value"`
	// 创建时由 points_spent / monetary_value 取整得到，不另行维护
	EffectiveRate int       `gorm:"column:effective_rate" json:"effective_rate"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RedemptionRecord) TableName() string {
	return "redemption_records"
}

// ComputeEffectiveRate 兑换效率：每单位货币花掉多少积分，四舍五入
func ComputeEffectiveRate(pointsSpent int, monetaryValue float64) int {
	if monetaryValue <= 0 {
		return 0
	}
	return int(math.Round(float64(pointsSpent) / monetaryValue))
}
