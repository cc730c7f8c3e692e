package models

import "time"

// 奖励等级
const (
	TierStandard = 1
	TierPremium  = 2
)

type UserProfile struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"id"`
	UserID      uint64 `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	DisplayName string `gorm:"column:display_name;size:64" json:"display_name"`
	// 奖励等级：1-standard 2-premium，不同等级类目日上限不同
	TierLevel   int       `gorm:"column:tier_level;default:1" json:"tier_level"`
	MonthlyGoal int       `gorm:"column:monthly_goal;default:0" json:"monthly_goal"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// TierLabel 等级展示名
func TierLabel(level int) string {
	if level == TierPremium {
		return "premium"
	}
	return "standard"
}

// DailyCeiling 对应等级的各类目单日积分上限
func DailyCeiling(level int) CategoryPoints {
	if level == TierPremium {
		return CategoryPoints{Exercise: 200, Reading: 200, Chores: 200, Study: 200}
	}
	return CategoryPoints{Exercise: 100, Reading: 100, Chores: 100, Study: 100}
}
