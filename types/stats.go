package types

// DerivedStats 纯聚合结果，不落库，只进 TTL 缓存。
// 任何时候都能从完整记录集重新算出来。
type DerivedStats struct {
	TotalBalance int `json:"total_balance"`
	StreakDays   int `json:"streak_days"`
	DailyAverage int `json:"daily_average"`
}
