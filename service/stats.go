package service

import (
	"Tally/models"
	"Tally/types"
	"sort"
	"time"
)

// 统计引擎：对一个用户的完整记录集做纯聚合。
// 只能喂全量数据，喂分页结果会把聚合算错，调用方自己保证。
// 缓存快照和冷拉取走的是同一份实现，两边结果天然一致。

// ComputeStats 余额、连续天数、日均
func ComputeStats(records []models.ActivityRecord, today time.Time) types.DerivedStats {
	balance := 0
	for _, r := range records {
		balance += r.TotalPoints
	}

	average := 0
	if len(records) > 0 {
		average = balance / len(records)
	}

	return types.DerivedStats{
		TotalBalance: balance,
		StreakDays:   StreakDays(records, today),
		DailyAverage: average,
	}
}

// StreakDays 从今天往回数连续达标天数。
// 今天还没打卡不断签，昨天达标就算连上；空了两个及以上日历日，整条作废归零。
func StreakDays(records []models.ActivityRecord, today time.Time) int {
	// 达标日按日历日去重
	seen := make(map[time.Time]struct{})
	dates := make([]time.Time, 0)
	for _, r := range records {
		if !r.GoalMet {
			continue
		}
		d := dateOnly(r.Date)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return 0
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	// 最近一个达标日既不是今天也不是昨天，连击已断
	if daysBetween(today, dates[0]) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(dates); i++ {
		gap := daysBetween(dates[i-1], dates[i])
		if gap == 1 {
			streak++
			continue
		}
		break
	}
	return streak
}

// dateOnly 归一到日历日。统一落在 UTC 午夜上，
// 日差就是精确的 24h 倍数，跨夏令时也不会差出一天。
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween 两个日历日之间的整天数
func daysBetween(newer, older time.Time) int {
	return int(dateOnly(newer).Sub(dateOnly(older)) / (24 * time.Hour))
}
