package service

import (
	"Tally/models"
	"testing"
	"time"
)

func rec(date time.Time, points int, goalMet bool) models.ActivityRecord {
	return models.ActivityRecord{
		Date:        date,
		TotalPoints: points,
		GoalMet:     goalMet,
	}
}

func TestStreak_ThreeConsecutiveDays(t *testing.T) {
	today := time.Date(2026, 8, 28, 15, 30, 0, 0, time.Local)
	records := []models.ActivityRecord{
		rec(today, 10, true),
		rec(today.AddDate(0, 0, -1), 10, true),
		rec(today.AddDate(0, 0, -2), 10, true),
	}

	if got := StreakDays(records, today); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

// 中间空一天：今天还在，但 today-1 缺席，只剩今天这 1 天
func TestStreak_GapBreaksWalk(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	records := []models.ActivityRecord{
		rec(today, 10, true),
		rec(today.AddDate(0, 0, -2), 10, true),
	}

	if got := StreakDays(records, today); got != 1 {
		t.Fatalf("expected streak 1 after gap, got %d", got)
	}
}

// 今天没打卡，昨天达标，连击仍然活着
func TestStreak_AliveThroughYesterday(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	records := []models.ActivityRecord{
		rec(today.AddDate(0, 0, -1), 10, true),
		rec(today.AddDate(0, 0, -2), 10, true),
	}

	if got := StreakDays(records, today); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

// 最近一个达标日在前天，整条连击归零而不是算旧账
func TestStreak_TwoDayGapResetsToZero(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	records := []models.ActivityRecord{
		rec(today.AddDate(0, 0, -2), 10, true),
		rec(today.AddDate(0, 0, -3), 10, true),
		rec(today.AddDate(0, 0, -4), 10, true),
	}

	if got := StreakDays(records, today); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

// 同一天多条达标记录只算一天，不加分也不断签
func TestStreak_SameDayDedup(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	records := []models.ActivityRecord{
		rec(today, 10, true),
		rec(today, 5, true),
		rec(today.AddDate(0, 0, -1), 10, true),
		rec(today.AddDate(0, 0, -1), 8, true),
	}

	if got := StreakDays(records, today); got != 2 {
		t.Fatalf("expected streak 2 with same-day duplicates, got %d", got)
	}
}

// 未达标的记录不参与连击
func TestStreak_GoalNotMetIgnored(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	records := []models.ActivityRecord{
		rec(today, 10, false),
		rec(today.AddDate(0, 0, -1), 10, true),
	}

	if got := StreakDays(records, today); got != 1 {
		t.Fatalf("expected streak 1, got %d", got)
	}
}

func TestStreak_Empty(t *testing.T) {
	today := time.Now()
	if got := StreakDays(nil, today); got != 0 {
		t.Fatalf("expected 0 for no records, got %d", got)
	}
}

// 余额与输入顺序无关
func TestComputeStats_OrderIndependent(t *testing.T) {
	today := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	a := []models.ActivityRecord{
		rec(today, 10, true),
		rec(today.AddDate(0, 0, -1), 25, false),
		rec(today.AddDate(0, 0, -5), 7, true),
	}
	b := []models.ActivityRecord{a[2], a[0], a[1]}

	sa := ComputeStats(a, today)
	sb := ComputeStats(b, today)
	if sa != sb {
		t.Fatalf("stats must be order independent: %+v vs %+v", sa, sb)
	}
	if sa.TotalBalance != 42 {
		t.Fatalf("expected balance 42, got %d", sa.TotalBalance)
	}
}

// 日均向下取整，空集为 0
func TestComputeStats_DailyAverage(t *testing.T) {
	today := time.Now()

	empty := ComputeStats(nil, today)
	if empty.DailyAverage != 0 || empty.TotalBalance != 0 {
		t.Fatalf("expected zero stats for empty set, got %+v", empty)
	}

	records := []models.ActivityRecord{
		rec(today, 10, false),
		rec(today.AddDate(0, 0, -1), 5, false),
	}
	got := ComputeStats(records, today)
	if got.DailyAverage != 7 {
		t.Fatalf("expected floor(15/2)=7, got %d", got.DailyAverage)
	}
}
