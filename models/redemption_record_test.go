package models

import "testing"

func TestComputeEffectiveRate(t *testing.T) {
	cases := []struct {
		points int
		value  float64
		want   int
	}{
		{500, 25, 20},
		{90, 4.5, 20},
		{5, 2, 3}, // 2.5 四舍五入到 3
		{1, 3, 0},
		{100, 0, 0}, // 非法价值不除零
	}
	for _, c := range cases {
		if got := ComputeEffectiveRate(c.points, c.value); got != c.want {
			t.Fatalf("rate(%d, %v) = %d, want %d", c.points, c.value, got, c.want)
		}
	}
}

func TestCategoryPointsSum(t *testing.T) {
	c := CategoryPoints{Exercise: 1, Reading: 2, Chores: 3, Study: 4}
	if c.Sum() != 10 {
		t.Fatalf("expected sum 10, got %d", c.Sum())
	}
}

func TestDailyCeilingByTier(t *testing.T) {
	if ceiling := DailyCeiling(TierStandard); ceiling.Exercise != 100 {
		t.Fatalf("standard ceiling should be 100, got %d", ceiling.Exercise)
	}
	if ceiling := DailyCeiling(TierPremium); ceiling.Study != 200 {
		t.Fatalf("premium ceiling should be 200, got %d", ceiling.Study)
	}
	// 未知等级按 standard 兜底
	if ceiling := DailyCeiling(0); ceiling.Reading != 100 {
		t.Fatalf("unknown tier should fall back to standard, got %d", ceiling.Reading)
	}
}
