package service

import (
	"Tally/dao/cache"
	"Tally/models"
	"context"
	"fmt"
	"testing"
	"time"
)

func newTestBoard(profiles *fakeProfileStore, records *fakeRecordStore) *LeaderboardService {
	return NewLeaderboardService(testGateway(), cache.NewSnapshotStorage(), profiles, records)
}

func boardProfiles() *fakeProfileStore {
	return &fakeProfileStore{profiles: []models.UserProfile{
		{UserID: 1, DisplayName: "alice", TierLevel: models.TierStandard},
		{UserID: 2, DisplayName: "bob", TierLevel: models.TierPremium},
		{UserID: 3, DisplayName: "carol", TierLevel: models.TierStandard},
	}}
}

func boardRecords(today time.Time) *fakeRecordStore {
	return &fakeRecordStore{rows: []models.ActivityRecord{
		storedRec(11, 1, today.AddDate(0, 0, -1), 100),
		storedRec(12, 2, today.AddDate(0, 0, -2), 150),
		storedRec(13, 2, today.AddDate(0, 0, -3), 150),
		storedRec(14, 3, today.AddDate(0, 0, -1), 300),
	}}
}

// 同分不引入第二排序键，并列名次按档案输入顺序保持稳定
func TestLeaderboardRank_TiesKeepInputOrder(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	svc := newTestBoard(boardProfiles(), boardRecords(today))

	resp := svc.Rank(context.Background(), 30, "")
	if resp.WindowDays != 30 {
		t.Fatalf("expected window 30, got %d", resp.WindowDays)
	}
	if len(resp.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(resp.Entries))
	}

	wantNames := []string{"bob", "carol", "alice"}
	wantPoints := []int{300, 300, 100}
	for i, e := range resp.Entries {
		if e.Name != wantNames[i] || e.Points != wantPoints[i] || e.Rank != i+1 {
			t.Fatalf("entry %d: got %+v, want name=%s points=%d rank=%d",
				i, e, wantNames[i], wantPoints[i], i+1)
		}
	}
	if resp.Entries[0].Tier != "premium" || resp.Entries[2].Tier != "standard" {
		t.Fatalf("unexpected tiers: %+v", resp.Entries)
	}
}

// is_current_user 每次请求时现盖，共享的缓存快照保持中立
func TestLeaderboardRank_CurrentUserStampedPerRequest(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	profiles := boardProfiles()
	svc := newTestBoard(profiles, boardRecords(today))

	resp := svc.Rank(context.Background(), 30, "2")
	if !resp.Entries[0].IsCurrentUser {
		t.Fatalf("expected bob flagged as current user: %+v", resp.Entries)
	}

	resp = svc.Rank(context.Background(), 30, "3")
	if resp.Entries[0].IsCurrentUser || !resp.Entries[1].IsCurrentUser {
		t.Fatalf("expected carol flagged on second request: %+v", resp.Entries)
	}
	if profiles.listCalls != 1 {
		t.Fatalf("second request must reuse cached snapshot, got %d scans", profiles.listCalls)
	}
}

// 游客没有数值用户键，永远不会被标成当前用户
func TestLeaderboardRank_GuestKeyNeverCurrent(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	svc := newTestBoard(boardProfiles(), boardRecords(today))

	resp := svc.Rank(context.Background(), 30, "guest-abc")
	for _, e := range resp.Entries {
		if e.IsCurrentUser {
			t.Fatalf("guest request must not flag anyone: %+v", e)
		}
	}
}

// 窗口外的记录不计分，窗口变了就重算而不是复用旧快照
func TestLeaderboardRank_WindowFiltersRecords(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	records := boardRecords(today)
	records.rows = append(records.rows, storedRec(15, 1, today.AddDate(0, 0, -40), 999))
	profiles := boardProfiles()
	svc := newTestBoard(profiles, records)
	svc.now = func() time.Time { return today }

	resp := svc.Rank(context.Background(), 30, "")
	for _, e := range resp.Entries {
		if e.Name == "alice" && e.Points != 100 {
			t.Fatalf("record outside window must not count, alice got %d", e.Points)
		}
	}

	resp = svc.Rank(context.Background(), 60, "")
	if profiles.listCalls != 2 {
		t.Fatalf("different window must recompute, got %d scans", profiles.listCalls)
	}
	for _, e := range resp.Entries {
		if e.Name == "alice" && e.Points != 1099 {
			t.Fatalf("60-day window should include old record, alice got %d", e.Points)
		}
	}
}

// 任何一路取数失败都降级为空榜，不上抛错误
func TestLeaderboardRank_DegradesToEmpty(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	profiles := boardProfiles()
	profiles.failList = true
	svc := newTestBoard(profiles, boardRecords(today))

	resp := svc.Rank(context.Background(), 30, "2")
	if resp == nil {
		t.Fatal("degraded response must not be nil")
	}
	if resp.Entries == nil || len(resp.Entries) != 0 {
		t.Fatalf("expected empty entries on degradation, got %+v", resp.Entries)
	}
	if resp.WindowDays != 30 {
		t.Fatalf("window must survive degradation, got %d", resp.WindowDays)
	}
}

// 失败的空榜不落缓存，下一次请求重新聚合
func TestLeaderboardRank_FailureNotCached(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	profiles := boardProfiles()
	profiles.failList = true
	svc := newTestBoard(profiles, boardRecords(today))

	svc.Rank(context.Background(), 30, "")
	profiles.failList = false
	resp := svc.Rank(context.Background(), 30, "")
	if len(resp.Entries) != 3 {
		t.Fatalf("recovered request must aggregate again, got %d entries", len(resp.Entries))
	}
}

// 榜单截断到前十名，没有记录的档案按 0 分参与
func TestLeaderboardRank_TruncatesToTen(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	profiles := &fakeProfileStore{}
	records := &fakeRecordStore{}
	for i := 1; i <= 12; i++ {
		profiles.profiles = append(profiles.profiles, models.UserProfile{
			UserID:      uint64(i),
			DisplayName: fmt.Sprintf("user-%d", i),
			TierLevel:   models.TierStandard,
		})
	}
	records.rows = append(records.rows, storedRec(1, 5, today.AddDate(0, 0, -1), 50))
	svc := newTestBoard(profiles, records)

	resp := svc.Rank(context.Background(), 30, "")
	if len(resp.Entries) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Name != "user-5" || resp.Entries[0].Points != 50 {
		t.Fatalf("expected user-5 on top: %+v", resp.Entries[0])
	}
	if resp.Entries[9].Points != 0 || resp.Entries[9].Rank != 10 {
		t.Fatalf("zero-score profiles must fill remaining slots: %+v", resp.Entries[9])
	}
}

// windowDays 非法时回落到默认 30 天
func TestLeaderboardRank_DefaultWindow(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	svc := newTestBoard(boardProfiles(), boardRecords(today))

	resp := svc.Rank(context.Background(), -5, "")
	if resp.WindowDays != DefaultWindowDays {
		t.Fatalf("expected default window %d, got %d", DefaultWindowDays, resp.WindowDays)
	}
}
