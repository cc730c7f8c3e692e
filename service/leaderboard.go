package service

import (
	"Tally/dao/cache"
	"Tally/models"
	"Tally/pkg/gateway"
	"Tally/pkg/log"
	"Tally/types"
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	DefaultWindowDays = 30
	leaderboardSize   = 10
)

type ILeaderboardService interface {
	Rank(ctx context.Context, windowDays int, currentUserKey string) *types.LeaderboardResponse
}

var _ ILeaderboardService = (*LeaderboardService)(nil)

// LeaderboardService 全量档案 + 窗口内记录两路独立查询（远端没有 join），
// 内存聚合后排名。整个结果作为一个进程级条目进 TTL 缓存：
// 全表扫描贵，而榜单允许五分钟内的陈旧。
type LeaderboardService struct {
	Gateway  *gateway.Gateway
	Cache    *cache.SnapshotStorage
	Profiles ProfileStore
	Records  RecordStore

	now func() time.Time
}

func NewLeaderboardService(
	gw *gateway.Gateway,
	snapshots *cache.SnapshotStorage,
	profiles ProfileStore,
	records RecordStore,
) *LeaderboardService {
	return &LeaderboardService{
		Gateway:  gw,
		Cache:    snapshots,
		Profiles: profiles,
		Records:  records,
		now:      time.Now,
	}
}

// 缓存里存中立的行，is_current_user 每次请求时现盖
type rankedRow struct {
	UserID uint64
	Name   string
	Points int
	Tier   string
	Rank   int
}

type boardSnapshot struct {
	WindowDays int
	Rows       []rankedRow
}

// Rank 任何一路取数失败都降级为空榜：榜单不是关键路径，失败只记日志不上抛
func (s *LeaderboardService) Rank(ctx context.Context, windowDays int, currentUserKey string) *types.LeaderboardResponse {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	// 游客没有数值用户键，解析失败就当 0，永远不会命中 is_current_user
	currentUID, _ := strconv.ParseUint(currentUserKey, 10, 64)

	if v, ok := s.Cache.GetLeaderboard(); ok {
		if snap, ok := v.(boardSnapshot); ok && snap.WindowDays == windowDays {
			return s.respond(snap, currentUID)
		}
	}

	since := dateOnly(s.now()).AddDate(0, 0, -windowDays)

	var (
		profiles []models.UserProfile
		records  []models.ActivityRecord
		perr     error
		rerr     error
	)

	// 两路查询互不依赖，并发发出去；全表扫描用放宽的超时
	var wg conc.WaitGroup
	wg.Go(func() {
		perr = s.Gateway.Execute(ctx, "list_profiles", s.Gateway.ScanTimeout, func(ctx context.Context) error {
			var e error
			profiles, e = s.Profiles.ListAll(ctx)
			return e
		})
	})
	wg.Go(func() {
		rerr = s.Gateway.Execute(ctx, "list_window_records", s.Gateway.ScanTimeout, func(ctx context.Context) error {
			var e error
			records, e = s.Records.ListSince(ctx, since)
			return e
		})
	})
	wg.Wait()

	if perr != nil || rerr != nil {
		log.L.Warn("leaderboard aggregation degraded to empty",
			zap.NamedError("profiles_err", perr),
			zap.NamedError("records_err", rerr),
		)
		return &types.LeaderboardResponse{
			WindowDays: windowDays,
			Entries:    []types.LeaderboardEntry{},
		}
	}

	totals := make(map[uint64]int, len(profiles))
	for _, r := range records {
		totals[r.UserID] += r.TotalPoints
	}

	// 无记录的档案按 0 分参与；同分不引入第二排序键，稳定排序保持输入顺序
	rows := make([]rankedRow, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, rankedRow{
			UserID: p.UserID,
			Name:   p.DisplayName,
			Points: totals[p.UserID],
			Tier:   models.TierLabel(p.TierLevel),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Points > rows[j].Points })

	if len(rows) > leaderboardSize {
		rows = rows[:leaderboardSize]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}

	snap := boardSnapshot{WindowDays: windowDays, Rows: rows}
	s.Cache.PutLeaderboard(snap)
	return s.respond(snap, currentUID)
}

func (s *LeaderboardService) respond(snap boardSnapshot, currentUID uint64) *types.LeaderboardResponse {
	entries := make([]types.LeaderboardEntry, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		entries = append(entries, types.LeaderboardEntry{
			Rank:          row.Rank,
			Name:          row.Name,
			Points:        row.Points,
			Tier:          row.Tier,
			IsCurrentUser: currentUID != 0 && row.UserID == currentUID,
		})
	}
	return &types.LeaderboardResponse{
		WindowDays: snap.WindowDays,
		Entries:    entries,
	}
}
