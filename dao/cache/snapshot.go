package cache

import (
	"fmt"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// 快照有效期 - 5分钟
const SnapshotTTL = 5 * time.Minute

// 缓存的实体种类。写操作会一次性清掉某个用户键下的全部种类，
// 因为 stats 是从 records 推导的，不存在只清一半的情况。
const (
	KindRecords     = "records"
	KindRedemptions = "redemptions"
	KindStats       = "stats"
	KindLeaderboard = "leaderboard"
)

// 排行榜跨全体用户，只有一个进程级条目
const leaderboardKey = "all"

var userKinds = []string{KindRecords, KindRedemptions, KindStats}

type entry struct {
	value      any
	computedAt time.Time
}

// SnapshotStorage 按 (种类, 用户键) 存 TTL 快照。
// 过期判断发生在每次 Get 上，不开后台清理线程：
// 条目小且每个活跃用户键至多一组，不值得为它加扫描器。
type SnapshotStorage struct {
	entries cmap.ConcurrentMap[string, entry]
	now     func() time.Time
}

func NewSnapshotStorage() *SnapshotStorage {
	return &SnapshotStorage{
		entries: cmap.New[entry](),
		now:     time.Now,
	}
}

// Get 命中且未过期才返回；过期条目顺手删掉
func (s *SnapshotStorage) Get(kind, key string) (any, bool) {
	e, ok := s.entries.Get(s.name(kind, key))
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.computedAt) >= SnapshotTTL {
		s.entries.Remove(s.name(kind, key))
		return nil, false
	}
	return e.value, true
}

func (s *SnapshotStorage) Put(kind, key string, value any) {
	s.entries.Set(s.name(kind, key), entry{value: value, computedAt: s.now()})
}

// Invalidate 清掉该用户键下的所有种类。
// 必须在写操作返回之前同步调用，保证写完即读不到旧聚合。
func (s *SnapshotStorage) Invalidate(key string) {
	for _, kind := range userKinds {
		s.entries.Remove(s.name(kind, key))
	}
}

func (s *SnapshotStorage) GetLeaderboard() (any, bool) {
	return s.Get(KindLeaderboard, leaderboardKey)
}

func (s *SnapshotStorage) PutLeaderboard(value any) {
	s.Put(KindLeaderboard, leaderboardKey, value)
}

func (s *SnapshotStorage) InvalidateLeaderboard() {
	s.entries.Remove(s.name(KindLeaderboard, leaderboardKey))
}

// tally:snapshot:records:42
func (s *SnapshotStorage) name(kind, key string) string {
	return fmt.Sprintf("tally:snapshot:%s:%s", kind, key)
}

// GetAs 带类型的读取，类型不符按未命中处理
func GetAs[T any](s *SnapshotStorage, kind, key string) (T, bool) {
	var zero T
	v, ok := s.Get(kind, key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
