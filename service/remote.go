package service

import (
	"Tally/dao/cache"
	"Tally/models"
	"Tally/pkg/gateway"
	"Tally/types"
	"context"
	"time"
)

// RemoteSource 认证模式的数据源：读先查 TTL 快照，未命中走网关回源并回填；
// 写直接走网关，成功后在返回之前同步清掉该用户键的全部快照，
// 保证写完的人立刻读不到旧聚合。其他读者在各自 TTL 内可能还看到旧值。
type RemoteSource struct {
	Gateway     *gateway.Gateway
	Cache       *cache.SnapshotStorage
	Records     RecordStore
	Redemptions RedemptionStore
	Profiles    ProfileStore

	now func() time.Time
}

func NewRemoteSource(
	gw *gateway.Gateway,
	snapshots *cache.SnapshotStorage,
	records RecordStore,
	redemptions RedemptionStore,
	profiles ProfileStore,
) *RemoteSource {
	return &RemoteSource{
		Gateway:     gw,
		Cache:       snapshots,
		Records:     records,
		Redemptions: redemptions,
		Profiles:    profiles,
		now:         time.Now,
	}
}

// FetchRecords limit<=0 为全量。全量快照新鲜时，限量请求本地切片，
// 不再跑一次远端；只有冷缓存才会真的发限量查询，且限量结果不回填快照。
func (r *RemoteSource) FetchRecords(ctx context.Context, userKey string, limit int) (*types.ListRecordsResponse, error) {
	uid, err := parseUserKey(userKey)
	if err != nil {
		return nil, err
	}

	if rows, ok := cache.GetAs[[]models.ActivityRecord](r.Cache, cache.KindRecords, userKey); ok {
		return &types.ListRecordsResponse{
			Records: recordItems(sliceRecords(rows, limit)),
			Total:   len(rows),
		}, nil
	}

	var rows []models.ActivityRecord
	if limit > 0 {
		err = r.Gateway.Execute(ctx, "list_records_limited", 0, func(ctx context.Context) error {
			var e error
			rows, e = r.Records.ListByUser(ctx, uid, limit)
			return e
		})
		if err != nil {
			return nil, err
		}
		// 限量结果是残缺集，不能冒充全量快照
		return &types.ListRecordsResponse{Records: recordItems(rows), Total: len(rows)}, nil
	}

	err = r.Gateway.Execute(ctx, "list_records", 0, func(ctx context.Context) error {
		var e error
		rows, e = r.Records.ListByUser(ctx, uid, 0)
		return e
	})
	if err != nil {
		return nil, err
	}
	r.Cache.Put(cache.KindRecords, userKey, rows)
	return &types.ListRecordsResponse{Records: recordItems(rows), Total: len(rows)}, nil
}

func (r *RemoteSource) FetchRedemptions(ctx context.Context, userKey string) (*types.ListRedemptionsResponse, error) {
	uid, err := parseUserKey(userKey)
	if err != nil {
		return nil, err
	}

	if rows, ok := cache.GetAs[[]models.RedemptionRecord](r.Cache, cache.KindRedemptions, userKey); ok {
		return &types.ListRedemptionsResponse{Redemptions: redemptionItems(rows), Total: len(rows)}, nil
	}

	var rows []models.RedemptionRecord
	err = r.Gateway.Execute(ctx, "list_redemptions", 0, func(ctx context.Context) error {
		var e error
		rows, e = r.Redemptions.ListByUser(ctx, uid)
		return e
	})
	if err != nil {
		return nil, err
	}
	r.Cache.Put(cache.KindRedemptions, userKey, rows)
	return &types.ListRedemptionsResponse{Redemptions: redemptionItems(rows), Total: len(rows)}, nil
}

// GetStats 快照里有新鲜的全量记录就地推导，省一次远端查询。
// 推导和缓存读的是同一份快照，stats 和 records 不会互相打架。
func (r *RemoteSource) GetStats(ctx context.Context, userKey string) (*types.DerivedStats, error) {
	uid, err := parseUserKey(userKey)
	if err != nil {
		return nil, err
	}

	if s, ok := cache.GetAs[types.DerivedStats](r.Cache, cache.KindStats, userKey); ok {
		return &s, nil
	}

	if rows, ok := cache.GetAs[[]models.ActivityRecord](r.Cache, cache.KindRecords, userKey); ok {
		s := ComputeStats(rows, r.now())
		r.Cache.Put(cache.KindStats, userKey, s)
		return &s, nil
	}

	// 双料未命中：冷拉全量，顺手把两个快照都填上
	var rows []models.ActivityRecord
	err = r.Gateway.Execute(ctx, "list_records", 0, func(ctx context.Context) error {
		var e error
		rows, e = r.Records.ListByUser(ctx, uid, 0)
		return e
	})
	if err != nil {
		return nil, err
	}
	r.Cache.Put(cache.KindRecords, userKey, rows)
	s := ComputeStats(rows, r.now())
	r.Cache.Put(cache.KindStats, userKey, s)
	return &s, nil
}

func (r *RemoteSource) InsertRecord(ctx context.Context, userKey string, req *types.CreateRecordRequest) (*types.RecordItem, error) {
	uid, err := parseUserKey(userKey)
	if err != nil {
		return nil, err
	}
	if err := requireOwnKey(userKey, req.UserKey); err != nil {
		return nil, err
	}

	var profile *models.UserProfile
	err = r.Gateway.Execute(ctx, "get_profile", 0, func(ctx context.Context) error {
		var e error
		profile, e = r.Profiles.GetOrCreate(ctx, uid)
		return e
	})
	if err != nil {
		return nil, err
	}

	m, err := buildRecord(uid, profile.TierLevel, req)
	if err != nil {
		return nil, err
	}

	err = r.Gateway.Execute(ctx, "insert_record", 0, func(ctx context.Context) error {
		return r.Records.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	r.Cache.Invalidate(userKey)
	item := recordItem(m)
	return &item, nil
}

func (r *RemoteSource) DeleteRecord(ctx context.Context, userKey string, id uint64) error {
	uid, err := parseUserKey(userKey)
	if err != nil {
		return err
	}

	err = r.Gateway.Execute(ctx, "delete_record", 0, func(ctx context.Context) error {
		return r.Records.DeleteByID(ctx, uid, id)
	})
	if err != nil {
		return err
	}

	r.Cache.Invalidate(userKey)
	return nil
}

func (r *RemoteSource) InsertRedemption(ctx context.Context, userKey string, req *types.CreateRedemptionRequest) (*types.RedemptionItem, error) {
	uid, err := parseUserKey(userKey)
	if err != nil {
		return nil, err
	}
	if err := requireOwnKey(userKey, req.UserKey); err != nil {
		return nil, err
	}

	m, err := buildRedemption(uid, req)
	if err != nil {
		return nil, err
	}

	err = r.Gateway.Execute(ctx, "insert_redemption", 0, func(ctx context.Context) error {
		return r.Redemptions.Create(ctx, m)
	})
	if err != nil {
		return nil, err
	}

	r.Cache.Invalidate(userKey)
	item := redemptionItem(m)
	return &item, nil
}

func (r *RemoteSource) DeleteRedemption(ctx context.Context, userKey string, id uint64) error {
	uid, err := parseUserKey(userKey)
	if err != nil {
		return err
	}

	err = r.Gateway.Execute(ctx, "delete_redemption", 0, func(ctx context.Context) error {
		return r.Redemptions.DeleteByID(ctx, uid, id)
	})
	if err != nil {
		return err
	}

	r.Cache.Invalidate(userKey)
	return nil
}

func sliceRecords(rows []models.ActivityRecord, limit int) []models.ActivityRecord {
	if limit <= 0 || limit >= len(rows) {
		return rows
	}
	return rows[:limit]
}
