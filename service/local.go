package service

import (
	"Tally/dao"
	"Tally/models"
	"Tally/pkg/xerr"
	"Tally/types"
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/tidwall/gjson"
)

// LocalSource 游客模式的数据源。单个本地 JSON 文件就是全部真相：
// 同步整读整写，不走网关，不过 TTL 缓存——文件本身永远"新鲜"。
type LocalSource struct {
	Store *dao.GuestDao

	now func() time.Time
}

func NewLocalSource(store *dao.GuestDao) *LocalSource {
	return &LocalSource{Store: store, now: time.Now}
}

func (l *LocalSource) FetchRecords(ctx context.Context, userKey string, limit int) (*types.ListRecordsResponse, error) {
	ds, err := l.Store.Load(userKey)
	if err != nil {
		return nil, err
	}
	sortRecordsDesc(ds.Records)
	return &types.ListRecordsResponse{
		Records: recordItems(sliceRecords(ds.Records, limit)),
		Total:   len(ds.Records),
	}, nil
}

func (l *LocalSource) FetchRedemptions(ctx context.Context, userKey string) (*types.ListRedemptionsResponse, error) {
	ds, err := l.Store.Load(userKey)
	if err != nil {
		return nil, err
	}
	return &types.ListRedemptionsResponse{
		Redemptions: redemptionItems(ds.Redemptions),
		Total:       len(ds.Redemptions),
	}, nil
}

func (l *LocalSource) GetStats(ctx context.Context, userKey string) (*types.DerivedStats, error) {
	ds, err := l.Store.Load(userKey)
	if err != nil {
		return nil, err
	}
	s := ComputeStats(ds.Records, l.now())
	return &s, nil
}

func (l *LocalSource) InsertRecord(ctx context.Context, userKey string, req *types.CreateRecordRequest) (*types.RecordItem, error) {
	if err := requireOwnKey(userKey, req.UserKey); err != nil {
		return nil, err
	}

	ds, err := l.Store.Load(userKey)
	if err != nil {
		return nil, err
	}

	tier := ds.Profile.TierLevel
	if tier == 0 {
		tier = models.TierStandard
	}
	m, err := buildRecord(0, tier, req)
	if err != nil {
		return nil, err
	}

	ds.Records = append(ds.Records, *m)
	if err := l.Store.Save(userKey, ds); err != nil {
		return nil, err
	}
	item := recordItem(m)
	return &item, nil
}

func (l *LocalSource) DeleteRecord(ctx context.Context, userKey string, id uint64) error {
	ds, err := l.Store.Load(userKey)
	if err != nil {
		return err
	}

	kept := ds.Records[:0]
	found := false
	for _, r := range ds.Records {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return xerr.Validationf("记录不存在: %d", id)
	}
	ds.Records = kept
	return l.Store.Save(userKey, ds)
}

func (l *LocalSource) InsertRedemption(ctx context.Context, userKey string, req *types.CreateRedemptionRequest) (*types.RedemptionItem, error) {
	if err := requireOwnKey(userKey, req.UserKey); err != nil {
		return nil, err
	}

	ds, err := l.Store.Load(userKey)
	if err != nil {
		return nil, err
	}

	m, err := buildRedemption(0, req)
	if err != nil {
		return nil, err
	}

	ds.Redemptions = append(ds.Redemptions, *m)
	if err := l.Store.Save(userKey, ds); err != nil {
		return nil, err
	}
	item := redemptionItem(m)
	return &item, nil
}

func (l *LocalSource) DeleteRedemption(ctx context.Context, userKey string, id uint64) error {
	ds, err := l.Store.Load(userKey)
	if err != nil {
		return err
	}

	kept := ds.Redemptions[:0]
	found := false
	for _, r := range ds.Redemptions {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return xerr.Validationf("兑换不存在: %d", id)
	}
	ds.Redemptions = kept
	return l.Store.Save(userKey, ds)
}

// ImportDataset 整包导入游客数据，覆盖原文件。
// 先做形状检查再反序列化，坏包直接拒掉，不落半截数据。
func (l *LocalSource) ImportDataset(userKey string, raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return xerr.Validationf("导入数据不是合法 JSON")
	}
	parsed := gjson.ParseBytes(raw)
	for _, field := range []string{"records", "redemptions"} {
		if v := parsed.Get(field); v.Exists() && !v.IsArray() {
			return xerr.Validationf("导入数据字段 %s 形状不对", field)
		}
	}

	var ds models.GuestDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return xerr.Validationf("导入数据解析失败: %v", err)
	}
	if ds.Records == nil {
		ds.Records = []models.ActivityRecord{}
	}
	if ds.Redemptions == nil {
		ds.Redemptions = []models.RedemptionRecord{}
	}
	return l.Store.Save(userKey, &ds)
}

func sortRecordsDesc(rows []models.ActivityRecord) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date.Equal(rows[j].Date) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].Date.After(rows[j].Date)
	})
}
