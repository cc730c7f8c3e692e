package service

import (
	"Tally/dao/cache"
	"Tally/models"
	"Tally/pkg/gateway"
	"Tally/pkg/xerr"
	"Tally/types"
	"context"
	"errors"
	"testing"
	"time"
)

// 进程内假存储，带调用计数，用来验证缓存到底省没省掉远端查询

type fakeRecordStore struct {
	rows        []models.ActivityRecord
	listCalls   int
	sinceCalls  int
	createCalls int
	failList    bool
	failSince   bool
}

func (f *fakeRecordStore) ListByUser(ctx context.Context, userID uint64, limit int) ([]models.ActivityRecord, error) {
	f.listCalls++
	if f.failList {
		return nil, errors.New("数据库连不上")
	}
	out := make([]models.ActivityRecord, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecordStore) ListSince(ctx context.Context, since time.Time) ([]models.ActivityRecord, error) {
	f.sinceCalls++
	if f.failSince {
		return nil, errors.New("数据库连不上")
	}
	out := make([]models.ActivityRecord, 0)
	for _, r := range f.rows {
		if !r.Date.Before(since) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordStore) Create(ctx context.Context, m *models.ActivityRecord) error {
	f.createCalls++
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeRecordStore) DeleteByID(ctx context.Context, userID uint64, id uint64) error {
	for i, r := range f.rows {
		if r.UserID == userID && r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("记录不存在")
}

type fakeRedemptionStore struct {
	rows        []models.RedemptionRecord
	listCalls   int
	createCalls int
}

func (f *fakeRedemptionStore) ListByUser(ctx context.Context, userID uint64) ([]models.RedemptionRecord, error) {
	f.listCalls++
	out := make([]models.RedemptionRecord, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRedemptionStore) Create(ctx context.Context, m *models.RedemptionRecord) error {
	f.createCalls++
	f.rows = append(f.rows, *m)
	return nil
}

func (f *fakeRedemptionStore) DeleteByID(ctx context.Context, userID uint64, id uint64) error {
	for i, r := range f.rows {
		if r.UserID == userID && r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errors.New("兑换不存在")
}

type fakeProfileStore struct {
	profiles  []models.UserProfile
	listCalls int
	failList  bool
}

func (f *fakeProfileStore) GetOrCreate(ctx context.Context, userID uint64) (*models.UserProfile, error) {
	for i := range f.profiles {
		if f.profiles[i].UserID == userID {
			return &f.profiles[i], nil
		}
	}
	p := models.UserProfile{UserID: userID, TierLevel: models.TierStandard}
	f.profiles = append(f.profiles, p)
	return &p, nil
}

func (f *fakeProfileStore) ListAll(ctx context.Context) ([]models.UserProfile, error) {
	f.listCalls++
	if f.failList {
		return nil, errors.New("数据库连不上")
	}
	return f.profiles, nil
}

func (f *fakeProfileStore) UpdateByUserID(ctx context.Context, userID uint64, updates map[string]any) error {
	return nil
}

func testGateway() *gateway.Gateway {
	return &gateway.Gateway{
		Retries:     0,
		Backoff:     time.Millisecond,
		Timeout:     time.Second,
		ScanTimeout: time.Second,
	}
}

func newTestRemote(records *fakeRecordStore, redemptions *fakeRedemptionStore, profiles *fakeProfileStore) *RemoteSource {
	return NewRemoteSource(testGateway(), cache.NewSnapshotStorage(), records, redemptions, profiles)
}

func storedRec(id, uid uint64, date time.Time, points int) models.ActivityRecord {
	return models.ActivityRecord{ID: id, UserID: uid, Date: date, TotalPoints: points, GoalMet: true}
}

func TestRemoteFetchRecords_SnapshotServesRepeatReads(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	records := &fakeRecordStore{rows: []models.ActivityRecord{
		storedRec(1, 7, today, 10),
		storedRec(2, 7, today.AddDate(0, 0, -1), 20),
		storedRec(3, 7, today.AddDate(0, 0, -2), 30),
	}}
	src := newTestRemote(records, &fakeRedemptionStore{}, &fakeProfileStore{})

	for i := 0; i < 2; i++ {
		resp, err := src.FetchRecords(context.Background(), "7", 0)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if resp.Total != 3 {
			t.Fatalf("fetch %d: expected total 3, got %d", i, resp.Total)
		}
	}
	if records.listCalls != 1 {
		t.Fatalf("expected 1 remote query for repeat reads, got %d", records.listCalls)
	}
}

// 全量快照还新鲜时，限量请求就地切片，不发第二次远端查询
func TestRemoteFetchRecords_WarmSnapshotSlicesLocally(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	records := &fakeRecordStore{rows: []models.ActivityRecord{
		storedRec(1, 7, today, 10),
		storedRec(2, 7, today.AddDate(0, 0, -1), 20),
		storedRec(3, 7, today.AddDate(0, 0, -2), 30),
	}}
	src := newTestRemote(records, &fakeRedemptionStore{}, &fakeProfileStore{})

	if _, err := src.FetchRecords(context.Background(), "7", 0); err != nil {
		t.Fatal(err)
	}
	resp, err := src.FetchRecords(context.Background(), "7", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Records) != 2 || resp.Total != 3 {
		t.Fatalf("expected 2 records of total 3, got %d of %d", len(resp.Records), resp.Total)
	}
	if records.listCalls != 1 {
		t.Fatalf("limited read over warm snapshot must not hit remote, got %d calls", records.listCalls)
	}
}

// 冷缓存下的限量查询是残缺集，不能回填快照冒充全量
func TestRemoteFetchRecords_ColdLimitedNotCached(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	records := &fakeRecordStore{rows: []models.ActivityRecord{
		storedRec(1, 7, today, 10),
		storedRec(2, 7, today.AddDate(0, 0, -1), 20),
		storedRec(3, 7, today.AddDate(0, 0, -2), 30),
	}}
	src := newTestRemote(records, &fakeRedemptionStore{}, &fakeProfileStore{})

	resp, err := src.FetchRecords(context.Background(), "7", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(resp.Records))
	}

	full, err := src.FetchRecords(context.Background(), "7", 0)
	if err != nil {
		t.Fatal(err)
	}
	if full.Total != 3 {
		t.Fatalf("expected full total 3, got %d", full.Total)
	}
	if records.listCalls != 2 {
		t.Fatalf("full read after cold limited read must re-query, got %d calls", records.listCalls)
	}
}

// 写成功后同一用户立刻能读到新数据，不等 TTL 过期
func TestRemoteInsertRecord_FreshReadAfterWrite(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	records := &fakeRecordStore{rows: []models.ActivityRecord{
		storedRec(1, 7, today.AddDate(0, 0, -1), 20),
	}}
	src := newTestRemote(records, &fakeRedemptionStore{}, &fakeProfileStore{})

	if _, err := src.FetchRecords(context.Background(), "7", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := src.GetStats(context.Background(), "7"); err != nil {
		t.Fatal(err)
	}

	item, err := src.InsertRecord(context.Background(), "7", &types.CreateRecordRequest{
		UserKey:       "7",
		Date:          "2026-08-28",
		ActivityLabel: "morning run",
		Category:      models.CategoryPoints{Exercise: 30},
		GoalMet:       true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if item.ID == 0 || item.TotalPoints != 30 {
		t.Fatalf("unexpected inserted item: %+v", item)
	}

	resp, err := src.FetchRecords(context.Background(), "7", 0)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected total 2 after insert, got %d", resp.Total)
	}
	stats, err := src.GetStats(context.Background(), "7")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalBalance != 50 {
		t.Fatalf("expected balance 50 after insert, got %d", stats.TotalBalance)
	}
}

func TestRemoteInsertRecord_ForeignKeyRejected(t *testing.T) {
	records := &fakeRecordStore{}
	src := newTestRemote(records, &fakeRedemptionStore{}, &fakeProfileStore{})

	_, err := src.InsertRecord(context.Background(), "7", &types.CreateRecordRequest{
		UserKey:       "8",
		Date:          "2026-08-28",
		ActivityLabel: "reading",
		Category:      models.CategoryPoints{Reading: 10},
	})
	if !xerr.IsStaleSession(err) {
		t.Fatalf("expected stale session error, got %v", err)
	}
	if records.createCalls != 0 {
		t.Fatalf("rejected write must not reach remote, got %d creates", records.createCalls)
	}
}

// 超出 standard 等级单日上限的写在发远端之前就被拦下
func TestRemoteInsertRecord_CeilingRejected(t *testing.T) {
	records := &fakeRecordStore{}
	src := newTestRemote(records, &fakeRedemptionStore{}, &fakeProfileStore{})

	_, err := src.InsertRecord(context.Background(), "7", &types.CreateRecordRequest{
		UserKey:       "7",
		Date:          "2026-08-28",
		ActivityLabel: "marathon",
		Category:      models.CategoryPoints{Exercise: 150},
	})
	if !xerr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if records.createCalls != 0 {
		t.Fatalf("invalid write must not reach remote, got %d creates", records.createCalls)
	}
}

// stats 从新鲜的记录快照就地推导，不跑第二次远端查询
func TestRemoteGetStats_DerivedFromRecordSnapshot(t *testing.T) {
	today := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	records := &fakeRecordStore{rows: []models.ActivityRecord{
		storedRec(1, 7, today, 10),
		storedRec(2, 7, today.AddDate(0, 0, -1), 25),
	}}
	src := newTestRemote(records, &fakeRedemptionStore{}, &fakeProfileStore{})

	if _, err := src.FetchRecords(context.Background(), "7", 0); err != nil {
		t.Fatal(err)
	}
	stats, err := src.GetStats(context.Background(), "7")
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalBalance != 35 {
		t.Fatalf("expected balance 35, got %d", stats.TotalBalance)
	}
	if records.listCalls != 1 {
		t.Fatalf("stats over warm snapshot must not hit remote, got %d calls", records.listCalls)
	}
}

func TestRemoteFetchRecords_BadUserKey(t *testing.T) {
	src := newTestRemote(&fakeRecordStore{}, &fakeRedemptionStore{}, &fakeProfileStore{})

	for _, key := range []string{"abc", "0", ""} {
		if _, err := src.FetchRecords(context.Background(), key, 0); !xerr.IsValidation(err) {
			t.Fatalf("key %q: expected validation error, got %v", key, err)
		}
	}
}

// 远端失败归为 transport 类，错误文本原样保留
func TestRemoteFetchRecords_TransportClassified(t *testing.T) {
	src := newTestRemote(&fakeRecordStore{failList: true}, &fakeRedemptionStore{}, &fakeProfileStore{})

	_, err := src.FetchRecords(context.Background(), "7", 0)
	if !xerr.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if err.Error() != "数据库连不上" {
		t.Fatalf("error text must survive classification, got %q", err.Error())
	}
}

func TestRemoteRedemptions_RoundTripAndInvalidate(t *testing.T) {
	redemptions := &fakeRedemptionStore{}
	src := newTestRemote(&fakeRecordStore{}, redemptions, &fakeProfileStore{})

	item, err := src.InsertRedemption(context.Background(), "7", &types.CreateRedemptionRequest{
		UserKey:       "7",
		Date:          "2026-08-28",
		ItemLabel:     "movie night",
		PointsSpent:   500,
		MonetaryValue: 25,
	})
	if err != nil {
		t.Fatal(err)
	}
	if item.EffectiveRate != 20 {
		t.Fatalf("expected effective rate 20, got %d", item.EffectiveRate)
	}

	resp, err := src.FetchRedemptions(context.Background(), "7")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 redemption, got %d", resp.Total)
	}

	if err := src.DeleteRedemption(context.Background(), "7", item.ID); err != nil {
		t.Fatal(err)
	}
	resp, err = src.FetchRedemptions(context.Background(), "7")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 {
		t.Fatalf("expected empty list after delete, got %d", resp.Total)
	}
}
