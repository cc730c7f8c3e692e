package service

import (
	"Tally/models"
	"Tally/pkg/xerr"
	"Tally/types"
	"context"
	"strconv"
	"time"
)

// IDataSource 读写统一契约。游客模式走本地文件，认证模式走缓存+远端，
// 上层拿到的形状完全一致，不需要知道数据是切缓存还是现查的。
type IDataSource interface {
	FetchRecords(ctx context.Context, userKey string, limit int) (*types.ListRecordsResponse, error)
	FetchRedemptions(ctx context.Context, userKey string) (*types.ListRedemptionsResponse, error)
	InsertRecord(ctx context.Context, userKey string, req *types.CreateRecordRequest) (*types.RecordItem, error)
	DeleteRecord(ctx context.Context, userKey string, id uint64) error
	InsertRedemption(ctx context.Context, userKey string, req *types.CreateRedemptionRequest) (*types.RedemptionItem, error)
	DeleteRedemption(ctx context.Context, userKey string, id uint64) error
	GetStats(ctx context.Context, userKey string) (*types.DerivedStats, error)
}

var _ IDataSource = (*LocalSource)(nil)
var _ IDataSource = (*RemoteSource)(nil)

// SourceResolver 请求进来时选一次数据源：带会话走远端，带 guest key 走本地
type SourceResolver struct {
	Local  *LocalSource
	Remote *RemoteSource
}

func (r *SourceResolver) ForGuest() IDataSource { return r.Local }

func (r *SourceResolver) ForUser() IDataSource { return r.Remote }

// 远端存储的访问面，dao 层实现；服务层只依赖这几个口子
type RecordStore interface {
	ListByUser(ctx context.Context, userID uint64, limit int) ([]models.ActivityRecord, error)
	ListSince(ctx context.Context, since time.Time) ([]models.ActivityRecord, error)
	Create(ctx context.Context, m *models.ActivityRecord) error
	DeleteByID(ctx context.Context, userID uint64, id uint64) error
}

type RedemptionStore interface {
	ListByUser(ctx context.Context, userID uint64) ([]models.RedemptionRecord, error)
	Create(ctx context.Context, m *models.RedemptionRecord) error
	DeleteByID(ctx context.Context, userID uint64, id uint64) error
}

type ProfileStore interface {
	GetOrCreate(ctx context.Context, userID uint64) (*models.UserProfile, error)
	ListAll(ctx context.Context) ([]models.UserProfile, error)
	UpdateByUserID(ctx context.Context, userID uint64, updates map[string]any) error
}

func parseUserKey(userKey string) (uint64, error) {
	uid, err := strconv.ParseUint(userKey, 10, 64)
	if err != nil || uid == 0 {
		return 0, xerr.Validationf("非法的用户键: %q", userKey)
	}
	return uid, nil
}

// requireOwnKey 写操作声明的身份必须和当前会话绑定的一致，不符直接拒绝
func requireOwnKey(boundKey, claimedKey string) error {
	if boundKey != claimedKey {
		return xerr.ErrStaleSession
	}
	return nil
}
