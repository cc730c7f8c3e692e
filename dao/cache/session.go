package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// 会话兜底过期时间 - 7天
const sessionExpireAt = 7 * 24 * time.Hour

// SessionStorage 认证会话存 redis，登出或轮换后
// 旧会话立即失效，陈旧身份的写操作才能被拒掉
type SessionStorage struct {
	redis *redis.Client
}

func NewSessionStorage(rds *redis.Client) *SessionStorage {
	return &SessionStorage{rds}
}

func (s *SessionStorage) Set(ctx context.Context, sessionID string, uid uint64) error {
	return s.redis.Set(ctx, s.name(sessionID), uid, sessionExpireAt).Err()
}

// Get 会话不存在返回 0
func (s *SessionStorage) Get(ctx context.Context, sessionID string) uint64 {
	uid, err := s.redis.Get(ctx, s.name(sessionID)).Uint64()
	if err != nil {
		return 0
	}
	return uid
}

func (s *SessionStorage) Del(ctx context.Context, sessionID string) {
	s.redis.Del(ctx, s.name(sessionID))
}

// tally:session:<uuid>
func (s *SessionStorage) name(sessionID string) string {
	return fmt.Sprintf("tally:session:%s", sessionID)
}
