package gateway

import (
	"Tally/config"
	"Tally/pkg/log"
	"Tally/pkg/xerr"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Gateway 把对远端存储的每一次读写都包上超时和重试。
// 重试只吞掉中间失败，最后一次失败原样上抛。
type Gateway struct {
	// 失败后的额外重试次数
	Retries int
	// 首次退避时长，逐次翻倍
	Backoff time.Duration
	// 普通读写超时
	Timeout time.Duration
	// 排行榜聚合要扫全量用户，放宽到单独的超时
	ScanTimeout time.Duration
}

func New(conf *config.Config) *Gateway {
	g := &Gateway{
		Retries:     1,
		Backoff:     time.Second,
		Timeout:     10 * time.Second,
		ScanTimeout: 60 * time.Second,
	}
	if conf.Gateway == nil {
		return g
	}
	if conf.Gateway.Retries > 0 {
		g.Retries = conf.Gateway.Retries
	}
	if conf.Gateway.BackoffMillis > 0 {
		g.Backoff = time.Duration(conf.Gateway.BackoffMillis) * time.Millisecond
	}
	if conf.Gateway.TimeoutSeconds > 0 {
		g.Timeout = time.Duration(conf.Gateway.TimeoutSeconds) * time.Second
	}
	if conf.Gateway.ScanTimeoutSeconds > 0 {
		g.ScanTimeout = time.Duration(conf.Gateway.ScanTimeoutSeconds) * time.Second
	}
	return g
}

// Execute 执行一次远端操作。
// 超时归为 xerr.ErrTimeout，其余失败归为 xerr.ErrTransport，错误文本不动。
// 写操作走同样的策略：插入的主键在调用前就已生成，
// 重试补发同一行，远端按主键去重，这是已接受的风险而不是这里要解决的问题。
func (g *Gateway) Execute(ctx context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error) error {
	if timeout <= 0 {
		timeout = g.Timeout
	}

	var last error
	backoff := g.Backoff

	for attempt := 0; attempt <= g.Retries; attempt++ {
		if attempt > 0 {
			// 指数退避，退避期间尊重上游取消
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return last
			}
			backoff *= 2
		}

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		err := fn(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			last = xerr.Timeout(err)
		} else {
			last = xerr.Transport(err)
		}

		if attempt < g.Retries {
			log.L.Warn("remote operation failed, retrying",
				zap.String("op", name),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
		}
	}

	return last
}
