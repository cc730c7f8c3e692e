package xerr

import (
	"errors"
	"fmt"
)

// 核心链路的错误分类。网关、数据源、服务层之间只用这四类哨兵做判别，
// 上抛时保持原样，handler 层再映射成 HTTP 状态码。
var (
	// ErrTimeout 远端操作在重试耗尽后仍超时
	ErrTimeout = errors.New("remote operation timed out")
	// ErrTransport 远端调用因非超时原因失败（网络、权限等）
	ErrTransport = errors.New("remote transport failure")
	// ErrValidation 入参校验失败，发起远端调用之前就拦下，不重试
	ErrValidation = errors.New("validation failure")
	// ErrStaleSession 写操作声明的用户身份与当前会话不符，直接拒绝
	ErrStaleSession = errors.New("stale session identity")
)

func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsStaleSession(err error) bool {
	return errors.Is(err, ErrStaleSession)
}

// Validationf 包装一条校验错误，保证 errors.Is(err, ErrValidation) 成立
func Validationf(format string, args ...any) error {
	return wrapf(ErrValidation, format, args...)
}

func wrapf(sentinel error, format string, args ...any) error {
	return &wrapped{sentinel: sentinel, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	sentinel error
	msg      string
}

func (w *wrapped) Error() string { return w.msg }

func (w *wrapped) Unwrap() error { return w.sentinel }

// Timeout 给一次超时失败打上分类标记，错误文本保持原样
func Timeout(cause error) error {
	return &tagged{sentinel: ErrTimeout, cause: cause}
}

// Transport 给一次传输失败打上分类标记，错误文本保持原样
func Transport(cause error) error {
	return &tagged{sentinel: ErrTransport, cause: cause}
}

type tagged struct {
	sentinel error
	cause    error
}

func (t *tagged) Error() string { return t.cause.Error() }

func (t *tagged) Unwrap() []error { return []error{t.sentinel, t.cause} }
